package usecase

import (
	"testing"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

func TestConsolidateHitsFiltersAndDeduplicates(t *testing.T) {
	hits := []domain.SearchHit{
		{Plant: "cà chua", Disease: "sương mai sớm", Score: 0.9},
		{Plant: "táo", Disease: "thối đen", Score: 0.95},
		{Plant: "cà chua", Disease: "Sương Mai Sớm", Score: 0.99},
	}

	out := ConsolidateHits(hits, "cà chua")
	if len(out) != 1 {
		t.Fatalf("expected 1 hit, got %d: %+v", len(out), out)
	}
	if out[0].Disease != "sương mai sớm" || out[0].Score != 0.9 {
		t.Fatalf("expected first-seen hit kept, got %+v", out[0])
	}
}

func TestConsolidateHitsPreservesInputOrder(t *testing.T) {
	hits := []domain.SearchHit{
		{Plant: "cà chua", Disease: "mốc lá", Score: 0.5},
		{Plant: "cà chua", Disease: "đốm vi khuẩn", Score: 0.8},
		{Plant: "cà chua", Disease: "mốc lá", Score: 0.99},
	}

	out := ConsolidateHits(hits, "cà chua")
	if len(out) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(out))
	}
	if out[0].Disease != "mốc lá" || out[1].Disease != "đốm vi khuẩn" {
		t.Fatalf("order not preserved: %+v", out)
	}
}

func TestConsolidateHitsNormalizesPlantComparison(t *testing.T) {
	hits := []domain.SearchHit{
		{Plant: "  Cà Chua ", Disease: "mốc lá"},
	}

	out := ConsolidateHits(hits, "cà chua")
	if len(out) != 1 {
		t.Fatalf("expected whitespace/case variants to match, got %+v", out)
	}
}

func TestConsolidateHitsEmptyInput(t *testing.T) {
	if out := ConsolidateHits(nil, "cà chua"); len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
