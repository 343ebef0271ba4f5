package neo4j

import (
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

func TestBuildSearchCypherRendersSimilarityQuery(t *testing.T) {
	cypher, err := buildSearchCypher(domain.CaseSearchTarget())
	if err != nil {
		t.Fatalf("buildSearchCypher() error = %v", err)
	}

	for _, fragment := range []string{
		"MATCH (n:CaseBenh)",
		"n.description_embedding IS NOT NULL",
		"WHERE similarity > 0",
		"ORDER BY similarity DESC",
		"LIMIT $topK",
	} {
		if !strings.Contains(cypher, fragment) {
			t.Fatalf("query missing %q:\n%s", fragment, cypher)
		}
	}
}

func TestBuildSearchCypherRejectsUnsafeIdentifiers(t *testing.T) {
	targets := []domain.SearchTarget{
		{Label: "CaseBenh) DETACH DELETE n //", TextField: "description", EmbeddingField: "description_embedding"},
		{Label: "CaseBenh", TextField: "desc ription", EmbeddingField: "description_embedding"},
		{Label: "CaseBenh", TextField: "description", EmbeddingField: ""},
	}
	for _, target := range targets {
		if _, err := buildSearchCypher(target); err == nil {
			t.Fatalf("expected rejection for %+v", target)
		} else if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestHitFromRecordMapsColumns(t *testing.T) {
	record := &db.Record{
		Keys:   []string{"plant", "disease", "description", "matched", "score"},
		Values: []any{"cà chua", "sương mai sớm", "mô tả đầy đủ", "mô tả đầy đủ", 0.83},
	}

	hit := hitFromRecord(record)
	if hit.Plant != "cà chua" || hit.Disease != "sương mai sớm" {
		t.Fatalf("unexpected hit: %+v", hit)
	}
	if hit.Score != 0.83 {
		t.Fatalf("expected score 0.83, got %v", hit.Score)
	}
}

func TestHitFromRecordToleratesMissingColumns(t *testing.T) {
	record := &db.Record{
		Keys:   []string{"plant", "score"},
		Values: []any{nil, int64(1)},
	}

	hit := hitFromRecord(record)
	if hit.Plant != "" || hit.Disease != "" {
		t.Fatalf("expected empty strings, got %+v", hit)
	}
	if hit.Score != 1 {
		t.Fatalf("expected integer score coerced to 1, got %v", hit.Score)
	}
}
