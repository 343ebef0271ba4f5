package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

func TestEmbedCaseByIDEmbedsShortDescriptionDirectly(t *testing.T) {
	store := &fakeCaseStore{descriptions: map[string]string{
		"táo-thối đen": "táo có các triệu chứng như sau: quả thối mềm",
	}}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"táo có các triệu chứng như sau: quả thối mềm": {0.4, 0.6},
	}}

	uc := NewCaseEmbedUseCase(store, embedder, &fakeChunker{}, 100)
	if err := uc.EmbedCaseByID(context.Background(), "táo-thối đen"); err != nil {
		t.Fatalf("EmbedCaseByID() error = %v", err)
	}
	if len(embedder.calls) != 1 {
		t.Fatalf("expected a single embed call, got %d", len(embedder.calls))
	}
	saved := store.saved["táo-thối đen"]
	if len(saved) != 2 || saved[0] != 0.4 {
		t.Fatalf("unexpected saved vector: %v", saved)
	}
}

func TestEmbedCaseByIDMeanPoolsLongDescription(t *testing.T) {
	long := strings.Repeat("m", 50)
	store := &fakeCaseStore{descriptions: map[string]string{"c-1": long}}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"chunk-a": {1, 0},
		"chunk-b": {0, 1},
	}}
	chunker := &fakeChunker{chunks: []string{"chunk-a", "chunk-b"}}

	uc := NewCaseEmbedUseCase(store, embedder, chunker, 10)
	if err := uc.EmbedCaseByID(context.Background(), "c-1"); err != nil {
		t.Fatalf("EmbedCaseByID() error = %v", err)
	}
	saved := store.saved["c-1"]
	if len(saved) != 2 || saved[0] != 0.5 || saved[1] != 0.5 {
		t.Fatalf("expected mean-pooled vector [0.5 0.5], got %v", saved)
	}
}

func TestEmbedCaseByIDRejectsDimensionMismatch(t *testing.T) {
	long := strings.Repeat("m", 50)
	store := &fakeCaseStore{descriptions: map[string]string{"c-1": long}}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"chunk-a": {1, 0},
		"chunk-b": {1, 0, 0},
	}}
	chunker := &fakeChunker{chunks: []string{"chunk-a", "chunk-b"}}

	uc := NewCaseEmbedUseCase(store, embedder, chunker, 10)
	if err := uc.EmbedCaseByID(context.Background(), "c-1"); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if len(store.saved) != 0 {
		t.Fatalf("nothing must be saved on mismatch, got %v", store.saved)
	}
}

func TestEmbedCaseByIDRejectsEmptyDescription(t *testing.T) {
	store := &fakeCaseStore{descriptions: map[string]string{}}

	uc := NewCaseEmbedUseCase(store, &fakeEmbedder{}, &fakeChunker{}, 100)
	err := uc.EmbedCaseByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
