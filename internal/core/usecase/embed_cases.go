package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
	"github.com/haiminh/plant-disease-assistant/internal/core/ports"
)

type CaseEmbedUseCase struct {
	store    ports.CaseStore
	embedder ports.Embedder
	chunker  ports.Chunker
	maxRunes int
}

func NewCaseEmbedUseCase(store ports.CaseStore, embedder ports.Embedder, chunker ports.Chunker, maxRunes int) *CaseEmbedUseCase {
	if maxRunes <= 0 {
		maxRunes = 8000
	}
	return &CaseEmbedUseCase{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
		maxRunes: maxRunes,
	}
}

// EmbedCaseByID builds the description embedding for one case node and
// writes it back to the graph. Descriptions over the embedding input
// limit are split and the chunk vectors mean-pooled.
func (uc *CaseEmbedUseCase) EmbedCaseByID(ctx context.Context, caseID string) error {
	description, err := uc.store.CaseDescription(ctx, caseID)
	if err != nil {
		return fmt.Errorf("load case description: %w", err)
	}
	if description == "" {
		return domain.WrapError(domain.ErrInvalidInput, "embed case", errors.New("case has no description"))
	}

	vector, err := uc.embedDescription(ctx, description)
	if err != nil {
		return fmt.Errorf("embed case %s: %w", caseID, err)
	}

	if err := uc.store.SaveCaseEmbedding(ctx, caseID, vector); err != nil {
		return fmt.Errorf("save case embedding: %w", err)
	}
	return nil
}

func (uc *CaseEmbedUseCase) embedDescription(ctx context.Context, description string) ([]float64, error) {
	if len([]rune(description)) <= uc.maxRunes || uc.chunker == nil {
		return uc.embedder.EmbedQuery(ctx, description)
	}

	chunks := uc.chunker.Split(description)
	if len(chunks) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "split description", errors.New("chunking produced zero chunks"))
	}

	var pooled []float64
	for _, chunk := range chunks {
		vector, err := uc.embedder.EmbedQuery(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if pooled == nil {
			pooled = make([]float64, len(vector))
		}
		if len(vector) != len(pooled) {
			return nil, fmt.Errorf("chunk vector dimension mismatch: %d != %d", len(vector), len(pooled))
		}
		for i, v := range vector {
			pooled[i] += v
		}
	}
	for i := range pooled {
		pooled[i] /= float64(len(chunks))
	}
	return pooled, nil
}
