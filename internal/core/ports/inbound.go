package ports

import (
	"context"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

// DiseaseQueryService is the inbound contract for the free-text flow.
type DiseaseQueryService interface {
	ClassifyAndSearch(ctx context.Context, query string) (*domain.QueryAnswer, error)
}

// CaseLookupService is the inbound contract for the structured flow.
type CaseLookupService interface {
	LookupCase(ctx context.Context, plant, disease string) ([]domain.CaseRecord, error)
}

// LeafDiagnoser runs the image-classification flow end to end.
type LeafDiagnoser interface {
	Diagnose(ctx context.Context, imageURL string) (*domain.Diagnosis, error)
}

// CaseEmbedProcessor builds and stores the description embedding for one case.
type CaseEmbedProcessor interface {
	EmbedCaseByID(ctx context.Context, caseID string) error
}
