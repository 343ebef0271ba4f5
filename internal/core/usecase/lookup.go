package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
	"github.com/haiminh/plant-disease-assistant/internal/core/ports"
)

type CaseLookupUseCase struct {
	store   ports.CaseStore
	history ports.HistoryStore
	logger  *slog.Logger
}

func NewCaseLookupUseCase(store ports.CaseStore, history ports.HistoryStore, logger *slog.Logger) *CaseLookupUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CaseLookupUseCase{store: store, history: history, logger: logger}
}

// LookupCase fetches cause/treatment records for an exact plant-disease
// pair. Inputs are normalized here so the composite case id matches the
// graph's lower-cased identifiers. A pair without a case node yields an
// empty list, not an error.
func (uc *CaseLookupUseCase) LookupCase(ctx context.Context, plant, disease string) ([]domain.CaseRecord, error) {
	plant = strings.ToLower(strings.TrimSpace(plant))
	disease = strings.ToLower(strings.TrimSpace(disease))
	if plant == "" || disease == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "lookup case", errors.New("plant and disease are required"))
	}

	records, err := uc.store.LookupCase(ctx, plant, disease)
	if err != nil {
		return nil, fmt.Errorf("lookup case %s-%s: %w", plant, disease, err)
	}

	uc.record(ctx, plant, disease, len(records))
	return records, nil
}

func (uc *CaseLookupUseCase) record(ctx context.Context, plant, disease string, count int) {
	if uc.history == nil {
		return
	}
	entry := domain.QueryLogEntry{
		Flow:        domain.FlowCase,
		Query:       plant + "-" + disease,
		AnswerType:  string(domain.AnswerSearch),
		ResultCount: count,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.history.RecordQuery(ctx, entry); err != nil {
		uc.logger.Warn("record lookup history", "error", err)
	}
}
