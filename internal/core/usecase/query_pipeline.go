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
	"github.com/haiminh/plant-disease-assistant/internal/observability/metrics"
)

// plantArticle is the generic "plant" article Vietnamese queries put in
// front of a species name ("cây cà chua" -> "cà chua").
const plantArticle = "cây "

// searchPhraseFormat combines the plant name with a symptom description
// the same way case descriptions in the graph are phrased.
const searchPhraseFormat = "%s có các triệu chứng như sau: %s"

type QueryPipeline struct {
	classifier ports.QueryClassifier
	searcher   ports.SemanticSearcher
	history    ports.HistoryStore
	metrics    *metrics.PipelineMetrics
	logger     *slog.Logger
	topK       int
}

func NewQueryPipeline(
	classifier ports.QueryClassifier,
	searcher ports.SemanticSearcher,
	history ports.HistoryStore,
	pipelineMetrics *metrics.PipelineMetrics,
	logger *slog.Logger,
	topK int,
) *QueryPipeline {
	if topK <= 0 {
		topK = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryPipeline{
		classifier: classifier,
		searcher:   searcher,
		history:    history,
		metrics:    pipelineMetrics,
		logger:     logger,
		topK:       topK,
	}
}

// ClassifyAndSearch runs the free-text flow: classify the query, then
// either return the model's direct answer or search the graph once per
// extracted has-symptom relationship and consolidate the hits.
func (p *QueryPipeline) ClassifyAndSearch(ctx context.Context, query string) (*domain.QueryAnswer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "classify query", errors.New("empty query"))
	}

	started := time.Now()
	result, outcome, err := p.classifier.Classify(ctx, query)
	if err != nil {
		p.metrics.ObserveQuery("classify_error", time.Since(started))
		return nil, fmt.Errorf("classify query: %w", err)
	}

	if outcome.Status != domain.ParseFull {
		p.logger.Warn("classifier reply off schema",
			"status", outcome.Status.String(),
			"missing", outcome.MissingFields,
		)
	}

	answer, err := p.resolve(ctx, result, outcome)
	if err != nil {
		p.metrics.ObserveQuery("search_error", time.Since(started))
		return nil, err
	}

	p.metrics.ObserveQuery(string(answer.Type), time.Since(started))
	p.record(ctx, query, answer)
	return answer, nil
}

func (p *QueryPipeline) resolve(
	ctx context.Context,
	result domain.ClassificationResult,
	outcome domain.ParseOutcome,
) (*domain.QueryAnswer, error) {
	switch {
	case result.Unrelated():
		return &domain.QueryAnswer{Type: domain.AnswerDirect, Direct: result.Answer}, nil
	case result.Related():
		hits, err := p.searchSymptoms(ctx, result.Relationships)
		if err != nil {
			return nil, err
		}
		return &domain.QueryAnswer{Type: domain.AnswerSearch, Hits: hits}, nil
	default:
		// Flag unknown: the reply could not be understood. Degrade to an
		// empty result set rather than inventing an answer.
		p.logger.Warn("classification flag missing, returning empty result",
			"missing", outcome.MissingFields)
		return &domain.QueryAnswer{Type: domain.AnswerSearch, Hits: []domain.SearchHit{}}, nil
	}
}

func (p *QueryPipeline) searchSymptoms(ctx context.Context, relationships []domain.Relationship) ([]domain.SearchHit, error) {
	var (
		raw   []domain.SearchHit
		plant string
	)
	for _, rel := range relationships {
		if rel.RelationType != domain.RelationHasSymptom {
			continue
		}
		plant = plantNameFrom(rel.Entity1)
		phrase := fmt.Sprintf(searchPhraseFormat, plant, rel.Entity2)

		hits, err := p.searcher.Search(ctx, domain.CaseSearchTarget(), phrase, p.topK)
		if err != nil {
			return nil, fmt.Errorf("semantic search: %w", err)
		}
		raw = append(raw, hits...)
	}

	// Multi-plant queries keep the plant of the last processed
	// relationship, matching the extraction order contract.
	return ConsolidateHits(raw, plant), nil
}

func (p *QueryPipeline) record(ctx context.Context, query string, answer *domain.QueryAnswer) {
	if p.history == nil {
		return
	}
	entry := domain.QueryLogEntry{
		Flow:        domain.FlowFreeText,
		Query:       query,
		AnswerType:  string(answer.Type),
		ResultCount: len(answer.Hits),
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.history.RecordQuery(ctx, entry); err != nil {
		p.logger.Warn("record query history", "error", err)
	}
}

// plantNameFrom derives the plant name from a relationship's first entity,
// stripping the generic plant article if present.
func plantNameFrom(entity string) string {
	name := strings.ToLower(strings.TrimSpace(entity))
	return strings.TrimPrefix(name, plantArticle)
}
