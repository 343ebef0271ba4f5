package neo4j

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
	"github.com/haiminh/plant-disease-assistant/internal/core/ports"
	"github.com/haiminh/plant-disease-assistant/internal/observability/metrics"
)

// identifierPattern guards label and property names spliced into Cypher;
// the driver cannot bind them as parameters.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Searcher implements ports.SemanticSearcher. The cosine similarity runs
// inside the Cypher query over every node of the target label that
// carries an embedding; there is no precomputed index.
type Searcher struct {
	store    *Store
	embedder ports.Embedder
	metrics  *metrics.PipelineMetrics
	logger   *slog.Logger
}

func NewSearcher(store *Store, embedder ports.Embedder, pipelineMetrics *metrics.PipelineMetrics, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		store:    store,
		embedder: embedder,
		metrics:  pipelineMetrics,
		logger:   logger,
	}
}

func (s *Searcher) Search(ctx context.Context, target domain.SearchTarget, query string, topK int) ([]domain.SearchHit, error) {
	if topK <= 0 {
		topK = 5
	}
	cypher, err := buildSearchCypher(target)
	if err != nil {
		return nil, err
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		// No query vector means no ranking basis; an empty result is the
		// contract, not a failure.
		s.logger.Warn("query embedding unavailable", "error", err)
		return []domain.SearchHit{}, nil
	}

	started := time.Now()
	result, err := s.store.run(ctx, cypher, map[string]any{
		"embedding": vector,
		"topK":      topK,
	})
	s.metrics.ObserveSearch(time.Since(started))
	if err != nil {
		return nil, domain.WrapError(domain.ErrExternalService, "semantic search", err)
	}

	hits := make([]domain.SearchHit, 0, len(result.Records))
	for _, record := range result.Records {
		hits = append(hits, hitFromRecord(record))
	}
	return hits, nil
}

// buildSearchCypher renders the similarity query for one target. Only the
// query vector and cap are runtime parameters; label and property names
// are validated identifiers.
func buildSearchCypher(target domain.SearchTarget) (string, error) {
	for _, ident := range []string{target.Label, target.TextField, target.EmbeddingField} {
		if !identifierPattern.MatchString(ident) {
			return "", domain.WrapError(domain.ErrInvalidInput, "build search query",
				fmt.Errorf("invalid identifier %q", ident))
		}
	}

	return fmt.Sprintf(`
MATCH (n:%[1]s)
WHERE n.%[2]s IS NOT NULL
WITH n,
    reduce(dot = 0.0, i IN range(0, size(n.%[2]s)-1) |
        dot + n.%[2]s[i] * $embedding[i]
    ) /
    (
        sqrt(reduce(a = 0.0, i IN range(0, size(n.%[2]s)-1) |
            a + n.%[2]s[i] * n.%[2]s[i]
        )) *
        sqrt(reduce(b = 0.0, i IN range(0, size($embedding)-1) |
            b + $embedding[i] * $embedding[i]
        ))
    ) AS similarity
WHERE similarity > 0
RETURN
    n.cay AS plant,
    n.benh AS disease,
    n.description AS description,
    n.%[3]s AS matched,
    similarity AS score
ORDER BY similarity DESC
LIMIT $topK`, target.Label, target.EmbeddingField, target.TextField), nil
}

func hitFromRecord(record *db.Record) domain.SearchHit {
	return domain.SearchHit{
		Plant:       stringValue(record, "plant"),
		Disease:     stringValue(record, "disease"),
		Description: stringValue(record, "description"),
		MatchedText: stringValue(record, "matched"),
		Score:       floatValue(record, "score"),
	}
}

func stringValue(record *db.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

func floatValue(record *db.Record, key string) float64 {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}
