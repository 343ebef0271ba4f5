package ports

import (
	"context"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

// QueryClassifier sends the user query to the text-generation service and
// returns the parsed classification together with its parse outcome.
type QueryClassifier interface {
	Classify(ctx context.Context, query string) (domain.ClassificationResult, domain.ParseOutcome, error)
}

// Embedder obtains a fixed-dimension vector for a text string. Admission
// is rate-budgeted; a blocked call waits instead of failing.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}

// SemanticSearcher ranks graph nodes of the target type by cosine
// similarity against the query text. An unavailable query vector yields an
// empty result, not an error.
type SemanticSearcher interface {
	Search(ctx context.Context, target domain.SearchTarget, query string, topK int) ([]domain.SearchHit, error)
}

// CaseStore reads and writes disease case nodes in the graph.
type CaseStore interface {
	LookupCase(ctx context.Context, plant, disease string) ([]domain.CaseRecord, error)
	CaseDescription(ctx context.Context, caseID string) (string, error)
	SaveCaseEmbedding(ctx context.Context, caseID string, vector []float64) error
	CaseIDsMissingEmbedding(ctx context.Context) ([]string, error)
}

// HistoryStore persists one record per pipeline invocation.
type HistoryStore interface {
	RecordQuery(ctx context.Context, entry domain.QueryLogEntry) error
	RecentQueries(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}

// MessageQueue carries case ids whose description embedding must be built.
type MessageQueue interface {
	PublishCaseEmbedRequested(ctx context.Context, caseID string) error
	SubscribeCaseEmbedRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// Translator maps an English plant or disease label to the display language.
type Translator interface {
	TranslateLabel(name string) string
}

// LeafClassifier is the external image classifier; only the contract lives
// in this repository.
type LeafClassifier interface {
	Predict(ctx context.Context, imageURL string) (domain.LeafPrediction, error)
}

// Chunker splits text that exceeds the embedding input limit.
type Chunker interface {
	Split(text string) []string
}
