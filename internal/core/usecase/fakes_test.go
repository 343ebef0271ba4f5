package usecase

import (
	"context"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

type fakeClassifier struct {
	result  domain.ClassificationResult
	outcome domain.ParseOutcome
	err     error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (domain.ClassificationResult, domain.ParseOutcome, error) {
	return f.result, f.outcome, f.err
}

type fakeSearcher struct {
	hitsByQuery map[string][]domain.SearchHit
	queries     []string
	err         error
}

func (f *fakeSearcher) Search(_ context.Context, _ domain.SearchTarget, query string, _ int) ([]domain.SearchHit, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.hitsByQuery[query], nil
}

type fakeCaseStore struct {
	records      []domain.CaseRecord
	descriptions map[string]string
	saved        map[string][]float64
	lookupErr    error

	lookedUpPlant   string
	lookedUpDisease string
}

func (f *fakeCaseStore) LookupCase(_ context.Context, plant, disease string) ([]domain.CaseRecord, error) {
	f.lookedUpPlant = plant
	f.lookedUpDisease = disease
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.records, nil
}

func (f *fakeCaseStore) CaseDescription(_ context.Context, caseID string) (string, error) {
	return f.descriptions[caseID], nil
}

func (f *fakeCaseStore) SaveCaseEmbedding(_ context.Context, caseID string, vector []float64) error {
	if f.saved == nil {
		f.saved = make(map[string][]float64)
	}
	f.saved[caseID] = vector
	return nil
}

func (f *fakeCaseStore) CaseIDsMissingEmbedding(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeHistory struct {
	entries []domain.QueryLogEntry
	err     error
}

func (f *fakeHistory) RecordQuery(_ context.Context, entry domain.QueryLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistory) RecentQueries(_ context.Context, _ int) ([]domain.QueryLogEntry, error) {
	return f.entries, nil
}

type fakeEmbedder struct {
	vectors map[string][]float64
	calls   []string
	err     error
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float64, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if vector, ok := f.vectors[text]; ok {
		return vector, nil
	}
	return []float64{1, 0}, nil
}

type fakeChunker struct {
	chunks []string
}

func (f *fakeChunker) Split(_ string) []string {
	return f.chunks
}

type fakeLeafClassifier struct {
	prediction domain.LeafPrediction
	err        error
}

func (f *fakeLeafClassifier) Predict(_ context.Context, _ string) (domain.LeafPrediction, error) {
	return f.prediction, f.err
}

type fakeTranslator struct {
	table map[string]string
}

func (f *fakeTranslator) TranslateLabel(name string) string {
	if value, ok := f.table[name]; ok {
		return value
	}
	return name
}
