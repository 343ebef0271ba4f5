package usecase

import (
	"strings"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

// ConsolidateHits reduces raw hits accumulated across per-symptom searches
// to one list for the target plant: hits for other plants are dropped,
// then the first hit per disease wins. Input order is preserved, so
// earlier-extracted relationships take priority over later ones even when
// a later hit scored higher.
func ConsolidateHits(hits []domain.SearchHit, plant string) []domain.SearchHit {
	target := normalizeName(plant)

	filtered := make([]domain.SearchHit, 0, len(hits))
	for _, hit := range hits {
		if normalizeName(hit.Plant) == target {
			filtered = append(filtered, hit)
		}
	}

	seen := make(map[string]struct{}, len(filtered))
	unique := filtered[:0]
	for _, hit := range filtered {
		key := normalizeName(hit.Disease)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, hit)
	}
	return unique
}

// normalizeName is the single normalization policy for plant and disease
// comparison: whitespace trimmed, case folded.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
