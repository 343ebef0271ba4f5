// Package parse turns the classification model's free-text reply into a
// typed result. The model is asked for a fixed schema but drifts; every
// extraction step tolerates a missing marker and yields empty output
// instead of failing.
package parse

import (
	"regexp"
	"strings"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

var (
	flagPattern       = regexp.MustCompile(`IsPlantDiseaseQuery:\s*(\d+)`)
	answerPattern     = regexp.MustCompile(`Answer:\s*(.+)`)
	entityBlock       = regexp.MustCompile(`(?s)Entities:\s*(.*?)\n\s*\n`)
	entityLine        = regexp.MustCompile(`^-\s*(.+?):\s*(.+)$`)
	relationshipBlock = regexp.MustCompile(`(?s)Relationships:\s*(.*)`)
	relationshipLine  = regexp.MustCompile(`^-\s*\((.+?),\s*(.+?),\s*(.+?)\)`)
)

// Reply parses the raw model reply. It never fails: malformed or empty
// input degrades to an empty result with ParseFailed status.
func Reply(raw string) (domain.ClassificationResult, domain.ParseOutcome) {
	result := domain.ClassificationResult{
		Entities:      []domain.Entity{},
		Relationships: []domain.Relationship{},
	}
	if strings.TrimSpace(raw) == "" {
		return result, domain.ParseOutcome{
			Status:        domain.ParseFailed,
			MissingFields: []string{"IsPlantDiseaseQuery"},
		}
	}

	if m := flagPattern.FindStringSubmatch(raw); m != nil {
		related := m[1] != "0"
		result.IsPlantDiseaseQuery = &related
	}
	if m := answerPattern.FindStringSubmatch(raw); m != nil {
		result.Answer = strings.TrimSpace(m[1])
	}
	result.Entities = parseEntities(raw)
	result.Relationships = parseRelationships(raw)

	return result, outcomeFor(result)
}

func parseEntities(raw string) []domain.Entity {
	entities := []domain.Entity{}
	block := entityBlock.FindStringSubmatch(raw)
	if block == nil {
		return entities
	}
	for _, line := range strings.Split(strings.TrimSpace(block[1]), "\n") {
		m := entityLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entities = append(entities, domain.Entity{
			Name: strings.TrimSpace(m[1]),
			Type: strings.TrimSpace(m[2]),
		})
	}
	return entities
}

func parseRelationships(raw string) []domain.Relationship {
	relationships := []domain.Relationship{}
	block := relationshipBlock.FindStringSubmatch(raw)
	if block == nil {
		return relationships
	}
	for _, line := range strings.Split(strings.TrimSpace(block[1]), "\n") {
		m := relationshipLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		relationships = append(relationships, domain.Relationship{
			Entity1:      strings.TrimSpace(m[1]),
			RelationType: strings.TrimSpace(m[2]),
			Entity2:      strings.TrimSpace(m[3]),
		})
	}
	return relationships
}

func outcomeFor(result domain.ClassificationResult) domain.ParseOutcome {
	var missing []string
	if result.IsPlantDiseaseQuery == nil {
		missing = append(missing, "IsPlantDiseaseQuery")
	}
	if result.Unrelated() && result.Answer == "" {
		missing = append(missing, "Answer")
	}
	if result.Related() {
		if len(result.Entities) == 0 {
			missing = append(missing, "Entities")
		}
		if len(result.Relationships) == 0 {
			missing = append(missing, "Relationships")
		}
	}

	switch {
	case len(missing) == 0:
		return domain.ParseOutcome{Status: domain.ParseFull}
	case result.IsPlantDiseaseQuery == nil && result.Answer == "" &&
		len(result.Entities) == 0 && len(result.Relationships) == 0:
		return domain.ParseOutcome{Status: domain.ParseFailed, MissingFields: missing}
	default:
		return domain.ParseOutcome{Status: domain.ParsePartial, MissingFields: missing}
	}
}
