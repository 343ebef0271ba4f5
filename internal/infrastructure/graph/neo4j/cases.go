package neo4j

import (
	"context"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

// caseIDSeparator joins plant and disease into the composite case id the
// graph uses ("táo-thối đen").
const caseIDSeparator = "-"

// LookupCase resolves the case node for an exact plant-disease pair and
// follows its cause and treatment edges. The id is bound as a parameter;
// both names originate from user input or model output.
func (s *Store) LookupCase(ctx context.Context, plant, disease string) ([]domain.CaseRecord, error) {
	const query = `
MATCH (cb:CaseBenh {id: $caseID})-[:DO_NGUYEN_NHAN]->(nn:NguyenNhan)
MATCH (cb)-[:CACH_DIEU_TRI]->(dt:DieuTri)
RETURN nn.desc AS cause, dt.desc AS treatment`

	result, err := s.run(ctx, query, map[string]any{
		"caseID": plant + caseIDSeparator + disease,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrExternalService, "case lookup", err)
	}

	records := make([]domain.CaseRecord, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, domain.CaseRecord{
			Cause:     stringValue(record, "cause"),
			Treatment: stringValue(record, "treatment"),
		})
	}
	return records, nil
}

// CaseDescription returns the description text for one case node, or an
// empty string when the node does not exist.
func (s *Store) CaseDescription(ctx context.Context, caseID string) (string, error) {
	const query = `
MATCH (cb:CaseBenh {id: $caseID})
RETURN cb.description AS description`

	result, err := s.run(ctx, query, map[string]any{"caseID": caseID})
	if err != nil {
		return "", domain.WrapError(domain.ErrExternalService, "case description", err)
	}
	if len(result.Records) == 0 {
		return "", nil
	}
	return stringValue(result.Records[0], "description"), nil
}

// SaveCaseEmbedding writes the description vector back to the case node.
func (s *Store) SaveCaseEmbedding(ctx context.Context, caseID string, vector []float64) error {
	const query = `
MATCH (cb:CaseBenh {id: $caseID})
SET cb.description_embedding = $embedding`

	if _, err := s.run(ctx, query, map[string]any{
		"caseID":    caseID,
		"embedding": vector,
	}); err != nil {
		return domain.WrapError(domain.ErrExternalService, "save case embedding", err)
	}
	return nil
}

// CaseIDsMissingEmbedding lists cases the worker still has to embed.
func (s *Store) CaseIDsMissingEmbedding(ctx context.Context) ([]string, error) {
	const query = `
MATCH (cb:CaseBenh)
WHERE cb.description_embedding IS NULL
RETURN cb.id AS id`

	result, err := s.run(ctx, query, nil)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExternalService, "list unembedded cases", err)
	}

	ids := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		if id := stringValue(record, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
