package domain

// SearchTarget selects which graph nodes a semantic search runs against:
// the node label, the text property surfaced in hits, and the property
// holding the precomputed vector.
type SearchTarget struct {
	Label          string
	TextField      string
	EmbeddingField string
}

// CaseSearchTarget is the target used by the retrieval flow: disease case
// nodes matched on their description embedding.
func CaseSearchTarget() SearchTarget {
	return SearchTarget{
		Label:          "CaseBenh",
		TextField:      "description",
		EmbeddingField: "description_embedding",
	}
}

type SearchHit struct {
	Plant       string  `json:"plant"`
	Disease     string  `json:"disease"`
	Description string  `json:"description"`
	MatchedText string  `json:"matched_text"`
	Score       float64 `json:"score"`
}

type CaseRecord struct {
	Cause     string `json:"cause"`
	Treatment string `json:"treatment"`
}

type AnswerType string

const (
	AnswerDirect AnswerType = "direct_answer"
	AnswerSearch AnswerType = "search_results"
)

// QueryAnswer is what the free-text flow hands back: either a direct
// answer string for unrelated queries, or a consolidated hit list.
type QueryAnswer struct {
	Type   AnswerType  `json:"type"`
	Direct string      `json:"answer,omitempty"`
	Hits   []SearchHit `json:"results,omitempty"`
}
