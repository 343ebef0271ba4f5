package domain

import "time"

// Label is one classifier output with its confidence.
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// LeafPrediction is the raw output of the external leaf classifier.
type LeafPrediction struct {
	Plant   Label `json:"plant"`
	Disease Label `json:"disease"`
}

// Diagnosis pairs a leaf prediction with display-language labels and the
// cause/treatment records found for the plant-disease case, if any.
type Diagnosis struct {
	Prediction LeafPrediction `json:"prediction"`
	PlantVI    string         `json:"plant_vi"`
	DiseaseVI  string         `json:"disease_vi"`
	Cases      []CaseRecord   `json:"cases,omitempty"`
}

// QueryLogEntry records one pipeline invocation for the history store.
type QueryLogEntry struct {
	ID          string    `json:"id"`
	Flow        string    `json:"flow"`
	Query       string    `json:"query"`
	AnswerType  string    `json:"answer_type"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	FlowFreeText = "free_text"
	FlowCase     = "case_lookup"
)
