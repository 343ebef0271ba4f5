package domain

// Entity kinds the classification prompt asks the model to emit.
const (
	EntityPlantName = "TenCay"
	EntityDisease   = "Benh"
	EntityCause     = "NguyenNhan"
	EntitySymptom   = "TrieuChung"
	EntityTreatment = "DieuTri"
)

// Relationship kinds. The retrieval flow only acts on RelationHasSymptom;
// the rest are recognized but ignored.
const (
	RelationContractedBy = "BI_MAC"
	RelationTreatedBy    = "CACH_DIEU_TRI"
	RelationHasSymptom   = "CO_TRIEU_CHUNG"
	RelationHasCaseID    = "CO_ID_BENH"
	RelationCausedBy     = "CO_NGUYEN_NHAN"
)

type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Relationship struct {
	Entity1      string `json:"entity1"`
	RelationType string `json:"relation_type"`
	Entity2      string `json:"entity2"`
}

// ClassificationResult is the typed form of the model's free-text reply.
// IsPlantDiseaseQuery is nil when the reply carried no recognizable flag.
type ClassificationResult struct {
	IsPlantDiseaseQuery *bool          `json:"is_plant_disease_query"`
	Answer              string         `json:"answer,omitempty"`
	Entities            []Entity       `json:"entities"`
	Relationships       []Relationship `json:"relationships"`
}

func (r ClassificationResult) Related() bool {
	return r.IsPlantDiseaseQuery != nil && *r.IsPlantDiseaseQuery
}

func (r ClassificationResult) Unrelated() bool {
	return r.IsPlantDiseaseQuery != nil && !*r.IsPlantDiseaseQuery
}

type ParseStatus int

const (
	ParseFailed ParseStatus = iota
	ParsePartial
	ParseFull
)

func (s ParseStatus) String() string {
	switch s {
	case ParseFull:
		return "full"
	case ParsePartial:
		return "partial"
	default:
		return "failed"
	}
}

// ParseOutcome distinguishes "confidently parsed" from "the model drifted
// off schema" so callers do not mistake silence for a negative answer.
type ParseOutcome struct {
	Status        ParseStatus
	MissingFields []string
}
