package parse

import (
	"testing"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

func TestReplyRelatedSchema(t *testing.T) {
	raw := "IsPlantDiseaseQuery: 1\n\nEntities:\n- tomato: PlantName\n- yellow leaf: Symptom\n\nRelationships:\n- (tomato, CO_TRIEU_CHUNG, yellow leaf)\n"

	result, outcome := Reply(raw)

	if !result.Related() {
		t.Fatalf("expected related classification")
	}
	if result.Answer != "" {
		t.Fatalf("expected empty answer, got %q", result.Answer)
	}
	if len(result.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(result.Entities))
	}
	if result.Entities[0] != (domain.Entity{Name: "tomato", Type: "PlantName"}) {
		t.Fatalf("unexpected first entity: %+v", result.Entities[0])
	}
	if len(result.Relationships) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(result.Relationships))
	}
	rel := result.Relationships[0]
	if rel.Entity1 != "tomato" || rel.RelationType != domain.RelationHasSymptom || rel.Entity2 != "yellow leaf" {
		t.Fatalf("unexpected relationship: %+v", rel)
	}
	if outcome.Status != domain.ParseFull {
		t.Fatalf("expected full parse, got %s (missing %v)", outcome.Status, outcome.MissingFields)
	}
}

func TestReplyUnrelatedSchema(t *testing.T) {
	raw := "IsPlantDiseaseQuery: 0\n\nAnswer: 'Giá cà chua hôm nay khoảng 25.000đ/kg.'\n"

	result, outcome := Reply(raw)

	if !result.Unrelated() {
		t.Fatalf("expected unrelated classification")
	}
	if result.Answer == "" {
		t.Fatalf("expected direct answer")
	}
	if len(result.Entities) != 0 || len(result.Relationships) != 0 {
		t.Fatalf("expected no extractions, got %d/%d", len(result.Entities), len(result.Relationships))
	}
	if outcome.Status != domain.ParseFull {
		t.Fatalf("expected full parse, got %s", outcome.Status)
	}
}

func TestReplyNoMarkers(t *testing.T) {
	result, outcome := Reply("the model rambled about weather instead")

	if result.IsPlantDiseaseQuery != nil {
		t.Fatalf("expected unknown flag")
	}
	if len(result.Entities) != 0 || len(result.Relationships) != 0 {
		t.Fatalf("expected empty collections")
	}
	if outcome.Status != domain.ParseFailed {
		t.Fatalf("expected failed parse, got %s", outcome.Status)
	}
}

func TestReplyEmptyInput(t *testing.T) {
	result, outcome := Reply("")

	if result.IsPlantDiseaseQuery != nil || result.Answer != "" {
		t.Fatalf("expected empty defaults, got %+v", result)
	}
	if outcome.Status != domain.ParseFailed {
		t.Fatalf("expected failed parse, got %s", outcome.Status)
	}
}

func TestReplyPartialWhenBlocksMissing(t *testing.T) {
	result, outcome := Reply("IsPlantDiseaseQuery: 1\n\nsome unstructured text")

	if !result.Related() {
		t.Fatalf("expected related classification")
	}
	if outcome.Status != domain.ParsePartial {
		t.Fatalf("expected partial parse, got %s", outcome.Status)
	}
	want := map[string]bool{"Entities": true, "Relationships": true}
	for _, field := range outcome.MissingFields {
		if !want[field] {
			t.Fatalf("unexpected missing field %q", field)
		}
		delete(want, field)
	}
	if len(want) != 0 {
		t.Fatalf("missing fields not reported: %v", want)
	}
}

func TestReplySkipsMalformedLines(t *testing.T) {
	raw := "IsPlantDiseaseQuery: 1\n\nEntities:\n- tomato: PlantName\nnot a bullet line\n\nRelationships:\n- (a, CO_TRIEU_CHUNG, b)\nbroken (line\n"

	result, _ := Reply(raw)

	if len(result.Entities) != 1 {
		t.Fatalf("expected malformed entity line skipped, got %d entities", len(result.Entities))
	}
	if len(result.Relationships) != 1 {
		t.Fatalf("expected malformed relationship line skipped, got %d", len(result.Relationships))
	}
}

func TestReplyPreservesUnknownEntityType(t *testing.T) {
	raw := "IsPlantDiseaseQuery: 1\n\nEntities:\n- mystery: SomethingNew\n\nRelationships:\n- (a, BI_MAC, b)\n"

	result, _ := Reply(raw)

	if len(result.Entities) != 1 || result.Entities[0].Type != "SomethingNew" {
		t.Fatalf("expected unknown type preserved, got %+v", result.Entities)
	}
}
