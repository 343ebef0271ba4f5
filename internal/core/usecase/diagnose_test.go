package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
)

func TestDiagnoseTranslatesAndLooksUpCase(t *testing.T) {
	classifier := &fakeLeafClassifier{
		prediction: domain.LeafPrediction{
			Plant:   domain.Label{Name: "tomato", Confidence: 0.96},
			Disease: domain.Label{Name: "Early_blight", Confidence: 0.87},
		},
	}
	translator := &fakeTranslator{table: map[string]string{
		"tomato":       "Cà chua",
		"Early_blight": "Bệnh sương mai sớm",
	}}
	store := &fakeCaseStore{records: []domain.CaseRecord{{Cause: "nấm Alternaria", Treatment: "luân canh"}}}
	lookup := NewCaseLookupUseCase(store, nil, nil)

	uc := NewDiagnoseUseCase(classifier, translator, lookup, nil)
	diagnosis, err := uc.Diagnose(context.Background(), "https://cdn.example/leaf.jpg")
	if err != nil {
		t.Fatalf("Diagnose() error = %v", err)
	}
	if diagnosis.PlantVI != "Cà chua" || diagnosis.DiseaseVI != "Bệnh sương mai sớm" {
		t.Fatalf("labels not translated: %+v", diagnosis)
	}
	if store.lookedUpPlant != "cà chua" {
		t.Fatalf("lookup not normalized: %q", store.lookedUpPlant)
	}
	if len(diagnosis.Cases) != 1 {
		t.Fatalf("expected 1 case record, got %d", len(diagnosis.Cases))
	}
}

func TestDiagnoseDegradesWhenLookupFails(t *testing.T) {
	classifier := &fakeLeafClassifier{
		prediction: domain.LeafPrediction{
			Plant:   domain.Label{Name: "apple", Confidence: 0.9},
			Disease: domain.Label{Name: "Black_rot", Confidence: 0.8},
		},
	}
	store := &fakeCaseStore{lookupErr: errors.New("graph unavailable")}
	lookup := NewCaseLookupUseCase(store, nil, nil)

	uc := NewDiagnoseUseCase(classifier, &fakeTranslator{}, lookup, nil)
	diagnosis, err := uc.Diagnose(context.Background(), "https://cdn.example/leaf.jpg")
	if err != nil {
		t.Fatalf("lookup failure must not fail the diagnosis: %v", err)
	}
	if diagnosis.Prediction.Plant.Name != "apple" {
		t.Fatalf("prediction lost: %+v", diagnosis)
	}
	if diagnosis.Cases != nil {
		t.Fatalf("expected no case records, got %+v", diagnosis.Cases)
	}
}

func TestDiagnoseFailsWhenPredictionFails(t *testing.T) {
	classifier := &fakeLeafClassifier{err: domain.WrapError(domain.ErrExternalService, "leaf prediction", errors.New("model loading"))}

	uc := NewDiagnoseUseCase(classifier, &fakeTranslator{}, NewCaseLookupUseCase(&fakeCaseStore{}, nil, nil), nil)
	_, err := uc.Diagnose(context.Background(), "https://cdn.example/leaf.jpg")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}

func TestDiagnoseRejectsEmptyImageURL(t *testing.T) {
	uc := NewDiagnoseUseCase(&fakeLeafClassifier{}, &fakeTranslator{}, NewCaseLookupUseCase(&fakeCaseStore{}, nil, nil), nil)

	_, err := uc.Diagnose(context.Background(), "  ")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
