package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/haiminh/plant-disease-assistant/internal/core/domain"
	"github.com/haiminh/plant-disease-assistant/internal/core/ports"
)

type DiagnoseUseCase struct {
	classifier ports.LeafClassifier
	translator ports.Translator
	lookup     ports.CaseLookupService
	logger     *slog.Logger
}

func NewDiagnoseUseCase(
	classifier ports.LeafClassifier,
	translator ports.Translator,
	lookup ports.CaseLookupService,
	logger *slog.Logger,
) *DiagnoseUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnoseUseCase{
		classifier: classifier,
		translator: translator,
		lookup:     lookup,
		logger:     logger,
	}
}

// Diagnose runs the image flow: classify the leaf, translate the labels
// to the display language, then look up the matching case. A failing
// lookup degrades to a classification-only diagnosis.
func (uc *DiagnoseUseCase) Diagnose(ctx context.Context, imageURL string) (*domain.Diagnosis, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "diagnose leaf", errors.New("empty image url"))
	}

	prediction, err := uc.classifier.Predict(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("predict leaf: %w", err)
	}

	diagnosis := &domain.Diagnosis{
		Prediction: prediction,
		PlantVI:    uc.translator.TranslateLabel(prediction.Plant.Name),
		DiseaseVI:  uc.translator.TranslateLabel(prediction.Disease.Name),
	}

	records, err := uc.lookup.LookupCase(ctx, diagnosis.PlantVI, diagnosis.DiseaseVI)
	if err != nil {
		uc.logger.Warn("case lookup after classification failed",
			"plant", diagnosis.PlantVI,
			"disease", diagnosis.DiseaseVI,
			"error", err,
		)
		return diagnosis, nil
	}
	diagnosis.Cases = records
	return diagnosis, nil
}
