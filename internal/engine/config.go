// Package engine orchestrates the full prediction pipeline: domain
// resolution, name decomposition, feature extraction, candidate-template
// selection, scoring, and local-part rendering, returning ranked
// EmailPredictionResult rows.
package engine

import (
	"github.com/go-playground/validator/v10"

	"emailguess/internal/apperrors"
	"emailguess/internal/predictor"
)

// Config is the full set of paths and knobs recognised at engine
// construction. The first three metadata paths and the model path for
// whichever backend is used are required; the rest are optional.
type Config struct {
	StandardTemplatesPath string `validate:"required"`
	ComplexTemplatesPath  string `validate:"required"`
	FirmTemplateMapPath   string `validate:"required"`
	CanonicalFirmsPath    string
	FirmMatchCachePath    string

	PredictorBackend predictor.Kind `validate:"required"`
	ModelPath        string         `validate:"required"`

	// VerificationAPIKey / EnrichmentAPIKey / *BaseURL configure the
	// optional post-ranking hooks. Leaving a key empty disables that
	// hook entirely; the engine never requires them.
	VerificationAPIKey string
	VerificationBaseURL string
	EnrichmentAPIKey    string
	EnrichmentBaseURL   string

	// DefaultTopK is used by Predict when the caller passes topK <= 0.
	DefaultTopK int `validate:"required,min=1"`
}

var configValidator = validator.New()

// Validate checks Config against its struct tags, returning a
// *apperrors.Error of KindConfiguration on the first violation.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return apperrors.Configuration("INVALID_CONFIG", "engine configuration failed validation", err)
	}
	return nil
}
