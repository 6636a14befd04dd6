package predictor

import (
	"github.com/dmitryikh/leaves"

	"emailguess/internal/apperrors"
	"emailguess/internal/metadata"
)

func init() {
	Register(KindLightGBM, newLightGBMPredictor)
}

// lightGBMPredictor scores rows with a pure-Go LightGBM ensemble: a
// row-major float matrix, boolean "flag on" load of raw-score-disabled
// (normal, not raw) predictions, starting at iteration 0 using every
// iteration the model contains — the Go equivalent of the vendor
// library's predict-all-trees call.
type lightGBMPredictor struct {
	ensemble *leaves.Ensemble
}

func newLightGBMPredictor(modelPath string) (Predictor, error) {
	ensemble, err := leaves.LGEnsembleFromFile(modelPath, true)
	if err != nil {
		return nil, apperrors.Configuration("LIGHTGBM_LOAD_FAILED", "failed to load LightGBM model", err)
	}
	return &lightGBMPredictor{ensemble: ensemble}, nil
}

func (p *lightGBMPredictor) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error) {
	if err := checkMatrixShape(flatMatrix, templates); err != nil {
		return nil, err
	}

	scores := scoreRows(p.ensemble, flatMatrix, len(templates))
	return topKFromScores(scores, templates, topK), nil
}

func (p *lightGBMPredictor) Close() error { return nil }
