package predictor

import (
	"github.com/dmitryikh/leaves"

	"emailguess/internal/apperrors"
	"emailguess/internal/metadata"
)

func init() {
	Register(KindCatBoost, newCatBoostPredictor)
}

// catBoostPredictor scores rows with a pure-Go CatBoost ensemble. Unlike
// the vendor C API (which expects an array of per-object float pointers),
// leaves.Ensemble exposes a uniform row-major Predict call for both
// backends, which is exactly the capability-set unification the engine's
// design notes call for.
type catBoostPredictor struct {
	ensemble *leaves.Ensemble
}

func newCatBoostPredictor(modelPath string) (Predictor, error) {
	ensemble, err := leaves.CatBoostModelFromFile(modelPath)
	if err != nil {
		return nil, apperrors.Configuration("CATBOOST_LOAD_FAILED", "failed to load CatBoost model", err)
	}
	return &catBoostPredictor{ensemble: ensemble}, nil
}

func (p *catBoostPredictor) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error) {
	if err := checkMatrixShape(flatMatrix, templates); err != nil {
		return nil, err
	}

	scores := scoreRows(p.ensemble, flatMatrix, len(templates))
	return topKFromScores(scores, templates, topK), nil
}

func (p *catBoostPredictor) Close() error { return nil }
