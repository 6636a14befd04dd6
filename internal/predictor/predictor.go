// Package predictor scores the feature matrix produced for one query's
// candidate-template class and returns the top-K templates by score. Two
// backends satisfy the same capability set: a CatBoost-equivalent and a
// LightGBM-equivalent gradient-boosted scorer.
package predictor

import (
	"sort"

	"emailguess/internal/apperrors"
	"emailguess/internal/features"
	"emailguess/internal/metadata"
)

// TemplatePrediction is one scored candidate template.
type TemplatePrediction struct {
	Index      int
	Score      float64
	TemplateID int32
}

// Predictor is the capability every backend satisfies: score all rows of a
// flat feature matrix and return the top-K templates by score.
type Predictor interface {
	// PredictTopTemplates scores every row of flatMatrix (one row per
	// entry of templates, in the same order) and returns the K
	// highest-scoring templates, sorted by score descending, ties broken
	// by ascending template id. K is clamped to min(K, len(templates)).
	//
	// len(flatMatrix) must equal len(templates) * features.ColumnCount;
	// violating this is a fatal *apperrors.Error of KindArgument.
	PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]TemplatePrediction, error)

	// Close releases any resources held by the underlying model handle.
	Close() error
}

// checkMatrixShape validates the flatMatrix/templates length invariant
// shared by every backend.
func checkMatrixShape(flatMatrix []float32, templates []metadata.CandidateTemplate) error {
	want := len(templates) * features.ColumnCount
	if len(flatMatrix) != want {
		return apperrors.Argument(
			"MATRIX_SIZE_MISMATCH",
			"feature matrix length does not match templates*columns",
		)
	}
	return nil
}

// topKFromScores selects the K highest scores, breaking ties by ascending
// template id (equivalently, ascending index, since templates are already
// ordered by ascending template_id). A full sort is used for simplicity;
// the predictor contract only requires that the *result* look as if a
// partial selection had run, not that the algorithm itself avoid sorting
// the tail.
func topKFromScores(scores []float64, templates []metadata.CandidateTemplate, topK int) []TemplatePrediction {
	all := make([]TemplatePrediction, len(templates))
	for i, tpl := range templates {
		all[i] = TemplatePrediction{Index: i, Score: scores[i], TemplateID: tpl.TemplateID}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Index < all[j].Index
	})

	if topK > len(all) {
		topK = len(all)
	}
	if topK < 0 {
		topK = 0
	}
	return all[:topK]
}
