package predictor

import (
	"github.com/dmitryikh/leaves"

	"emailguess/internal/features"
)

// scoreRows scores each of nRows rows of a flat, row-major float32 matrix
// against ensemble, returning one score per row. leaves.Ensemble predicts
// one row at a time into a caller-provided output slice sized to the
// model's output-group count; this model always has a single output
// group (the template-relevance score), so predictions[0] is the score.
func scoreRows(ensemble *leaves.Ensemble, flatMatrix []float32, nRows int) []float64 {
	scores := make([]float64, nRows)

	row := make([]float64, features.ColumnCount)
	predictions := make([]float64, ensemble.NOutputGroups())

	for i := 0; i < nRows; i++ {
		offset := i * features.ColumnCount
		for j := 0; j < features.ColumnCount; j++ {
			row[j] = float64(flatMatrix[offset+j])
		}
		ensemble.Predict(row, ensemble.NEstimators(), predictions)
		scores[i] = predictions[0]
	}

	return scores
}
