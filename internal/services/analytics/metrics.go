package analytics

import (
	"fmt"
	"math"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

// ComputeMetrics evaluates a predicted stream against its actuals. Inputs
// must be parallel and non-empty. With fewer than two points direction
// accuracy is undefined; it is reported as 0 with DirectionValid=false.
func ComputeMetrics(actual, predicted []float64) (models.Metrics, error) {
	if len(actual) != len(predicted) {
		return models.Metrics{}, fmt.Errorf("%w: stream length mismatch %d vs %d",
			domsvc.ErrAnalysisUnavailable, len(actual), len(predicted))
	}
	n := len(actual)
	if n == 0 {
		return models.Metrics{}, fmt.Errorf("%w: empty streams", domsvc.ErrAnalysisUnavailable)
	}

	var sumSq, sumAbs float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sumSq += d * d
		sumAbs += math.Abs(d)
	}

	m := models.Metrics{
		MSE: sumSq / float64(n),
		MAE: sumAbs / float64(n),
	}
	m.RMSE = math.Sqrt(m.MSE)

	if n >= 2 {
		matched := 0
		for i := 1; i < n; i++ {
			if signOf(actual[i]-actual[i-1]) == signOf(predicted[i]-predicted[i-1]) {
				matched++
			}
		}
		m.DirectionAccuracy = 100 * float64(matched) / float64(n-1)
		m.DirectionValid = true
	}
	return m, nil
}

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
