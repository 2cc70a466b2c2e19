package analytics

import (
	"fmt"
	"math"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

// Model constants. The GARCH parameters are fixed, not estimated from data.
const (
	trainFraction = 0.8
	historyWindow = 10  // history elements feeding the mean-change estimate
	changeDamping = 0.7 // damping applied to the mean change
	garchOmega    = 1e-5
	garchAlpha    = 0.1
	garchBeta     = 0.85
	garchSeedVar  = 1e-4
)

func splitIndex(n int) int {
	return int(trainFraction * float64(n))
}

// PredictPrices runs the naive autoregressive price predictor walk-forward
// over the test region. History grows with realized values only: the actual
// mid price is appended after each step, never the prediction.
func PredictPrices(features []models.FeatureVector) ([]models.ForecastPoint, error) {
	split := splitIndex(len(features))
	if split < historyWindow {
		return nil, fmt.Errorf("%w: need %d training points to prime the price predictor, have %d",
			domsvc.ErrAnalysisUnavailable, historyWindow, split)
	}
	if split >= len(features) {
		return nil, fmt.Errorf("%w: empty test region", domsvc.ErrAnalysisUnavailable)
	}

	history := make([]float64, 0, len(features))
	for _, f := range features[:split] {
		history = append(history, f.MidPrice)
	}

	out := make([]models.ForecastPoint, 0, len(features)-split)
	for i := split; i < len(features); i++ {
		last := history[len(history)-1]
		window := history[len(history)-historyWindow:]
		sumChange := 0.0
		for j := 1; j < len(window); j++ {
			sumChange += window[j] - window[j-1]
		}
		avgChange := sumChange / float64(historyWindow-1)

		predicted := last + changeDamping*avgChange
		actual := features[i].MidPrice
		out = append(out, models.ForecastPoint{
			Timestamp: features[i].Timestamp,
			Actual:    actual,
			Predicted: predicted,
			Error:     actual - predicted,
		})
		history = append(history, actual)
	}
	return out, nil
}

// ForecastVolatility runs the GARCH(1,1)-style recursion over the mid-price
// return series. The conditional variance warms up over every training-region
// return without emitting, then each test return yields one forecast before
// the realized return updates the recursion.
func ForecastVolatility(features []models.FeatureVector) ([]models.VolForecastPoint, error) {
	if len(features) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 features for a return series", domsvc.ErrAnalysisUnavailable)
	}
	returns := make([]float64, 0, len(features)-1)
	for i := 0; i+1 < len(features); i++ {
		returns = append(returns, (features[i+1].MidPrice-features[i].MidPrice)/features[i].MidPrice)
	}

	split := splitIndex(len(features))
	if split < 1 {
		return nil, fmt.Errorf("%w: need at least 1 training return for warm-up", domsvc.ErrAnalysisUnavailable)
	}
	if split >= len(returns) {
		return nil, fmt.Errorf("%w: empty test region", domsvc.ErrAnalysisUnavailable)
	}

	condVar := garchSeedVar
	for _, r := range returns[:split] {
		condVar = garchOmega + garchAlpha*r*r + garchBeta*condVar
	}

	out := make([]models.VolForecastPoint, 0, len(returns)-split)
	for i := split; i < len(returns); i++ {
		r := returns[i]
		// Timestamp of the feature one ahead: the forecast is aligned with
		// the return it predicts.
		out = append(out, models.VolForecastPoint{
			Timestamp:           features[i+1].Timestamp,
			ActualVolatility:    math.Abs(r),
			ForecastVolatility:  math.Sqrt(condVar),
			ConditionalVariance: condVar,
		})
		condVar = garchOmega + garchAlpha*r*r + garchBeta*condVar
	}
	return out, nil
}
