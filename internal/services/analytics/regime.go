package analytics

import "LOBSim/internal/domain/models"

const (
	regimeWindow  = 500
	highThreshold = 1.5
	lowThreshold  = 0.5
)

// ClassifyRegimes labels the trailing regimeWindow feature points by
// volatility regime relative to the mean volatility of the entire sequence.
func ClassifyRegimes(features []models.FeatureVector) []models.RegimePoint {
	if len(features) == 0 {
		return []models.RegimePoint{}
	}

	avgVol := 0.0
	for _, f := range features {
		avgVol += f.Volatility
	}
	avgVol /= float64(len(features))

	start := 0
	if len(features) > regimeWindow {
		start = len(features) - regimeWindow
	}

	out := make([]models.RegimePoint, 0, len(features)-start)
	for _, f := range features[start:] {
		regime := models.RegimeNormal
		switch {
		case f.Volatility > highThreshold*avgVol:
			regime = models.RegimeHigh
		case f.Volatility < lowThreshold*avgVol:
			regime = models.RegimeLow
		}
		out = append(out, models.RegimePoint{
			Timestamp:  f.Timestamp,
			Volatility: f.Volatility,
			Regime:     regime,
		})
	}
	return out
}
