package analytics

import (
	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

// Engine composes the two forecast streams, the regime window and their
// accuracy metrics into one analysis result.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (Engine) Run(features []models.FeatureVector) (*models.AnalysisResult, error) {
	priceForecasts, err := PredictPrices(features)
	if err != nil {
		return nil, err
	}
	volForecasts, err := ForecastVolatility(features)
	if err != nil {
		return nil, err
	}

	actualPrices := make([]float64, len(priceForecasts))
	predPrices := make([]float64, len(priceForecasts))
	for i, p := range priceForecasts {
		actualPrices[i] = p.Actual
		predPrices[i] = p.Predicted
	}
	priceMetrics, err := ComputeMetrics(actualPrices, predPrices)
	if err != nil {
		return nil, err
	}

	actualVols := make([]float64, len(volForecasts))
	predVols := make([]float64, len(volForecasts))
	for i, v := range volForecasts {
		actualVols[i] = v.ActualVolatility
		predVols[i] = v.ForecastVolatility
	}
	volMetrics, err := ComputeMetrics(actualVols, predVols)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		PriceForecasts: priceForecasts,
		VolForecasts:   volForecasts,
		Regimes:        ClassifyRegimes(features),
		Metrics: models.AnalysisMetrics{
			Price:      priceMetrics,
			Volatility: volMetrics,
		},
	}, nil
}

var _ domsvc.Analyzer = (*Engine)(nil)
