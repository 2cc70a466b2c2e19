package models

import "time"

// VolRegime is a coarse volatility classification relative to the run mean.
type VolRegime string

const (
	RegimeLow    VolRegime = "low"
	RegimeNormal VolRegime = "normal"
	RegimeHigh   VolRegime = "high"
)

// ForecastPoint is a one-step-ahead price forecast against its realized value.
type ForecastPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Actual    float64   `json:"actual"`
	Predicted float64   `json:"predicted"`
	Error     float64   `json:"error"`
}

// VolForecastPoint is a one-step-ahead volatility forecast. ForecastVolatility
// is sqrt of the conditional variance held before the return was revealed.
type VolForecastPoint struct {
	Timestamp           time.Time `json:"timestamp"`
	ActualVolatility    float64   `json:"actual_volatility"`
	ForecastVolatility  float64   `json:"forecast_volatility"`
	ConditionalVariance float64   `json:"conditional_variance"`
}

// RegimePoint labels one feature record with its volatility regime.
type RegimePoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Volatility float64   `json:"volatility"`
	Regime     VolRegime `json:"regime"`
}

// Metrics holds forecast accuracy statistics. DirectionValid is false when
// fewer than two points were available and DirectionAccuracy is reported as 0.
type Metrics struct {
	MSE               float64 `json:"mse"`
	RMSE              float64 `json:"rmse"`
	MAE               float64 `json:"mae"`
	DirectionAccuracy float64 `json:"direction_accuracy"`
	DirectionValid    bool    `json:"direction_valid"`
}

// AnalysisMetrics groups accuracy metrics per forecast stream.
type AnalysisMetrics struct {
	Price      Metrics `json:"price"`
	Volatility Metrics `json:"volatility"`
}

// AnalysisResult is the full output of one analysis run over a feature
// sequence: both walk-forward forecast streams, the trailing regime window
// and their accuracy metrics.
type AnalysisResult struct {
	PriceForecasts []ForecastPoint    `json:"price_forecasts"`
	VolForecasts   []VolForecastPoint `json:"vol_forecasts"`
	Regimes        []RegimePoint      `json:"regimes"`
	Metrics        AnalysisMetrics    `json:"metrics"`
}

// RunStats are the summary statistics of one generated snapshot run.
type RunStats struct {
	Symbol        string  `json:"symbol"`
	Count         int     `json:"count"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	AvgSpread     float64 `json:"avg_spread"`
	AvgVolatility float64 `json:"avg_volatility"`
}
