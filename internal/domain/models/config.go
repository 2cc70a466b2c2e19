package models

import "time"

// GenerationConfig fixes the stochastic process parameters for one
// snapshot run. A run is single-symbol; volatility and price state are
// carried tick to tick, so generation is strictly sequential.
type GenerationConfig struct {
	Symbol                string
	BasePrice             float64
	BaseVolatility        float64
	BaseSpread            float64
	VolatilityPersistence float64
	Start                 time.Time
	TickInterval          time.Duration
}

// DefaultGenerationConfig mirrors the reference market-open scenario.
func DefaultGenerationConfig(symbol string) GenerationConfig {
	return GenerationConfig{
		Symbol:                symbol,
		BasePrice:             150.0,
		BaseVolatility:        0.0002,
		BaseSpread:            0.01,
		VolatilityPersistence: 0.95,
		Start:                 time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		TickInterval:          500 * time.Millisecond,
	}
}
