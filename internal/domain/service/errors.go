package service

import "errors"

var (
	// ErrInvalidConfig signals a generation request that cannot be run
	// (n < 1, non-positive base volatility or spread, missing source).
	ErrInvalidConfig = errors.New("invalid generation config")

	// ErrAnalysisUnavailable signals a feature sequence too short to prime
	// the forecast recursions or compute metrics.
	ErrAnalysisUnavailable = errors.New("analysis unavailable: insufficient data")
)
