package service

import "LOBSim/internal/domain/models"

// Uniform is a source of uniform draws in (0,1). Implementations must never
// return exactly 0; callers rely on ln(u) being finite.
type Uniform interface {
	Float64() float64
}

// Simulator produces an ordered, immutable snapshot sequence from an
// injected uniform source.
type Simulator interface {
	Generate(n int, cfg models.GenerationConfig, src Uniform) ([]models.Snapshot, error)
}

// FeatureExtractor derives feature vectors from a snapshot sequence.
// lookback >= len(snapshots) yields an empty sequence, not an error.
type FeatureExtractor interface {
	Extract(snapshots []models.Snapshot, lookback int) ([]models.FeatureVector, error)
}

// Analyzer runs the walk-forward forecasts, regime classification and
// accuracy metrics over a feature sequence.
type Analyzer interface {
	Run(features []models.FeatureVector) (*models.AnalysisResult, error)
}
