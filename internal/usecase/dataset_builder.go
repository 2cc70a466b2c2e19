package usecase

import (
	"time"

	"LOBSim/internal/domain/models"
	drepo "LOBSim/internal/domain/repository"
	domsvc "LOBSim/internal/domain/service"
	"LOBSim/internal/services/sim"
)

// DatasetBuilder generates seeded snapshot runs and derives feature sets
// from them. Every method is deterministic for a given (symbol, n, seed).
type DatasetBuilder struct {
	sim     domsvc.Simulator
	ex      domsvc.FeatureExtractor
	metrics drepo.Metrics
	base    models.GenerationConfig
}

// NewDatasetBuilder creates a new DatasetBuilder instance.
func NewDatasetBuilder(
	simulator domsvc.Simulator,
	ex domsvc.FeatureExtractor,
	metrics drepo.Metrics,
	base models.GenerationConfig,
) *DatasetBuilder {
	return &DatasetBuilder{
		sim:     simulator,
		ex:      ex,
		metrics: metrics,
		base:    base,
	}
}

// Snapshots generates an n-tick snapshot run for symbol from a fixed seed.
func (b *DatasetBuilder) Snapshots(symbol string, n int, seed uint64) ([]models.Snapshot, error) {
	start := time.Now()
	cfg := b.base
	cfg.Symbol = symbol

	snaps, err := b.sim.Generate(n, cfg, sim.NewSeededSource(seed))
	if err != nil {
		b.metrics.RecordError("generate")
		return nil, err
	}

	b.metrics.RecordSnapshotsGenerated(symbol, len(snaps))
	b.metrics.RecordLatency("generate", time.Since(start).Seconds())
	if len(snaps) > 0 {
		b.metrics.RecordLastMidPrice(symbol, snaps[len(snaps)-1].MidPrice)
	}
	return snaps, nil
}

// Features generates a snapshot run and extracts its feature vectors.
func (b *DatasetBuilder) Features(symbol string, n int, seed uint64, lookback int) ([]models.FeatureVector, error) {
	snaps, err := b.Snapshots(symbol, n, seed)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	feats, err := b.ex.Extract(snaps, lookback)
	if err != nil {
		b.metrics.RecordError("extract")
		return nil, err
	}
	b.metrics.RecordLatency("extract", time.Since(start).Seconds())
	return feats, nil
}

// Stats summarizes a snapshot run.
func (b *DatasetBuilder) Stats(snaps []models.Snapshot) models.RunStats {
	stats := models.RunStats{Count: len(snaps)}
	if len(snaps) == 0 {
		return stats
	}
	stats.Symbol = snaps[0].Symbol
	stats.MinPrice = snaps[0].MidPrice
	stats.MaxPrice = snaps[0].MidPrice

	var spreadSum, volSum float64
	for _, s := range snaps {
		if s.MidPrice < stats.MinPrice {
			stats.MinPrice = s.MidPrice
		}
		if s.MidPrice > stats.MaxPrice {
			stats.MaxPrice = s.MidPrice
		}
		spreadSum += s.Spread
		volSum += s.Volatility
	}
	stats.AvgSpread = spreadSum / float64(len(snaps))
	stats.AvgVolatility = volSum / float64(len(snaps))
	return stats
}
