package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"LOBSim/internal/domain/models"
	drepo "LOBSim/internal/domain/repository"
	domsvc "LOBSim/internal/domain/service"
	icache "LOBSim/internal/service/cache"
	xlogger "LOBSim/pkg/logger"
)

// AnalysisService runs the forecast pipeline over generated feature sets and
// caches results. Runs are deterministic per (symbol, n, seed, lookback), so
// a cached result is exact, not stale.
type AnalysisService struct {
	builder  *DatasetBuilder
	analyzer domsvc.Analyzer
	cache    icache.BytesCache
	ttl      time.Duration
	metrics  drepo.Metrics
	logger   *xlogger.Logger
}

// NewAnalysisService creates a new AnalysisService instance.
func NewAnalysisService(
	builder *DatasetBuilder,
	analyzer domsvc.Analyzer,
	cache icache.BytesCache,
	ttl time.Duration,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
) *AnalysisService {
	return &AnalysisService{
		builder:  builder,
		analyzer: analyzer,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run executes the full analysis for a seeded run, serving from cache when
// the same run was analyzed before.
func (s *AnalysisService) Run(req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	key := fmt.Sprintf("analysis:%s:%d:%d:%d", req.Symbol, req.N, req.Seed, req.Lookback)

	if s.cache != nil {
		if b, ok, err := s.cache.GetBytes(key); err == nil && ok {
			var res models.AnalysisResult
			if err := json.Unmarshal(b, &res); err == nil {
				return &res, nil
			}
			// corrupt entry falls through to recompute
		} else if err != nil {
			s.logger.Warn("analysis cache read failed", xlogger.Error(err))
		}
	}

	feats, err := s.builder.Features(req.Symbol, req.N, req.Seed, req.Lookback)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.analyzer.Run(feats)
	if err != nil {
		s.metrics.RecordError("analysis")
		return nil, err
	}
	s.metrics.RecordAnalysisRun(req.Symbol)
	s.metrics.RecordLatency("analysis", time.Since(start).Seconds())

	if s.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := s.cache.SetBytes(key, b, s.ttl); err != nil {
				s.logger.Warn("analysis cache write failed", xlogger.Error(err))
			}
		}
	}
	return res, nil
}
