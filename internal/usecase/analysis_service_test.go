package usecase

import (
	"reflect"
	"testing"
	"time"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
	icache "LOBSim/internal/service/cache"
	"LOBSim/internal/services/analytics"
	xlogger "LOBSim/pkg/logger"
)

type countingAnalyzer struct {
	inner domsvc.Analyzer
	runs  int
}

func (a *countingAnalyzer) Run(feats []models.FeatureVector) (*models.AnalysisResult, error) {
	a.runs++
	return a.inner.Run(feats)
}

func testAnalysisService(t *testing.T, analyzer domsvc.Analyzer, cache icache.BytesCache) *AnalysisService {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewAnalysisService(testBuilder(newFakeMetrics()), analyzer, cache, time.Minute, newFakeMetrics(), log)
}

func TestAnalysisServiceRun(t *testing.T) {
	svc := testAnalysisService(t, analytics.NewEngine(), nil)

	req := &models.AnalysisRequest{Symbol: "AAPL", N: 300, Seed: 42, Lookback: 10}
	res, err := svc.Run(req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 300 snapshots, lookback 10 -> 290 features, split 232.
	if len(res.PriceForecasts) != 58 {
		t.Fatalf("price forecasts: got %d want 58", len(res.PriceForecasts))
	}
	if len(res.Regimes) != 290 {
		t.Fatalf("regimes: got %d want 290", len(res.Regimes))
	}
}

func TestAnalysisServiceCacheHit(t *testing.T) {
	counting := &countingAnalyzer{inner: analytics.NewEngine()}
	svc := testAnalysisService(t, counting, icache.NewTTLCache())

	req := &models.AnalysisRequest{Symbol: "AAPL", N: 300, Seed: 42, Lookback: 10}
	first, err := svc.Run(req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Run(req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if counting.runs != 1 {
		t.Fatalf("analyzer ran %d times, want 1 (cache hit)", counting.runs)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs from computed result")
	}

	// A different seed is a different run and must miss the cache.
	req2 := &models.AnalysisRequest{Symbol: "AAPL", N: 300, Seed: 7, Lookback: 10}
	if _, err := svc.Run(req2); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if counting.runs != 2 {
		t.Fatalf("analyzer ran %d times, want 2", counting.runs)
	}
}

func TestAnalysisServiceInsufficientData(t *testing.T) {
	svc := testAnalysisService(t, analytics.NewEngine(), nil)

	// 20 snapshots -> 10 features -> split 8 < 10 history elements.
	req := &models.AnalysisRequest{Symbol: "AAPL", N: 20, Seed: 42, Lookback: 10}
	if _, err := svc.Run(req); err == nil {
		t.Fatalf("expected error for insufficient data")
	}
}
