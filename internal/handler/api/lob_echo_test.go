package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"LOBSim/internal/domain/models"
	"LOBSim/internal/services/analytics"
	"LOBSim/internal/services/features"
	"LOBSim/internal/services/sim"
	"LOBSim/internal/usecase"
	xlogger "LOBSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

type nopMetrics struct{}

func (nopMetrics) RecordSnapshotsGenerated(string, int) {}
func (nopMetrics) RecordRecordsWritten(string, string, int) {}
func (nopMetrics) RecordAnalysisRun(string) {}
func (nopMetrics) RecordError(string) {}
func (nopMetrics) RecordLastMidPrice(string, float64) {}
func (nopMetrics) RecordLatency(string, float64) {}

type memPublisher struct {
	published int
}

func (p *memPublisher) Publish(ctx context.Context, s *models.Snapshot) error {
	p.published++
	return nil
}

func (p *memPublisher) PublishBatch(ctx context.Context, snaps []models.Snapshot) error {
	p.published += len(snaps)
	return nil
}

func (p *memPublisher) Close() error { return nil }

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testHandler(t *testing.T, pub *memPublisher, rl RateLimitConfig) *echo.Echo {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	builder := usecase.NewDatasetBuilder(
		sim.NewMarketSimulator(),
		features.NewExtractor(),
		nopMetrics{},
		models.DefaultGenerationConfig("AAPL"),
	)
	writer := usecase.NewSnapshotWriter(pub, nil, nopMetrics{}, "kafka", 0)
	analysis := usecase.NewAnalysisService(builder, analytics.NewEngine(), nil, time.Minute, nopMetrics{}, log)

	h := NewLOBEchoHandler(log, builder, writer, analysis, nil, rl)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doGet(e *echo.Echo, target string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestSnapshotsEndpoint(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{})

	_, env := doGet(e, "/api/snapshots?symbol=AAPL&n=50&seed=42&limit=10")
	if env.Status != http.StatusOK {
		t.Fatalf("status: got %d want 200", env.Status)
	}
	var list struct {
		Rows  []models.Snapshot `json:"rows"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if list.Total != 50 || len(list.Rows) != 10 {
		t.Fatalf("got total=%d rows=%d, want 50/10", list.Total, len(list.Rows))
	}
	if list.Rows[0].Symbol != "AAPL" || len(list.Rows[0].BidLevels) != 5 {
		t.Fatalf("malformed snapshot row: %+v", list.Rows[0])
	}
}

func TestSnapshotsEndpointValidation(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{})

	_, env := doGet(e, "/api/snapshots?symbol=AAPL&n=200000")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("n above cap: status %d want 400", env.Status)
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{})

	_, env := doGet(e, "/api/analysis?symbol=AAPL&n=300&seed=42&lookback=10")
	if env.Status != http.StatusOK {
		t.Fatalf("status: got %d want 200", env.Status)
	}
	var res models.AnalysisResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.PriceForecasts) == 0 || len(res.VolForecasts) == 0 || len(res.Regimes) == 0 {
		t.Fatalf("incomplete analysis result")
	}
}

func TestAnalysisEndpointInsufficientData(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{})

	_, env := doGet(e, "/api/analysis?symbol=AAPL&n=20&seed=42&lookback=10")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("short run: status %d want 400", env.Status)
	}
}

func TestExportEndpoint(t *testing.T) {
	pub := &memPublisher{}
	e := testHandler(t, pub, RateLimitConfig{})

	body := strings.NewReader(`{"symbol":"AAPL","n":120,"seed":7}`)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/export", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != http.StatusOK {
		t.Fatalf("status: got %d want 200", env.Status)
	}
	if pub.published != 120 {
		t.Fatalf("published %d snapshots, want 120", pub.published)
	}
	var stats models.RunStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Count != 120 || stats.Symbol != "AAPL" {
		t.Fatalf("stats: %+v", stats)
	}
	if stats.MinPrice <= 0 || stats.MaxPrice < stats.MinPrice {
		t.Fatalf("stats price range: %+v", stats)
	}
}

func TestGenerationRateLimit(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{Enabled: true, Capacity: 1, RefillPerSec: 0})

	_, env := doGet(e, "/api/snapshots?symbol=AAPL&n=10&limit=10")
	if env.Status != http.StatusOK {
		t.Fatalf("first request: status %d want 200", env.Status)
	}
	_, env = doGet(e, "/api/snapshots?symbol=AAPL&n=10&limit=10")
	if env.Status != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d want 429", env.Status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := testHandler(t, &memPublisher{}, RateLimitConfig{})

	_, env := doGet(e, "/healthz")
	if env.Status != http.StatusOK {
		t.Fatalf("health: status %d want 200", env.Status)
	}
	var status map[string]string
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if status["backend"] != "kafka" {
		t.Fatalf("backend: %q want kafka", status["backend"])
	}
}
