package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	snapshotsGenerated *prometheus.CounterVec
	recordsWritten     *prometheus.CounterVec
	analysisRuns       *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
	lastMidPrice       *prometheus.GaugeVec
	latency            *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		snapshotsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lobsim_snapshots_generated_total",
				Help: "Total number of order book snapshots generated",
			},
			[]string{"symbol"},
		),
		recordsWritten: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lobsim_records_written_total",
				Help: "Total number of snapshot records written to backend",
			},
			[]string{"backend", "symbol"},
		),
		analysisRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lobsim_analysis_runs_total",
				Help: "Total number of analysis runs",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lobsim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastMidPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lobsim_last_mid_price",
				Help: "Last generated mid price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lobsim_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSnapshotsGenerated records generated snapshots for a symbol.
func (r *Recorder) RecordSnapshotsGenerated(symbol string, n int) {
	r.snapshotsGenerated.WithLabelValues(symbol).Add(float64(n))
}

// RecordRecordsWritten records snapshots written to a backend.
func (r *Recorder) RecordRecordsWritten(backend, symbol string, n int) {
	r.recordsWritten.WithLabelValues(backend, symbol).Add(float64(n))
}

// RecordAnalysisRun records one completed analysis run.
func (r *Recorder) RecordAnalysisRun(symbol string) {
	r.analysisRuns.WithLabelValues(symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastMidPrice records the last mid price for a symbol.
func (r *Recorder) RecordLastMidPrice(symbol string, price float64) {
	r.lastMidPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
