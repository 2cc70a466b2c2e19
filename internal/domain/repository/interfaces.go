package repository

import (
	"context"
	"time"

	"LOBSim/internal/domain/models"
)

// SnapshotStore persists generated snapshot runs as flat records.
type SnapshotStore interface {
	Init(ctx context.Context) error // ensure tables
	Store(ctx context.Context, s *models.Snapshot) error
	StoreBatch(ctx context.Context, snaps []models.Snapshot) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.Snapshot, error)
	Health(ctx context.Context) error
	Close() error
}

// SnapshotPublisher streams generated snapshots to a message broker.
type SnapshotPublisher interface {
	Publish(ctx context.Context, s *models.Snapshot) error
	PublishBatch(ctx context.Context, snaps []models.Snapshot) error
	Close() error
}

// Metrics records operational metrics for the pipeline.
type Metrics interface {
	RecordSnapshotsGenerated(symbol string, n int)
	RecordRecordsWritten(backend, symbol string, n int)
	RecordAnalysisRun(symbol string)
	RecordError(kind string)
	RecordLastMidPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
