package usecase

import (
	"context"
	"fmt"
	"time"

	"LOBSim/internal/domain/models"
	drepo "LOBSim/internal/domain/repository"
)

// SnapshotWriter routes generated snapshots to the configured backend.
type SnapshotWriter struct {
	pub     drepo.SnapshotPublisher
	store   drepo.SnapshotStore
	metrics drepo.Metrics
	backend string
	batchSz int
}

// NewSnapshotWriter creates a new SnapshotWriter instance.
func NewSnapshotWriter(
	pub drepo.SnapshotPublisher,
	store drepo.SnapshotStore,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
) *SnapshotWriter {
	return &SnapshotWriter{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
	}
}

// Backend returns the configured backend name.
func (w *SnapshotWriter) Backend() string { return w.backend }

// Write routes a single snapshot to the configured backend.
func (w *SnapshotWriter) Write(ctx context.Context, s *models.Snapshot) error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}

	start := time.Now()
	var err error

	switch w.backend {
	case "kafka":
		err = w.pub.Publish(ctx, s)
	case "clickhouse":
		err = w.store.Store(ctx, s)
	default:
		err = fmt.Errorf("unknown backend: %s", w.backend)
	}

	if err != nil {
		w.metrics.RecordError("write")
		return fmt.Errorf("write snapshot: %w", err)
	}

	w.metrics.RecordRecordsWritten(w.backend, s.Symbol, 1)
	w.metrics.RecordLatency("write", time.Since(start).Seconds())
	return nil
}

// WriteBatch routes a snapshot run to the configured backend in chunks.
func (w *SnapshotWriter) WriteBatch(ctx context.Context, snaps []models.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	start := time.Now()
	chunk := w.batchSz
	if chunk <= 0 {
		chunk = len(snaps)
	}

	for lo := 0; lo < len(snaps); lo += chunk {
		hi := lo + chunk
		if hi > len(snaps) {
			hi = len(snaps)
		}

		var err error
		switch w.backend {
		case "kafka":
			err = w.pub.PublishBatch(ctx, snaps[lo:hi])
		case "clickhouse":
			err = w.store.StoreBatch(ctx, snaps[lo:hi])
		default:
			err = fmt.Errorf("unknown backend: %s", w.backend)
		}
		if err != nil {
			w.metrics.RecordError("write_batch")
			return fmt.Errorf("write batch: %w", err)
		}
	}

	w.metrics.RecordRecordsWritten(w.backend, snaps[0].Symbol, len(snaps))
	w.metrics.RecordLatency("write_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (w *SnapshotWriter) Close() {
	if w.pub != nil {
		_ = w.pub.Close()
	}
	if w.store != nil {
		_ = w.store.Close()
	}
}
