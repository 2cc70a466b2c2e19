package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"LOBSim/internal/domain/models"
	"LOBSim/internal/domain/repository"
)

// ClickHouseSnapshotStore implements SnapshotStore for ClickHouse. Each
// snapshot is stored as one row with the per-level book flattened into
// parallel arrays, nearest level first.
type ClickHouseSnapshotStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseSnapshotStore creates ClickHouse snapshot storage.
func NewClickHouseSnapshotStore(db *sql.DB, table string) repository.SnapshotStore {
	return &ClickHouseSnapshotStore{db: db, table: table}
}

const snapshotColumns = "ts, symbol, mid_price, spread, " +
	"bid_prices, bid_sizes, bid_orders, ask_prices, ask_sizes, ask_orders, " +
	"total_bid_volume, total_ask_volume, order_imbalance, volatility, " +
	"trade_price, trade_size, trade_side"

func (s *ClickHouseSnapshotStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseSnapshotStore) Store(ctx context.Context, snap *models.Snapshot) error {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.table, snapshotColumns)
	_, err := s.db.ExecContext(ctx, q, snapshotArgs(snap)...)
	return err
}

func (s *ClickHouseSnapshotStore) StoreBatch(ctx context.Context, snaps []models.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	// Multi-row VALUES to reduce round-trips, chunked to bound statement size.
	const chunkSize = 1000
	for start := 0; start < len(snaps); start += chunkSize {
		end := start + chunkSize
		if end > len(snaps) {
			end = len(snaps)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*17)
		for i := start; i < end; i++ {
			if snaps[i].Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, snapshotArgs(&snaps[i])...)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, snapshotColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseSnapshotStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.Snapshot, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts LIMIT ?",
		snapshotColumns, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.Snapshot
	for rows.Next() {
		var (
			snap           models.Snapshot
			bidPx, askPx   []float64
			bidSz, bidOrd  []int64
			askSz, askOrd  []int64
			bidVol, askVol int64
			tradeSize      int64
			tradeSide      string
		)
		if err := rows.Scan(
			&snap.Timestamp, &snap.Symbol, &snap.MidPrice, &snap.Spread,
			&bidPx, &bidSz, &bidOrd, &askPx, &askSz, &askOrd,
			&bidVol, &askVol, &snap.OrderImbalance, &snap.Volatility,
			&snap.LastTrade.Price, &tradeSize, &tradeSide,
		); err != nil {
			return nil, err
		}
		snap.BidLevels = buildLevels(bidPx, bidSz, bidOrd)
		snap.AskLevels = buildLevels(askPx, askSz, askOrd)
		snap.TotalBidVolume = int(bidVol)
		snap.TotalAskVolume = int(askVol)
		snap.LastTrade.Size = int(tradeSize)
		snap.LastTrade.Side = models.TradeSide(tradeSide)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *ClickHouseSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSnapshotStore) Close() error {
	return nil // Managed by pkg
}

func snapshotArgs(snap *models.Snapshot) []interface{} {
	bidPx, bidSz, bidOrd := flattenLevels(snap.BidLevels)
	askPx, askSz, askOrd := flattenLevels(snap.AskLevels)
	return []interface{}{
		snap.Timestamp,
		snap.Symbol,
		snap.MidPrice,
		snap.Spread,
		bidPx, bidSz, bidOrd,
		askPx, askSz, askOrd,
		int64(snap.TotalBidVolume),
		int64(snap.TotalAskVolume),
		snap.OrderImbalance,
		snap.Volatility,
		snap.LastTrade.Price,
		int64(snap.LastTrade.Size),
		string(snap.LastTrade.Side),
	}
}

func flattenLevels(levels []models.OrderLevel) ([]float64, []int64, []int64) {
	px := make([]float64, len(levels))
	sz := make([]int64, len(levels))
	ord := make([]int64, len(levels))
	for i, l := range levels {
		px[i] = l.Price
		sz[i] = int64(l.Size)
		ord[i] = int64(l.OrderCount)
	}
	return px, sz, ord
}

func buildLevels(px []float64, sz, ord []int64) []models.OrderLevel {
	levels := make([]models.OrderLevel, 0, len(px))
	for i := range px {
		l := models.OrderLevel{Price: px[i]}
		if i < len(sz) {
			l.Size = int(sz[i])
		}
		if i < len(ord) {
			l.OrderCount = int(ord[i])
		}
		levels = append(levels, l)
	}
	return levels
}
