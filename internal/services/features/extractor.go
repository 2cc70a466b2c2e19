package features

import (
	"fmt"
	"math"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

// Extractor derives microstructure feature vectors from an ordered snapshot
// sequence. Every index depends only on its fixed lookback window and the one
// snapshot ahead used for labels, so extraction has no carried state.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract returns one feature vector per index in [lookback, len(snapshots)).
// A lookback covering the whole sequence yields a valid empty result.
func (Extractor) Extract(snapshots []models.Snapshot, lookback int) ([]models.FeatureVector, error) {
	if lookback < 1 {
		return nil, fmt.Errorf("%w: lookback must be >= 1, got %d", domsvc.ErrInvalidConfig, lookback)
	}
	if lookback >= len(snapshots) {
		return []models.FeatureVector{}, nil
	}

	out := make([]models.FeatureVector, 0, len(snapshots)-lookback)
	for i := lookback; i < len(snapshots); i++ {
		s := snapshots[i]

		depthImb := 0.0
		if total := s.TotalBidVolume + s.TotalAskVolume; total > 0 {
			depthImb = float64(s.TotalBidVolume-s.TotalAskVolume) / float64(total)
		}

		anchor := snapshots[i-lookback].MidPrice
		momentum := (s.MidPrice - anchor) / anchor

		spreadChange := 0.0
		if i > 0 {
			spreadChange = s.Spread - snapshots[i-1].Spread
		}

		futureReturn := 0.0
		if i < len(snapshots)-1 {
			futureReturn = (snapshots[i+1].MidPrice - s.MidPrice) / s.MidPrice
		}
		futureReturn = roundTo(futureReturn, 8)

		out = append(out, models.FeatureVector{
			Timestamp:          s.Timestamp,
			MidPrice:           s.MidPrice,
			Spread:             s.Spread,
			OrderFlowImbalance: s.OrderImbalance,
			DepthImbalance:     roundTo(depthImb, 4),
			PriceMomentum:      roundTo(momentum, 6),
			PriceVolatility:    roundTo(windowVariance(snapshots[i-lookback:i]), 8),
			SpreadChange:       roundTo(spreadChange, 6),
			VWAPBid:            roundTo(sideVWAP(s.BidLevels, s.TotalBidVolume), 4),
			VWAPAsk:            roundTo(sideVWAP(s.AskLevels, s.TotalAskVolume), 4),
			TotalBidVolume:     s.TotalBidVolume,
			TotalAskVolume:     s.TotalAskVolume,
			Volatility:         s.Volatility,
			FutureReturn:       futureReturn,
			FutureDirection:    sign(futureReturn),
		})
	}
	return out, nil
}

// windowVariance is the population variance of mid prices over the half-open
// lookback window (divides by the window length, not length-1).
func windowVariance(window []models.Snapshot) float64 {
	n := float64(len(window))
	mean := 0.0
	for _, s := range window {
		mean += s.MidPrice
	}
	mean /= n

	variance := 0.0
	for _, s := range window {
		d := s.MidPrice - mean
		variance += d * d
	}
	return variance / n
}

// sideVWAP is the size-weighted average price across one side's levels,
// 0 when the side carries no volume.
func sideVWAP(levels []models.OrderLevel, totalVolume int) float64 {
	if totalVolume <= 0 {
		return 0
	}
	sum := 0.0
	for _, l := range levels {
		sum += l.Price * float64(l.Size)
	}
	return sum / float64(totalVolume)
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

var _ domsvc.FeatureExtractor = (*Extractor)(nil)
