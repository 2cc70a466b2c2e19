package sim

import (
	"fmt"
	"math"
	"time"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

const levelsPerSide = 5

// MarketSimulator generates tick-level order book snapshots with GARCH-like
// volatility clustering. Price and volatility are recursive state carried
// across ticks, so a run must execute sequentially in tick order.
type MarketSimulator struct{}

func NewMarketSimulator() *MarketSimulator { return &MarketSimulator{} }

// Generate produces n snapshots from the injected uniform source. The result
// is a new owned sequence; nothing upstream is mutated.
func (MarketSimulator) Generate(n int, cfg models.GenerationConfig, src domsvc.Uniform) ([]models.Snapshot, error) {
	if err := validate(n, cfg, src); err != nil {
		return nil, err
	}

	gauss := NewGaussianSampler(src)
	out := make([]models.Snapshot, 0, n)

	price := cfg.BasePrice
	vol := cfg.BaseVolatility
	lambda := cfg.VolatilityPersistence

	for i := 0; i < n; i++ {
		// Volatility clustering: convex combination of positive terms,
		// so vol stays strictly positive.
		shock := gauss.Next()
		vol = lambda*vol + (1-lambda)*cfg.BaseVolatility*math.Abs(shock)

		// Price walk with a hard floor at 1.0.
		price = math.Max(price+shock*vol*price, 1.0)

		// Spread widens with the volatility ratio.
		spread := cfg.BaseSpread * (1 + (vol/cfg.BaseVolatility)*2)

		// Slow sinusoidal drift plus noise, clamped to [-0.8, 0.8].
		imbalance := clamp(math.Sin(float64(i)/1000)*0.3+gauss.Next()*0.2, -0.8, 0.8)

		bids := make([]models.OrderLevel, 0, levelsPerSide)
		asks := make([]models.OrderLevel, 0, levelsPerSide)
		totalBid, totalAsk := 0, 0
		for level := 0; level < levelsPerSide; level++ {
			offset := spread/2 + float64(level)*spread*0.5
			depth := 1 - float64(level)*0.15

			bidSize := levelSize(gauss.Next(), 1-imbalance*0.3, depth)
			bids = append(bids, models.OrderLevel{
				Price:      roundTo(price-offset, 2),
				Size:       bidSize,
				OrderCount: 1 + int(src.Float64()*10),
			})
			totalBid += bidSize

			askSize := levelSize(gauss.Next(), 1+imbalance*0.3, depth)
			asks = append(asks, models.OrderLevel{
				Price:      roundTo(price+offset, 2),
				Size:       askSize,
				OrderCount: 1 + int(src.Float64()*10),
			})
			totalAsk += askSize
		}

		// Trade side biased toward buys as imbalance rises.
		side := models.SideSell
		tradePrice := bids[0].Price
		if src.Float64() > 0.5-imbalance*0.2 {
			side = models.SideBuy
			tradePrice = asks[0].Price
		}
		tradeSize := (1 + int(src.Float64()*100)) * 100

		out = append(out, models.Snapshot{
			Timestamp:      cfg.Start.Add(time.Duration(i) * cfg.TickInterval),
			Symbol:         cfg.Symbol,
			MidPrice:       roundTo(price, 4),
			Spread:         roundTo(spread, 4),
			BidLevels:      bids,
			AskLevels:      asks,
			TotalBidVolume: totalBid,
			TotalAskVolume: totalAsk,
			OrderImbalance: roundTo(imbalance, 4),
			Volatility:     roundTo(vol, 6),
			LastTrade: models.LastTrade{
				Price: tradePrice,
				Size:  tradeSize,
				Side:  side,
			},
		})
	}

	return out, nil
}

func validate(n int, cfg models.GenerationConfig, src domsvc.Uniform) error {
	switch {
	case src == nil:
		return fmt.Errorf("%w: uniform source is required", domsvc.ErrInvalidConfig)
	case n < 1:
		return fmt.Errorf("%w: n must be >= 1, got %d", domsvc.ErrInvalidConfig, n)
	case cfg.BasePrice <= 0:
		return fmt.Errorf("%w: base price must be positive", domsvc.ErrInvalidConfig)
	case cfg.BaseVolatility <= 0:
		return fmt.Errorf("%w: base volatility must be positive", domsvc.ErrInvalidConfig)
	case cfg.BaseSpread <= 0:
		return fmt.Errorf("%w: base spread must be positive", domsvc.ErrInvalidConfig)
	case cfg.VolatilityPersistence < 0 || cfg.VolatilityPersistence >= 1:
		return fmt.Errorf("%w: volatility persistence must be in [0,1)", domsvc.ErrInvalidConfig)
	case cfg.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive", domsvc.ErrInvalidConfig)
	}
	return nil
}

// levelSize draws a noisy size around 500, scaled by imbalance pressure and
// level depth, floored at the 100-lot minimum.
func levelSize(noise, pressure, depth float64) int {
	return int(math.Max(100, math.Round(noise*200+500*pressure*depth)))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

var _ domsvc.Simulator = (*MarketSimulator)(nil)
