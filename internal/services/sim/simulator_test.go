package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"LOBSim/internal/domain/models"
	domsvc "LOBSim/internal/domain/service"
)

func testConfig() models.GenerationConfig {
	return models.GenerationConfig{
		Symbol:                "AAPL",
		BasePrice:             150.0,
		BaseVolatility:        0.0002,
		BaseSpread:            0.01,
		VolatilityPersistence: 0.95,
		Start:                 time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		TickInterval:          500 * time.Millisecond,
	}
}

func TestGenerateInvariants(t *testing.T) {
	snaps, err := NewMarketSimulator().Generate(2000, testConfig(), NewSeededSource(7))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(snaps) != 2000 {
		t.Fatalf("expected 2000 snapshots, got %d", len(snaps))
	}
	for i, s := range snaps {
		if s.MidPrice < 1.0 {
			t.Fatalf("tick %d: mid price below floor: %v", i, s.MidPrice)
		}
		if s.Spread <= 0 {
			t.Fatalf("tick %d: non-positive spread %v", i, s.Spread)
		}
		if s.Volatility <= 0 {
			t.Fatalf("tick %d: non-positive volatility %v", i, s.Volatility)
		}
		if s.OrderImbalance < -0.8 || s.OrderImbalance > 0.8 {
			t.Fatalf("tick %d: imbalance out of range: %v", i, s.OrderImbalance)
		}
		if len(s.BidLevels) != 5 || len(s.AskLevels) != 5 {
			t.Fatalf("tick %d: expected 5 levels per side, got %d/%d", i, len(s.BidLevels), len(s.AskLevels))
		}
		bidSum, askSum := 0, 0
		for l := 0; l < 5; l++ {
			bid, ask := s.BidLevels[l], s.AskLevels[l]
			if bid.Size < 100 || ask.Size < 100 {
				t.Fatalf("tick %d level %d: size below 100-lot minimum", i, l)
			}
			if bid.OrderCount < 1 || bid.OrderCount > 10 || ask.OrderCount < 1 || ask.OrderCount > 10 {
				t.Fatalf("tick %d level %d: order count out of [1,10]", i, l)
			}
			if l > 0 {
				if bid.Price >= s.BidLevels[l-1].Price {
					t.Fatalf("tick %d level %d: bid prices not strictly decreasing", i, l)
				}
				if ask.Price <= s.AskLevels[l-1].Price {
					t.Fatalf("tick %d level %d: ask prices not strictly increasing", i, l)
				}
			}
			bidSum += bid.Size
			askSum += ask.Size
		}
		if s.TotalBidVolume != bidSum || s.TotalAskVolume != askSum {
			t.Fatalf("tick %d: volume totals do not match level sums", i)
		}
		if s.LastTrade.Size < 100 || s.LastTrade.Size > 10000 || s.LastTrade.Size%100 != 0 {
			t.Fatalf("tick %d: bad trade size %d", i, s.LastTrade.Size)
		}
		switch s.LastTrade.Side {
		case models.SideBuy:
			if s.LastTrade.Price != s.AskLevels[0].Price {
				t.Fatalf("tick %d: buy not at best ask", i)
			}
		case models.SideSell:
			if s.LastTrade.Price != s.BidLevels[0].Price {
				t.Fatalf("tick %d: sell not at best bid", i)
			}
		default:
			t.Fatalf("tick %d: unknown side %q", i, s.LastTrade.Side)
		}
		wantTS := testConfig().Start.Add(time.Duration(i) * 500 * time.Millisecond)
		if !s.Timestamp.Equal(wantTS) {
			t.Fatalf("tick %d: timestamp %v, want %v", i, s.Timestamp, wantTS)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewMarketSimulator().Generate(500, testConfig(), NewSeededSource(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewMarketSimulator().Generate(500, testConfig(), NewSeededSource(42))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical seeds produced different snapshot sequences")
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	sim := NewMarketSimulator()
	src := NewSeededSource(1)

	if _, err := sim.Generate(0, testConfig(), src); !errors.Is(err, domsvc.ErrInvalidConfig) {
		t.Fatalf("n=0: expected ErrInvalidConfig, got %v", err)
	}
	cfg := testConfig()
	cfg.BaseVolatility = 0
	if _, err := sim.Generate(10, cfg, src); !errors.Is(err, domsvc.ErrInvalidConfig) {
		t.Fatalf("zero volatility: expected ErrInvalidConfig, got %v", err)
	}
	cfg = testConfig()
	cfg.BaseSpread = -0.01
	if _, err := sim.Generate(10, cfg, src); !errors.Is(err, domsvc.ErrInvalidConfig) {
		t.Fatalf("negative spread: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := sim.Generate(10, testConfig(), nil); !errors.Is(err, domsvc.ErrInvalidConfig) {
		t.Fatalf("nil source: expected ErrInvalidConfig, got %v", err)
	}
}

// With a constant uniform source every Gaussian draw is the same value
// z = sqrt(-2 ln 0.5) cos(pi), and the whole trajectory follows a closed-form
// recursion the test replays tick by tick.
func TestGenerateConstantSourceTrajectory(t *testing.T) {
	cfg := testConfig()
	snaps, err := NewMarketSimulator().Generate(20, cfg, constSource{0.5})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	z := math.Sqrt(-2*math.Log(0.5)) * math.Cos(2*math.Pi*0.5)

	// Hand-computed first tick.
	first := snaps[0]
	if first.Volatility != 0.000202 {
		t.Fatalf("tick 0 volatility: got %v want 0.000202", first.Volatility)
	}
	if first.MidPrice != 149.9644 {
		t.Fatalf("tick 0 mid price: got %v want 149.9644", first.MidPrice)
	}
	if first.Spread != 0.0302 {
		t.Fatalf("tick 0 spread: got %v want 0.0302", first.Spread)
	}
	if first.OrderImbalance != -0.2355 {
		t.Fatalf("tick 0 imbalance: got %v want -0.2355", first.OrderImbalance)
	}
	if first.BidLevels[0].Size != 300 || first.AskLevels[0].Size != 229 {
		t.Fatalf("tick 0 top-of-book sizes: got %d/%d want 300/229",
			first.BidLevels[0].Size, first.AskLevels[0].Size)
	}

	price, vol := cfg.BasePrice, cfg.BaseVolatility
	for i, s := range snaps {
		vol = 0.95*vol + 0.05*cfg.BaseVolatility*math.Abs(z)
		price = math.Max(price+z*vol*price, 1.0)
		spread := cfg.BaseSpread * (1 + (vol/cfg.BaseVolatility)*2)
		imb := math.Sin(float64(i)/1000)*0.3 + z*0.2
		if imb < -0.8 {
			imb = -0.8
		} else if imb > 0.8 {
			imb = 0.8
		}

		if s.MidPrice != roundTo(price, 4) {
			t.Fatalf("tick %d: mid %v want %v", i, s.MidPrice, roundTo(price, 4))
		}
		if s.Volatility != roundTo(vol, 6) {
			t.Fatalf("tick %d: vol %v want %v", i, s.Volatility, roundTo(vol, 6))
		}
		if s.Spread != roundTo(spread, 4) {
			t.Fatalf("tick %d: spread %v want %v", i, s.Spread, roundTo(spread, 4))
		}
		if s.OrderImbalance != roundTo(imb, 4) {
			t.Fatalf("tick %d: imbalance %v want %v", i, s.OrderImbalance, roundTo(imb, 4))
		}
		for l := 0; l < 5; l++ {
			offset := spread/2 + float64(l)*spread*0.5
			depth := 1 - float64(l)*0.15
			if got, want := s.BidLevels[l].Price, roundTo(price-offset, 2); got != want {
				t.Fatalf("tick %d level %d: bid price %v want %v", i, l, got, want)
			}
			if got, want := s.AskLevels[l].Price, roundTo(price+offset, 2); got != want {
				t.Fatalf("tick %d level %d: ask price %v want %v", i, l, got, want)
			}
			wantBid := int(math.Max(100, math.Round(z*200+500*(1-imb*0.3)*depth)))
			wantAsk := int(math.Max(100, math.Round(z*200+500*(1+imb*0.3)*depth)))
			if s.BidLevels[l].Size != wantBid || s.AskLevels[l].Size != wantAsk {
				t.Fatalf("tick %d level %d: sizes %d/%d want %d/%d",
					i, l, s.BidLevels[l].Size, s.AskLevels[l].Size, wantBid, wantAsk)
			}
			if s.BidLevels[l].OrderCount != 6 || s.AskLevels[l].OrderCount != 6 {
				t.Fatalf("tick %d level %d: order counts %d/%d want 6/6",
					i, l, s.BidLevels[l].OrderCount, s.AskLevels[l].OrderCount)
			}
		}
		// imbalance < 0 every tick, so 0.5 never exceeds 0.5-imb*0.2: all sells.
		if s.LastTrade.Side != models.SideSell {
			t.Fatalf("tick %d: expected sell, got %q", i, s.LastTrade.Side)
		}
		if s.LastTrade.Price != s.BidLevels[0].Price {
			t.Fatalf("tick %d: sell not at best bid", i)
		}
		if s.LastTrade.Size != 5100 {
			t.Fatalf("tick %d: trade size %d want 5100", i, s.LastTrade.Size)
		}
	}
}
