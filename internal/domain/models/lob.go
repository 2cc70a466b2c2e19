package models

import "time"

// TradeSide is the aggressor side of the last trade in a snapshot.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// OrderLevel is one price level on a side of the book, nearest level first.
type OrderLevel struct {
	Price      float64 `json:"price"`
	Size       int     `json:"size"`
	OrderCount int     `json:"orders"`
}

// LastTrade is the most recent execution at snapshot time.
type LastTrade struct {
	Price float64   `json:"price"`
	Size  int       `json:"size"`
	Side  TradeSide `json:"side"`
}

// Snapshot is a tick-level order book snapshot with 5 levels per side.
// Numeric fields carry a fixed rounding applied once at generation time:
// mid price, spread and imbalance to 4 decimals, volatility to 6, level
// prices to 2.
type Snapshot struct {
	Timestamp      time.Time    `json:"timestamp"`
	Symbol         string       `json:"symbol"`
	MidPrice       float64      `json:"mid_price"`
	Spread         float64      `json:"spread"`
	BidLevels      []OrderLevel `json:"bid_levels"`
	AskLevels      []OrderLevel `json:"ask_levels"`
	TotalBidVolume int          `json:"total_bid_volume"`
	TotalAskVolume int          `json:"total_ask_volume"`
	OrderImbalance float64      `json:"order_imbalance"`
	Volatility     float64      `json:"volatility"`
	LastTrade      LastTrade    `json:"last_trade"`
}
