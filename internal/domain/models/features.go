package models

import "time"

// FeatureVector is the microstructure feature record derived from a snapshot
// plus its lookback window, with lookahead-labeled supervision targets.
// FutureDirection is always the sign of the stored FutureReturn.
type FeatureVector struct {
	Timestamp          time.Time `json:"timestamp"`
	MidPrice           float64   `json:"mid_price"`
	Spread             float64   `json:"spread"`
	OrderFlowImbalance float64   `json:"order_flow_imbalance"`
	DepthImbalance     float64   `json:"depth_imbalance"`
	PriceMomentum      float64   `json:"price_momentum"`
	PriceVolatility    float64   `json:"price_volatility"`
	SpreadChange       float64   `json:"spread_change"`
	VWAPBid            float64   `json:"vwap_bid"`
	VWAPAsk            float64   `json:"vwap_ask"`
	TotalBidVolume     int       `json:"total_bid_volume"`
	TotalAskVolume     int       `json:"total_ask_volume"`
	Volatility         float64   `json:"volatility"`
	FutureReturn       float64   `json:"future_return"`
	FutureDirection    int       `json:"future_direction"`
}
