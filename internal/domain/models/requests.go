package models

// Requests for the LOB API endpoints. Defined in domain for consistency and reuse.

type SnapshotsRequest struct {
	Symbol string `query:"symbol" json:"symbol" default:"AAPL" validate:"required"`
	N      int    `query:"n" json:"n" default:"1000" validate:"gte=1,lte=100000"`
	Seed   uint64 `query:"seed" json:"seed" default:"42"`
	Limit  int    `query:"limit" json:"limit" default:"1000" validate:"gte=1,lte=10000"`
}

type FeaturesRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"AAPL" validate:"required"`
	N        int    `query:"n" json:"n" default:"1000" validate:"gte=1,lte=100000"`
	Seed     uint64 `query:"seed" json:"seed" default:"42"`
	Lookback int    `query:"lookback" json:"lookback" default:"10" validate:"gte=1,lte=1000"`
	Limit    int    `query:"limit" json:"limit" default:"1000" validate:"gte=1,lte=10000"`
}

type AnalysisRequest struct {
	Symbol   string `query:"symbol" json:"symbol" default:"AAPL" validate:"required"`
	N        int    `query:"n" json:"n" default:"5000" validate:"gte=1,lte=100000"`
	Seed     uint64 `query:"seed" json:"seed" default:"42"`
	Lookback int    `query:"lookback" json:"lookback" default:"10" validate:"gte=1,lte=1000"`
}

type ExportRequest struct {
	Symbol string `query:"symbol" json:"symbol" default:"AAPL" validate:"required"`
	N      int    `query:"n" json:"n" default:"5000" validate:"gte=1,lte=100000"`
	Seed   uint64 `query:"seed" json:"seed" default:"42"`
}

type StreamRequest struct {
	Symbol string `query:"symbol" json:"symbol" default:"AAPL" validate:"required"`
	N      int    `query:"n" json:"n" default:"1000" validate:"gte=1,lte=100000"`
	Seed   uint64 `query:"seed" json:"seed" default:"42"`
}
