package models

import "time"

// Snapshot is a point-in-time market record for one asset, as returned by
// the market data provider. It lives for a single request and is never
// persisted beyond the provider's short-lived cache.
type Snapshot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Symbol        string   `json:"symbol"`
	Price         float64  `json:"current_price"` // USD
	ChangePct24h  *float64 `json:"price_change_percentage_24h"` // nil when the provider omits it
	MarketCap     float64  `json:"market_cap"`
	MarketCapRank int      `json:"market_cap_rank"` // 1 = largest; 0 means unknown
	Volume24h     float64  `json:"total_volume"`
}

// Change24h returns the 24h percent change, or 0 when absent.
func (s Snapshot) Change24h() float64 {
	if s.ChangePct24h == nil {
		return 0
	}
	return *s.ChangePct24h
}

// AssetDetail is a Snapshot with the extra fields the per-asset provider
// endpoint exposes.
type AssetDetail struct {
	Snapshot
	High24h           float64 `json:"high_24h"`
	Low24h            float64 `json:"low_24h"`
	CirculatingSupply float64 `json:"circulating_supply"`
}

// ChartPoint is one sample of an asset's price history.
type ChartPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}
