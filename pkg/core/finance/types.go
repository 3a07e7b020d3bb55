// Package finance defines the financial-data provider abstraction and the
// concrete clients that back it. The rest of the engine only sees the
// Provider interface; which upstream service the numbers come from is an
// implementation detail of this package.
package finance

// CompanyProfile is the per-company financial snapshot the screening engine
// works from. Instances are built once by a Provider and read-only afterwards.
type CompanyProfile struct {
	Name             string             `json:"name"`
	Ticker           string             `json:"ticker"`
	WorldwideRevenue float64            `json:"worldwide_revenue"` // most recent annual total revenue
	MarketCap        float64            `json:"market_cap"`
	Currency         string             `json:"currency"`
	GeoRevenue       map[string]float64 `json:"geo_revenue,omitempty"` // region name -> revenue, absent when not disclosed
}
