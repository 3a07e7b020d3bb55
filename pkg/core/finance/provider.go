package finance

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the upstream service does not know the ticker at all.
	ErrNotFound = errors.New("ticker not found")

	// ErrNoFinancials means the ticker exists but carries no annual income
	// statement, so a screening cannot be computed from it.
	ErrNoFinancials = errors.New("no annual financial statement available")
)

// Provider supplies per-ticker financial data.
//
// Profile returns ErrNotFound for unknown tickers and ErrNoFinancials when
// the ticker resolves but has no usable annual statement. GeoRevenue returns
// (nil, nil) when no geographic breakdown is published; absence of segment
// data is normal, not an error.
type Provider interface {
	Profile(ctx context.Context, ticker string) (*CompanyProfile, error)
	GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error)
}
