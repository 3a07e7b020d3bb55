package eumr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eumr_screening/pkg/core/finance"
)

// ErrFinancialDataUnavailable aborts an evaluation: a threshold verdict
// computed on partial data would be misleading, so missing or invalid
// financials for either party fail the whole pair.
var ErrFinancialDataUnavailable = errors.New("financial data unavailable")

// DefaultEurUsdRate is the fallback EUR/USD conversion rate. Fixed by
// configuration rather than live-fetched; needs periodic review.
const DefaultEurUsdRate = 1.1

// Options configures an Evaluator. Zero values take defaults.
type Options struct {
	EurUsdRate   float64       // EUR/USD rate; USD figures are divided by it
	Thresholds   Thresholds    // statutory floors, overridable for analysis
	FetchTimeout time.Duration // bound on each provider call
}

// Evaluator runs the dual-threshold screening for a pair of tickers. It is
// stateless across evaluations; each call only reads from the provider.
type Evaluator struct {
	provider     finance.Provider
	rate         float64
	thresholds   Thresholds
	fetchTimeout time.Duration
}

// NewEvaluator builds an evaluator over the given provider.
func NewEvaluator(provider finance.Provider, opts Options) *Evaluator {
	if opts.EurUsdRate <= 0 {
		opts.EurUsdRate = DefaultEurUsdRate
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Evaluator{
		provider:     provider,
		rate:         opts.EurUsdRate,
		thresholds:   opts.Thresholds,
		fetchTimeout: opts.FetchTimeout,
	}
}

// Evaluate screens the merger of ticker1 and ticker2 against both EUMR
// regimes and returns the full analysis, or ErrFinancialDataUnavailable
// (wrapped with detail) when either party's data cannot be obtained.
func (e *Evaluator) Evaluate(ctx context.Context, ticker1, ticker2 string) (*MergerAnalysis, error) {
	company1, err := e.assess(ctx, ticker1)
	if err != nil {
		return nil, err
	}
	company2, err := e.assess(ctx, ticker2)
	if err != nil {
		return nil, err
	}

	combinedWorldwide := company1.Profile.WorldwideRevenue + company2.Profile.WorldwideRevenue
	combinedEu := company1.EuRevenue.EuRevenue + company2.EuRevenue.EuRevenue
	combinedCap := company1.Profile.MarketCap + company2.Profile.MarketCap

	combined := CombinedMetrics{
		WorldwideRevenueUSD: combinedWorldwide,
		WorldwideRevenueEUR: combinedWorldwide / e.rate,
		EuRevenueEUR:        combinedEu / e.rate,
		Company1EuEUR:       company1.EuRevenue.EuRevenue / e.rate,
		Company2EuEUR:       company2.EuRevenue.EuRevenue / e.rate,
		MarketCapUSD:        combinedCap,
	}

	// Art. 1(2): combined worldwide turnover above €5B and each party above
	// €250M in the EU.
	primaryMet := combined.WorldwideRevenueEUR > e.thresholds.Primary.WorldwideRevenue &&
		combined.Company1EuEUR > e.thresholds.Primary.EuRevenue &&
		combined.Company2EuEUR > e.thresholds.Primary.EuRevenue

	// Art. 1(3): combined worldwide turnover above €2.5B and each party
	// above €100M in the EU. The three-member-state distribution criterion
	// cannot be assessed without country-level data; the notes say so.
	alternativeMet := combined.WorldwideRevenueEUR > e.thresholds.Alternative.WorldwideRevenue &&
		combined.Company1EuEUR > e.thresholds.Alternative.EuRevenue &&
		combined.Company2EuEUR > e.thresholds.Alternative.EuRevenue

	verdict := Verdict{
		PrimaryMet:           primaryMet,
		AlternativeMet:       alternativeMet,
		NotificationRequired: primaryMet || alternativeMet,
		Thresholds:           e.thresholds,
		Notes:                e.advisoryNotes(),
	}

	return &MergerAnalysis{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Company1:   *company1,
		Company2:   *company2,
		Combined:   combined,
		Verdict:    verdict,
		EurUsdRate: e.rate,
	}, nil
}

// assess fetches one party's profile and determines its EU revenue.
func (e *Evaluator) assess(ctx context.Context, ticker string) (*CompanyAssessment, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	profile, err := e.provider.Profile(fetchCtx, ticker)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrFinancialDataUnavailable, ticker, err)
	}
	if profile.WorldwideRevenue < 0 || profile.MarketCap < 0 {
		return nil, fmt.Errorf("%w for %s: negative reported figures", ErrFinancialDataUnavailable, ticker)
	}

	geo := profile.GeoRevenue
	if geo == nil {
		// A separate segment query is allowed to fail softly; absence of a
		// breakdown just routes the estimate path.
		if fetched, geoErr := e.provider.GeoRevenue(fetchCtx, ticker); geoErr == nil {
			geo = fetched
		}
	}

	return &CompanyAssessment{
		Profile:   profile,
		EuRevenue: EstimateEURevenue(profile.WorldwideRevenue, geo),
	}, nil
}

// advisoryNotes returns the fixed caveat list attached to every verdict.
func (e *Evaluator) advisoryNotes() []string {
	return []string{
		"Analysis based on most recent financial data",
		"EU revenue estimates may need verification",
		"Three-member state criterion requires detailed country breakdown",
		"Exchange rates should be verified at time of transaction",
		fmt.Sprintf("Current EUR/USD rate used: %g", e.rate),
	}
}
