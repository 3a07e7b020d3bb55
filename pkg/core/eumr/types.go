// Package eumr implements the merger screening engine: EU revenue
// estimation and the dual threshold tests of the EU Merger Regulation,
// Articles 1(2) and 1(3).
package eumr

import (
	"time"

	"eumr_screening/pkg/core/finance"
)

// EuRevenueResult is a company's EU-attributable revenue together with how
// it was obtained. Estimated figures must always be disclosed as such
// downstream, so the flag travels with the number.
type EuRevenueResult struct {
	EuRevenue float64 `json:"eu_revenue"`
	Estimated bool    `json:"estimated"`
}

// ThresholdRegime holds one statutory test's floors, in EUR.
type ThresholdRegime struct {
	WorldwideRevenue float64 `json:"worldwide_revenue"`
	EuRevenue        float64 `json:"eu_revenue"` // per-company floor
}

// Thresholds pairs the two independent EUMR regimes.
type Thresholds struct {
	Primary     ThresholdRegime `json:"primary"`     // Art. 1(2)
	Alternative ThresholdRegime `json:"alternative"` // Art. 1(3)
}

// DefaultThresholds returns the statutory figures: €5B/€250M for the
// primary regime and €2.5B/€100M for the alternative regime.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Primary:     ThresholdRegime{WorldwideRevenue: 5_000_000_000, EuRevenue: 250_000_000},
		Alternative: ThresholdRegime{WorldwideRevenue: 2_500_000_000, EuRevenue: 100_000_000},
	}
}

// Verdict is the outcome of both threshold tests. NotificationRequired is
// always PrimaryMet || AlternativeMet.
type Verdict struct {
	PrimaryMet           bool       `json:"primary_threshold_met"`
	AlternativeMet       bool       `json:"alternative_threshold_met"`
	NotificationRequired bool       `json:"notification_required"`
	Thresholds           Thresholds `json:"thresholds"`
	Notes                []string   `json:"notes"`
}

// CompanyAssessment bundles one merging party's profile with its EU revenue
// determination.
type CompanyAssessment struct {
	Profile   *finance.CompanyProfile `json:"profile"`
	EuRevenue EuRevenueResult         `json:"eu_revenue_result"`
}

// CombinedMetrics aggregates both parties, in the provider's native
// currency (USD) and converted to EUR at the configured rate.
type CombinedMetrics struct {
	WorldwideRevenueUSD float64 `json:"worldwide_revenue_usd"`
	WorldwideRevenueEUR float64 `json:"worldwide_revenue_eur"`
	EuRevenueEUR        float64 `json:"eu_revenue_eur"`
	Company1EuEUR       float64 `json:"company1_eu_revenue_eur"`
	Company2EuEUR       float64 `json:"company2_eu_revenue_eur"`
	MarketCapUSD        float64 `json:"combined_market_cap_usd"`
}

// MergerAnalysis is the full screening record for one company pair.
// Constructed once per evaluation and immutable afterwards. ID and
// CreatedAt identify the stored record; the deterministic text report
// renders only the analytical fields.
type MergerAnalysis struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	Company1   CompanyAssessment `json:"company1"`
	Company2   CompanyAssessment `json:"company2"`
	Combined   CombinedMetrics   `json:"combined_metrics"`
	Verdict    Verdict           `json:"eumr_analysis"`
	EurUsdRate float64           `json:"eur_usd_rate"`
}
