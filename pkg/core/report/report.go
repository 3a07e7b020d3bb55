// Package report renders a MergerAnalysis into human-readable form. The
// text renderer is a pure function: identical analyses produce
// byte-identical output, so reports are diffable and cacheable.
package report

import (
	"fmt"
	"math"
	"strings"

	"eumr_screening/pkg/core/eumr"
)

// Render produces the plain-text screening report. Record metadata (ID,
// timestamp) is deliberately excluded so the output depends only on the
// analytical content.
func Render(a *eumr.MergerAnalysis) string {
	var b strings.Builder

	b.WriteString("Merger EUMR Compliance Analysis Report\n")
	b.WriteString("======================================\n\n")

	writeCompany(&b, 1, a.Company1)
	writeCompany(&b, 2, a.Company2)

	b.WriteString("Combined Metrics\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Worldwide Revenue (USD): $%s\n", money(a.Combined.WorldwideRevenueUSD))
	fmt.Fprintf(&b, "Worldwide Revenue (EUR): €%s\n", money(a.Combined.WorldwideRevenueEUR))
	fmt.Fprintf(&b, "Combined EU Revenue (EUR): €%s\n", money(a.Combined.EuRevenueEUR))
	fmt.Fprintf(&b, "Combined Market Cap: $%s\n\n", money(a.Combined.MarketCapUSD))

	t := a.Verdict.Thresholds
	b.WriteString("EUMR Compliance Analysis\n")
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Primary Threshold (%s worldwide, %s EU each): %s\n",
		compactEUR(t.Primary.WorldwideRevenue), compactEUR(t.Primary.EuRevenue),
		metLabel(a.Verdict.PrimaryMet))
	fmt.Fprintf(&b, "Alternative Threshold (%s worldwide, %s EU each): %s\n\n",
		compactEUR(t.Alternative.WorldwideRevenue), compactEUR(t.Alternative.EuRevenue),
		metLabel(a.Verdict.AlternativeMet))

	fmt.Fprintf(&b, "EUMR Notification Required: %s\n\n", yesNo(a.Verdict.NotificationRequired))

	b.WriteString("Important Notes:\n")
	for _, note := range a.Verdict.Notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}

	return b.String()
}

func writeCompany(b *strings.Builder, index int, c eumr.CompanyAssessment) {
	fmt.Fprintf(b, "Company %d: %s (%s)\n", index, c.Profile.Name, c.Profile.Ticker)
	b.WriteString("-------------------------------------------------------------------------\n")
	fmt.Fprintf(b, "Worldwide Revenue: $%s\n", money(c.Profile.WorldwideRevenue))
	fmt.Fprintf(b, "EU Revenue: $%s\n", money(c.EuRevenue.EuRevenue))
	fmt.Fprintf(b, "Market Cap: $%s\n", money(c.Profile.MarketCap))
	if c.EuRevenue.Estimated {
		b.WriteString("(EU Revenue Estimated)\n")
	}
	b.WriteString("\n")
}

func metLabel(met bool) string {
	if met {
		return "Met"
	}
	return "Not Met"
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

// money formats a value with thousands separators and two decimals,
// matching the original report layout (1234567.5 -> "1,234,567.50").
func money(v float64) string {
	negative := math.Signbit(v)
	v = math.Abs(v)

	whole := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(whole, '.')
	intPart, fracPart := whole[:dot], whole[dot:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + fracPart
	if negative {
		return "-" + out
	}
	return out
}

// compactEUR renders a threshold floor as a short label, e.g. "€5B" or
// "€250M". Non-round overrides fall back to one decimal.
func compactEUR(v float64) string {
	switch {
	case v >= 1e9:
		return "€" + trimTrailingZero(v/1e9) + "B"
	case v >= 1e6:
		return "€" + trimTrailingZero(v/1e6) + "M"
	default:
		return "€" + money(v)
	}
}

func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
