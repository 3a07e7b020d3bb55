package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"eumr_screening/pkg/core/eumr"
)

// RenderHTML renders the analysis as an HTML document body, for the web UI
// and for archival exports. The content is a Markdown restatement of the
// text report converted through goldmark, so both renderings always carry
// the same verdict strings.
func RenderHTML(a *eumr.MergerAnalysis) (string, error) {
	md := renderMarkdown(a)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report markdown: %w", err)
	}
	return buf.String(), nil
}

func renderMarkdown(a *eumr.MergerAnalysis) string {
	var b strings.Builder

	b.WriteString("# Merger EUMR Compliance Analysis Report\n\n")

	writeCompanyMarkdown(&b, 1, a.Company1)
	writeCompanyMarkdown(&b, 2, a.Company2)

	b.WriteString("## Combined Metrics\n\n")
	fmt.Fprintf(&b, "- Worldwide Revenue (USD): $%s\n", money(a.Combined.WorldwideRevenueUSD))
	fmt.Fprintf(&b, "- Worldwide Revenue (EUR): €%s\n", money(a.Combined.WorldwideRevenueEUR))
	fmt.Fprintf(&b, "- Combined EU Revenue (EUR): €%s\n", money(a.Combined.EuRevenueEUR))
	fmt.Fprintf(&b, "- Combined Market Cap: $%s\n\n", money(a.Combined.MarketCapUSD))

	t := a.Verdict.Thresholds
	b.WriteString("## EUMR Compliance Analysis\n\n")
	fmt.Fprintf(&b, "- Primary Threshold (%s worldwide, %s EU each): **%s**\n",
		compactEUR(t.Primary.WorldwideRevenue), compactEUR(t.Primary.EuRevenue),
		metLabel(a.Verdict.PrimaryMet))
	fmt.Fprintf(&b, "- Alternative Threshold (%s worldwide, %s EU each): **%s**\n\n",
		compactEUR(t.Alternative.WorldwideRevenue), compactEUR(t.Alternative.EuRevenue),
		metLabel(a.Verdict.AlternativeMet))

	fmt.Fprintf(&b, "**EUMR Notification Required: %s**\n\n", yesNo(a.Verdict.NotificationRequired))

	b.WriteString("## Important Notes\n\n")
	for _, note := range a.Verdict.Notes {
		fmt.Fprintf(&b, "- %s\n", note)
	}

	return b.String()
}

func writeCompanyMarkdown(b *strings.Builder, index int, c eumr.CompanyAssessment) {
	fmt.Fprintf(b, "## Company %d: %s (%s)\n\n", index, c.Profile.Name, c.Profile.Ticker)
	fmt.Fprintf(b, "- Worldwide Revenue: $%s\n", money(c.Profile.WorldwideRevenue))
	fmt.Fprintf(b, "- EU Revenue: $%s\n", money(c.EuRevenue.EuRevenue))
	fmt.Fprintf(b, "- Market Cap: $%s\n", money(c.Profile.MarketCap))
	if c.EuRevenue.Estimated {
		b.WriteString("- *(EU Revenue Estimated)*\n")
	}
	b.WriteString("\n")
}
