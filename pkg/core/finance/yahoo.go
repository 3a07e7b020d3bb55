package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// Yahoo Finance quoteSummary endpoint. The same endpoint the yfinance
	// ecosystem builds on; no API key, but a browser-like User-Agent is
	// required or Yahoo serves a 403.
	YahooQuoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

	yahooUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// Modules requested per profile fetch.
	yahooModules = "price,summaryDetail,incomeStatementHistory"
)

// =============================================================================
// YAHOO RESPONSE TYPES
// =============================================================================

// yahooNumber is Yahoo's {raw, fmt} envelope around every numeric field.
type yahooNumber struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yahooPrice struct {
	LongName  string      `json:"longName"`
	ShortName string      `json:"shortName"`
	Symbol    string      `json:"symbol"`
	Currency  string      `json:"currency"`
	MarketCap yahooNumber `json:"marketCap"`
}

type yahooIncomeStatement struct {
	EndDate      yahooNumber `json:"endDate"` // raw = unix seconds of fiscal period end
	TotalRevenue yahooNumber `json:"totalRevenue"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price                  *yahooPrice `json:"price"`
			IncomeStatementHistory *struct {
				IncomeStatementHistory []yahooIncomeStatement `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// =============================================================================
// YAHOO CLIENT
// =============================================================================

// YahooClient implements Provider against the Yahoo Finance quoteSummary API.
//
// Yahoo does not publish geographic revenue segmentation, so GeoRevenue
// always reports absence; wrap the client in a SegmentedProvider to overlay
// locally curated segment data.
type YahooClient struct {
	// BaseURL is the quoteSummary endpoint; overridable for tests.
	BaseURL    string
	httpClient *http.Client
}

// NewYahooClient creates a quoteSummary client with a 30s request timeout.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		BaseURL: YahooQuoteSummaryURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Profile fetches price and annual income-statement data for ticker and maps
// it into a CompanyProfile. The most recent annual totalRevenue becomes
// WorldwideRevenue.
func (c *YahooClient) Profile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	reqURL := fmt.Sprintf("%s/%s?modules=%s", c.BaseURL, url.PathEscape(ticker), url.QueryEscape(yahooModules))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quoteSummary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("quote for %s: %w", ticker, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quoteSummary returned status %d for %s", resp.StatusCode, ticker)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var qs yahooQuoteSummary
	if err := json.Unmarshal(body, &qs); err != nil {
		return nil, fmt.Errorf("failed to parse quoteSummary response: %w", err)
	}

	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s (%s): %w",
			ticker, qs.QuoteSummary.Error.Code, ErrNotFound)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty quoteSummary result for %s: %w", ticker, ErrNotFound)
	}

	result := qs.QuoteSummary.Result[0]

	name := ticker
	currency := "USD"
	var marketCap float64
	if result.Price != nil {
		if result.Price.LongName != "" {
			name = result.Price.LongName
		} else if result.Price.ShortName != "" {
			name = result.Price.ShortName
		}
		if result.Price.Currency != "" {
			currency = result.Price.Currency
		}
		marketCap = result.Price.MarketCap.Raw
	}

	// The annual statement history is ordered most-recent-first. An empty
	// history means the symbol trades but files nothing we can screen on
	// (funds, some ADRs) and is a hard failure for the evaluator.
	if result.IncomeStatementHistory == nil || len(result.IncomeStatementHistory.IncomeStatementHistory) == 0 {
		return nil, fmt.Errorf("income statement for %s: %w", ticker, ErrNoFinancials)
	}
	revenue := result.IncomeStatementHistory.IncomeStatementHistory[0].TotalRevenue.Raw

	return &CompanyProfile{
		Name:             name,
		Ticker:           ticker,
		WorldwideRevenue: revenue,
		MarketCap:        marketCap,
		Currency:         currency,
	}, nil
}

// GeoRevenue reports absence: quoteSummary carries no geographic revenue
// breakdown for any module combination.
func (c *YahooClient) GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error) {
	return nil, nil
}
