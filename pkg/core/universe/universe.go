// Package universe enumerates the broad ticker universe the resolver scans
// when the directory fast path misses: the union of the Dow Jones, Nasdaq
// and S&P 500 constituent lists.
package universe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Dow and S&P 500 constituents come from the Wikipedia list pages
	// (first wikitable, Symbol column). Nasdaq listings come from the
	// exchange's own pipe-delimited symbol dump.
	DefaultDowURL    = "https://en.wikipedia.org/wiki/Dow_Jones_Industrial_Average"
	DefaultNasdaqURL = "https://www.nasdaqtrader.com/dynamic/symdir/nasdaqlisted.txt"
	DefaultSP500URL  = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

	universeUserAgent = "EUMRScreening/1.0 (merger screening research tool)"
)

// Sources holds the three constituent-list URLs. Zero-value fields fall back
// to the defaults above.
type Sources struct {
	DowURL    string
	NasdaqURL string
	SP500URL  string
}

// Client fetches and memoizes the concatenated ticker universe. Construct
// one per process and pass it to the resolver; the memoized list lives
// exactly as long as the Client does.
type Client struct {
	sources    Sources
	httpClient *http.Client

	mu     sync.Mutex
	cached []string
}

// NewClient creates a universe client. Pass a zero Sources for the defaults.
func NewClient(sources Sources) *Client {
	if sources.DowURL == "" {
		sources.DowURL = DefaultDowURL
	}
	if sources.NasdaqURL == "" {
		sources.NasdaqURL = DefaultNasdaqURL
	}
	if sources.SP500URL == "" {
		sources.SP500URL = DefaultSP500URL
	}
	return &Client{
		sources: sources,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Tickers returns the universe in scan order: Dow, then Nasdaq, then S&P 500.
// Duplicates across the three lists are kept so scan order matches the
// source concatenation. The first successful fetch is memoized for the
// lifetime of the Client.
func (c *Client) Tickers(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return append([]string(nil), c.cached...), nil
	}

	dow, err := c.fetchWikitableSymbols(ctx, c.sources.DowURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Dow constituents: %w", err)
	}
	nasdaq, err := c.fetchNasdaqListed(ctx, c.sources.NasdaqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Nasdaq listings: %w", err)
	}
	sp500, err := c.fetchWikitableSymbols(ctx, c.sources.SP500URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch S&P 500 constituents: %w", err)
	}

	all := make([]string, 0, len(dow)+len(nasdaq)+len(sp500))
	all = append(all, dow...)
	all = append(all, nasdaq...)
	all = append(all, sp500...)

	c.cached = all
	return append([]string(nil), all...), nil
}

// fetchWikitableSymbols extracts the Symbol column from the first wikitable
// on a Wikipedia constituents page.
func (c *Client) fetchWikitableSymbols(ctx context.Context, pageURL string) ([]string, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no wikitable found at %s", pageURL)
	}

	// Locate the Symbol / Ticker header column; the Dow and S&P 500 pages
	// place it at different indices.
	symbolCol := -1
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		if symbolCol == -1 && (strings.Contains(header, "symbol") || strings.Contains(header, "ticker")) {
			symbolCol = i
		}
	})
	if symbolCol == -1 {
		return nil, fmt.Errorf("no symbol column found at %s", pageURL)
	}

	var symbols []string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := tr.Find("td")
		if cells.Length() <= symbolCol {
			return
		}
		symbol := strings.TrimSpace(cells.Eq(symbolCol).Text())
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol column at %s yielded no rows", pageURL)
	}
	return symbols, nil
}

// fetchNasdaqListed parses the exchange's nasdaqlisted.txt dump. Format:
// pipe-delimited, "Symbol|Security Name|...|Test Issue|...", terminated by a
// "File Creation Time" trailer row.
func (c *Client) fetchNasdaqListed(ctx context.Context, fileURL string) ([]string, error) {
	body, err := c.get(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var symbols []string
	scanner := bufio.NewScanner(body)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue // header
		}
		if strings.HasPrefix(line, "File Creation Time") {
			break
		}
		fields := strings.Split(line, "|")
		if len(fields) < 4 {
			continue
		}
		// Field 3 is the Test Issue flag; synthetic test symbols are not
		// real listings.
		if fields[3] == "Y" {
			continue
		}
		symbol := strings.TrimSpace(fields[0])
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read symbol dump: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol dump at %s yielded no rows", fileURL)
	}
	return symbols, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", universeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
