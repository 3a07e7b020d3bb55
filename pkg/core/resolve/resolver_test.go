package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"eumr_screening/pkg/core/directory"
	"eumr_screening/pkg/core/finance"
)

const directoryJSON = `{
	"technology": {"microsoft": "MSFT", "apple": "AAPL"},
	"consumer":   {"nike": "NKE"}
}`

type fakeUniverse struct {
	tickers []string
	err     error
}

func (f *fakeUniverse) Tickers(ctx context.Context) ([]string, error) {
	return f.tickers, f.err
}

type fakeProvider struct {
	names map[string]string // ticker -> canonical name
	errs  map[string]error
	calls []string
}

func (f *fakeProvider) Profile(ctx context.Context, ticker string) (*finance.CompanyProfile, error) {
	f.calls = append(f.calls, ticker)
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	name, ok := f.names[ticker]
	if !ok {
		return nil, finance.ErrNotFound
	}
	return &finance.CompanyProfile{Name: name, Ticker: ticker, Currency: "USD"}, nil
}

func (f *fakeProvider) GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error) {
	return nil, nil
}

func mustDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	dir, err := directory.Parse([]byte(directoryJSON))
	if err != nil {
		t.Fatalf("directory.Parse failed: %v", err)
	}
	return dir
}

func TestFastPathDirectoryHit(t *testing.T) {
	provider := &fakeProvider{names: map[string]string{"MSFT": "Microsoft Corporation"}}
	r := NewResolver(mustDirectory(t), &fakeUniverse{}, provider, time.Second)

	// Folding: mixed case and padding still hit the directory.
	candidates, err := r.Resolve(context.Background(), "  Microsoft  ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected exactly one candidate, got %d", len(candidates))
	}
	if candidates[0].Ticker != "MSFT" || candidates[0].Name != "Microsoft Corporation" {
		t.Errorf("Unexpected candidate %+v", candidates[0])
	}
	if len(provider.calls) != 1 {
		t.Errorf("Fast path should fetch exactly once, fetched %v", provider.calls)
	}
}

func TestFastPathFetchFailureSurfaces(t *testing.T) {
	provider := &fakeProvider{errs: map[string]error{"MSFT": errors.New("upstream down")}}
	r := NewResolver(mustDirectory(t), &fakeUniverse{}, provider, time.Second)

	_, err := r.Resolve(context.Background(), "microsoft")
	if err == nil {
		t.Fatal("Expected error when the fast-path profile fetch fails")
	}
}

func TestFallbackScanMatchesAndSkips(t *testing.T) {
	uni := &fakeUniverse{tickers: []string{"AMD", "BROKEN", "INTC", "TSLA", "INTC"}}
	provider := &fakeProvider{
		names: map[string]string{
			"AMD":  "Advanced Micro Devices, Inc.",
			"INTC": "Intel Corporation",
			"TSLA": "Tesla, Inc.",
		},
		errs: map[string]error{"BROKEN": errors.New("rate limited")},
	}
	r := NewResolver(mustDirectory(t), uni, provider, time.Second)

	candidates, err := r.Resolve(context.Background(), "Intel Corp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// "Intel Corp" -> cleaned "intel", contained in "intel corporation".
	// INTC appears twice in the universe and is not deduplicated; BROKEN is
	// skipped silently.
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates (duplicate kept), got %d: %+v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Ticker != "INTC" {
			t.Errorf("Unexpected candidate %+v", c)
		}
	}
}

func TestFallbackBidirectionalContainment(t *testing.T) {
	// Canonical name contained in the query, not the other way round.
	uni := &fakeUniverse{tickers: []string{"TSLA"}}
	provider := &fakeProvider{names: map[string]string{"TSLA": "tesla"}}
	r := NewResolver(mustDirectory(t), uni, provider, time.Second)

	candidates, err := r.Resolve(context.Background(), "Tesla Motors Worldwide")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Ticker != "TSLA" {
		t.Errorf("Expected TSLA via reverse containment, got %+v", candidates)
	}
}

func TestSuffixStripping(t *testing.T) {
	uni := &fakeUniverse{tickers: []string{"NVDA"}}
	provider := &fakeProvider{names: map[string]string{"NVDA": "NVIDIA"}}
	r := NewResolver(mustDirectory(t), uni, provider, time.Second)

	for _, query := range []string{"NVIDIA Inc.", "NVIDIA Corp", "NVIDIA Corporation", "NVIDIA Ltd."} {
		candidates, err := r.Resolve(context.Background(), query)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", query, err)
		}
		if len(candidates) != 1 {
			t.Errorf("Resolve(%q): expected a match after suffix stripping, got %+v", query, candidates)
		}
	}
}

func TestNoMatchReturnsEmptyNotError(t *testing.T) {
	uni := &fakeUniverse{tickers: []string{"AMD"}}
	provider := &fakeProvider{names: map[string]string{"AMD": "Advanced Micro Devices, Inc."}}
	r := NewResolver(mustDirectory(t), uni, provider, time.Second)

	candidates, err := r.Resolve(context.Background(), "Completely Unknown Holdings")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %+v", candidates)
	}
}

func TestUniverseFailureIsError(t *testing.T) {
	uni := &fakeUniverse{err: errors.New("exchange listing endpoint down")}
	r := NewResolver(mustDirectory(t), uni, &fakeProvider{}, time.Second)

	_, err := r.Resolve(context.Background(), "Some Unlisted Company")
	if err == nil {
		t.Fatal("Expected error when the ticker universe is unavailable")
	}
}

func TestCancelledContextAbortsScan(t *testing.T) {
	uni := &fakeUniverse{tickers: []string{"AMD", "INTC"}}
	provider := &fakeProvider{names: map[string]string{"AMD": "Advanced Micro Devices, Inc."}}
	r := NewResolver(mustDirectory(t), uni, provider, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, "Advanced Micro")
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}
