// Package resolve maps free-form company names to ticker candidates.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eumr_screening/pkg/core/directory"
	"eumr_screening/pkg/core/finance"
)

// Candidate is one (ticker, canonical name) resolution result.
type Candidate struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Universe enumerates the broad ticker list scanned on the fallback path.
type Universe interface {
	Tickers(ctx context.Context) ([]string, error)
}

// Legal-entity suffixes stripped before fuzzy matching. Punctuated variants
// come first so " Inc." is removed whole rather than leaving a dangling dot.
var legalSuffixes = []string{
	" Incorporated", " Inc.", " Inc",
	" Corporation", " Corp.", " Corp",
	" Limited", " Ltd.", " Ltd",
	" LLC", " Co.", " Co",
}

// Resolver turns a company name into ticker candidates: a direct directory
// lookup first, then a fuzzy scan over the index-constituent universe.
type Resolver struct {
	dir          *directory.Directory
	universe     Universe
	provider     finance.Provider
	fetchTimeout time.Duration // bound on each per-ticker provider call
}

// NewResolver wires a resolver. fetchTimeout <= 0 defaults to 10s.
func NewResolver(dir *directory.Directory, uni Universe, provider finance.Provider, fetchTimeout time.Duration) *Resolver {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Resolver{
		dir:          dir,
		universe:     uni,
		provider:     provider,
		fetchTimeout: fetchTimeout,
	}
}

// Resolve returns candidates in scan order. An empty slice means nothing
// matched; a non-nil error means the resolution machinery itself failed
// (directory unusable, universe unreachable, fast-path fetch failed) and the
// caller should surface the failure rather than treat it as "no match".
//
// Individual candidate lookups on the fallback path are best-effort: a
// ticker whose profile fetch fails is skipped and the scan continues.
func (r *Resolver) Resolve(ctx context.Context, name string) ([]Candidate, error) {
	// Fast path: exact directory hit on the folded name.
	if ticker, ok := r.dir.Lookup(name); ok {
		profile, err := r.fetchBounded(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("directory hit %s but profile fetch failed: %w", ticker, err)
		}
		return []Candidate{{Ticker: ticker, Name: profile.Name}}, nil
	}

	// Fallback: strip legal suffixes and scan the index universe for
	// bidirectional substring containment against each canonical name.
	cleaned := strings.TrimSpace(name)
	for _, suffix := range legalSuffixes {
		cleaned = strings.ReplaceAll(cleaned, suffix, "")
	}
	cleanedLower := strings.ToLower(strings.TrimSpace(cleaned))
	if cleanedLower == "" {
		return nil, nil
	}

	tickers, err := r.universe.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticker universe unavailable: %w", err)
	}

	var matches []Candidate
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("resolution aborted: %w", ctx.Err())
		}

		profile, err := r.fetchBounded(ctx, ticker)
		if err != nil {
			continue // best-effort enumeration, skip and keep scanning
		}

		canonical := strings.ToLower(profile.Name)
		if canonical == "" {
			continue
		}
		if strings.Contains(canonical, cleanedLower) || strings.Contains(cleanedLower, canonical) {
			matches = append(matches, Candidate{Ticker: ticker, Name: profile.Name})
		}
	}

	return matches, nil
}

func (r *Resolver) fetchBounded(ctx context.Context, ticker string) (*finance.CompanyProfile, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()
	return r.provider.Profile(fetchCtx, ticker)
}
