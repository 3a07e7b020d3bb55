package finance

import (
	"context"
	"fmt"
	"os"
	"strings"

	"eumr_screening/pkg/core/utils"
)

// SegmentedProvider overlays a locally curated geographic-segment file on an
// inner Provider. Yahoo publishes no segment splits, so observed EU revenue
// only exists for tickers whose annual-report segment disclosures have been
// transcribed into the file.
//
// File format (JSON or HJSON), revenue in the provider's native currency:
//
//	{
//	  "SAP": { "Europe": 18200000000, "Americas": 12100000000 },
//	  ...
//	}
type SegmentedProvider struct {
	inner    Provider
	segments map[string]map[string]float64
}

// NewSegmentedProvider loads the segment file at path and wraps inner.
// A missing or empty path yields a pass-through provider.
func NewSegmentedProvider(inner Provider, path string) (*SegmentedProvider, error) {
	p := &SegmentedProvider{inner: inner}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment file %s: %w", path, err)
	}

	segments := make(map[string]map[string]float64)
	if err := utils.DecodeLenient(data, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segment file %s: %w", path, err)
	}

	// Key by upper-cased ticker so lookups match however the file was typed.
	p.segments = make(map[string]map[string]float64, len(segments))
	for ticker, regions := range segments {
		p.segments[strings.ToUpper(ticker)] = regions
	}
	return p, nil
}

// Profile delegates to the inner provider and attaches the ticker's segment
// breakdown when one is on file.
func (p *SegmentedProvider) Profile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	profile, err := p.inner.Profile(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if regions, ok := p.segments[strings.ToUpper(ticker)]; ok && len(regions) > 0 {
		profile.GeoRevenue = regions
	}
	return profile, nil
}

// GeoRevenue prefers the local segment file, then the inner provider.
func (p *SegmentedProvider) GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error) {
	if regions, ok := p.segments[strings.ToUpper(ticker)]; ok && len(regions) > 0 {
		return regions, nil
	}
	return p.inner.GeoRevenue(ctx, ticker)
}
