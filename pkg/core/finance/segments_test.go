package finance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// staticProvider serves one fixed profile for any ticker.
type staticProvider struct {
	profile CompanyProfile
}

func (s *staticProvider) Profile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	clone := s.profile
	clone.Ticker = ticker
	return &clone, nil
}

func (s *staticProvider) GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error) {
	return nil, nil
}

func writeSegmentFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segments.hjson")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSegmentedProviderOverlay(t *testing.T) {
	path := writeSegmentFile(t, `{
		# segment note, FY2023
		sap: {
			Europe: 18200000000
			Americas: 11300000000
		}
	}`)

	inner := &staticProvider{profile: CompanyProfile{Name: "SAP SE", WorldwideRevenue: 33_000_000_000, Currency: "USD"}}
	provider, err := NewSegmentedProvider(inner, path)
	if err != nil {
		t.Fatalf("NewSegmentedProvider failed: %v", err)
	}

	// Ticker casing in the file does not matter.
	profile, err := provider.Profile(context.Background(), "SAP")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.GeoRevenue == nil || profile.GeoRevenue["Europe"] != 18_200_000_000 {
		t.Errorf("Expected Europe segment attached, got %+v", profile.GeoRevenue)
	}

	geo, err := provider.GeoRevenue(context.Background(), "sap")
	if err != nil {
		t.Fatalf("GeoRevenue failed: %v", err)
	}
	if geo["Americas"] != 11_300_000_000 {
		t.Errorf("Expected Americas segment, got %+v", geo)
	}
}

func TestSegmentedProviderPassThrough(t *testing.T) {
	inner := &staticProvider{profile: CompanyProfile{Name: "No Segments Inc", WorldwideRevenue: 1}}
	provider, err := NewSegmentedProvider(inner, "")
	if err != nil {
		t.Fatalf("NewSegmentedProvider failed: %v", err)
	}

	profile, err := provider.Profile(context.Background(), "NONE")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.GeoRevenue != nil {
		t.Errorf("Expected no overlay without a segment file, got %+v", profile.GeoRevenue)
	}
}

func TestSegmentedProviderMissingFile(t *testing.T) {
	inner := &staticProvider{}
	if _, err := NewSegmentedProvider(inner, filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for an explicitly configured but missing file")
	}
}
