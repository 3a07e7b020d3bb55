package eumr

import (
	"math"
	"testing"
)

func TestEstimateWithoutBreakdown(t *testing.T) {
	res := EstimateEURevenue(6_000_000_000, nil)

	// 30% of $6B = $1.8B
	if math.Abs(res.EuRevenue-1_800_000_000) > 0.01 {
		t.Errorf("Expected 1.8B estimate, got %f", res.EuRevenue)
	}
	if !res.Estimated {
		t.Error("Expected estimated flag to be set without a breakdown")
	}
}

func TestObservedEuropeSegment(t *testing.T) {
	geo := map[string]float64{
		"Europe":   1_200_000_000,
		"Americas": 3_000_000_000,
	}
	res := EstimateEURevenue(5_000_000_000, geo)

	if res.EuRevenue != 1_200_000_000 {
		t.Errorf("Expected observed Europe value 1.2B, got %f", res.EuRevenue)
	}
	if res.Estimated {
		t.Error("Observed segment data must not be flagged as estimated")
	}
}

func TestRegionPreferenceOrder(t *testing.T) {
	// Europe outranks EU outranks EMEA when several keys are present.
	geo := map[string]float64{
		"EMEA":   900_000_000,
		"EU":     700_000_000,
		"Europe": 500_000_000,
	}
	res := EstimateEURevenue(2_000_000_000, geo)
	if res.EuRevenue != 500_000_000 {
		t.Errorf("Expected Europe (500M) to win preference order, got %f", res.EuRevenue)
	}

	delete(geo, "Europe")
	res = EstimateEURevenue(2_000_000_000, geo)
	if res.EuRevenue != 700_000_000 {
		t.Errorf("Expected EU (700M) after Europe removed, got %f", res.EuRevenue)
	}
}

func TestBreakdownWithoutEuRegionsFallsThrough(t *testing.T) {
	// A present breakdown naming only non-EU regions still routes to the
	// estimate, and says so.
	geo := map[string]float64{
		"Asia":     2_000_000_000,
		"Americas": 3_000_000_000,
	}
	res := EstimateEURevenue(10_000_000_000, geo)

	if math.Abs(res.EuRevenue-3_000_000_000) > 0.01 {
		t.Errorf("Expected 30%% fallback (3B), got %f", res.EuRevenue)
	}
	if !res.Estimated {
		t.Error("Fallback from a non-matching breakdown must be flagged as estimated")
	}
}

func TestEstimateNeverExceedsWorldwide(t *testing.T) {
	// The estimation policy caps at 30% of worldwide, so the invariant
	// eu <= worldwide holds for any non-negative input.
	for _, worldwide := range []float64{0, 1, 1_000_000, 9.9e12} {
		res := EstimateEURevenue(worldwide, nil)
		if res.EuRevenue > worldwide {
			t.Errorf("Estimate %f exceeds worldwide %f", res.EuRevenue, worldwide)
		}
	}
}
