package eumr

// EstimatedEUShare is the fixed fraction of worldwide revenue attributed to
// the EU when no geographic breakdown is observed. A point-in-time policy
// figure, not a regulatory determination; every estimate is flagged.
const EstimatedEUShare = 0.30

// euRegionKeys are the segment labels accepted as the EU figure, in
// preference order. EMEA overstates the EU but is the closest disclosed
// region for many filers.
var euRegionKeys = []string{"Europe", "EU", "EMEA"}

// EstimateEURevenue derives a company's EU-attributable revenue.
//
// When the breakdown contains one of the preferred region keys, that value
// is taken as observed, even if it approaches the worldwide figure. When no
// breakdown exists, or it names none of the preferred regions (segments
// like "Asia"/"Americas" only), the EU figure is estimated as
// EstimatedEUShare of worldwide revenue and flagged accordingly.
func EstimateEURevenue(worldwideRevenue float64, geoRevenue map[string]float64) EuRevenueResult {
	if len(geoRevenue) > 0 {
		for _, region := range euRegionKeys {
			if value, ok := geoRevenue[region]; ok {
				return EuRevenueResult{EuRevenue: value, Estimated: false}
			}
		}
	}
	return EuRevenueResult{
		EuRevenue: worldwideRevenue * EstimatedEUShare,
		Estimated: true,
	}
}
