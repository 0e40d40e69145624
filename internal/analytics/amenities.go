package analytics

import (
	"sort"
	"strings"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// keyAmenities is the fixed keyword list the price-impact scan checks,
// matched case-insensitively as substrings of the amenities field.
var keyAmenities = []string{
	"WiFi", "Kitchen", "Air Conditioning", "Pool", "Gym", "Parking", "Balcony",
}

const topAmenityCount = 20

// AnalyzeAmenities reports the most common amenities plus the mean-price
// impact of each key amenity. Returns nil when no listing carries an
// amenities field.
func AnalyzeAmenities(listings []domain.Listing) *domain.AmenityReport {
	counts := extractAmenities(listings)
	if len(counts) == 0 {
		return nil
	}

	rep := &domain.AmenityReport{TopAmenities: counts}
	if len(rep.TopAmenities) > topAmenityCount {
		rep.TopAmenities = rep.TopAmenities[:topAmenityCount]
	}

	for _, amenity := range keyAmenities {
		needle := strings.ToLower(amenity)
		var with, without []float64
		for _, l := range listings {
			if l.Price == nil {
				continue
			}
			if l.Amenities != "" && strings.Contains(strings.ToLower(l.Amenities), needle) {
				with = append(with, *l.Price)
			} else {
				without = append(without, *l.Price)
			}
		}
		// An empty partition on either side makes the comparison
		// meaningless; skip rather than fabricate.
		if len(with) == 0 || len(without) == 0 {
			continue
		}
		withAvg, withoutAvg := mean(with), mean(without)
		diff := withAvg - withoutAvg
		rep.Impact = append(rep.Impact, domain.AmenityImpact{
			Amenity:      amenity,
			WithAvg:      withAvg,
			WithoutAvg:   withoutAvg,
			Diff:         diff,
			DiffPct:      diff / withoutAvg * 100,
			ListingsWith: len(with),
		})
	}
	sort.SliceStable(rep.Impact, func(i, j int) bool {
		return rep.Impact[i].DiffPct > rep.Impact[j].DiffPct
	})
	return rep
}

// extractAmenities tokenizes every amenities field ("[...]"-wrapped,
// comma-separated, possibly quoted) and counts occurrences, most common
// first. Ties keep insertion order stable via the secondary name sort.
func extractAmenities(listings []domain.Listing) []domain.AmenityCount {
	counts := map[string]int{}
	for _, l := range listings {
		if l.Amenities == "" {
			continue
		}
		s := strings.Trim(l.Amenities, "[]")
		for _, tok := range strings.Split(s, ",") {
			name := strings.Trim(strings.TrimSpace(tok), `"`)
			if name != "" {
				counts[name]++
			}
		}
	}
	out := make([]domain.AmenityCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.AmenityCount{Name: name, Listings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Listings != out[j].Listings {
			return out[i].Listings > out[j].Listings
		}
		return out[i].Name < out[j].Name
	})
	return out
}
