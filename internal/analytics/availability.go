package analytics

import (
	"sort"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

const (
	highAvailabilityDays = 300
	lowAvailabilityDays  = 30
)

// availabilityBuckets are inclusive on both edges; the lowest bucket
// includes 0. Values outside 0-365 fall out of the distribution.
var availabilityBuckets = []struct {
	label    string
	min, max float64
}{
	{"Very Low (0-30 days)", 0, 30},
	{"Low (31-90 days)", 31, 90},
	{"Medium (91-180 days)", 91, 180},
	{"High (181-365 days)", 181, 365},
}

// numericFields names every numeric listing column the correlation scan
// considers, availability_365 excluded.
var numericFields = []struct {
	name string
	get  func(domain.Listing) *float64
}{
	{"price", func(l domain.Listing) *float64 { return l.Price }},
	{"rating", func(l domain.Listing) *float64 { return l.Rating }},
	{"minimum_nights", func(l domain.Listing) *float64 { return l.MinimumNights }},
	{"number_of_reviews", func(l domain.Listing) *float64 { return l.NumberOfReviews }},
	{"reviews_per_month", func(l domain.Listing) *float64 { return l.ReviewsPerMonth }},
	{"number_of_reviews_ltm", func(l domain.Listing) *float64 { return l.NumberOfReviewsLTM }},
	{"latitude", func(l domain.Listing) *float64 { return l.Latitude }},
	{"longitude", func(l domain.Listing) *float64 { return l.Longitude }},
}

func analyzeAvailability(listings []domain.Listing) *domain.AvailabilityReport {
	if len(listings) == 0 {
		return nil
	}
	var avail []float64
	for _, l := range listings {
		if l.Availability365 != nil {
			avail = append(avail, *l.Availability365)
		}
	}
	if len(avail) == 0 {
		return nil
	}

	lo, hi := minMax(avail)
	rep := &domain.AvailabilityReport{
		Stats: domain.FieldStats{
			Count:  len(avail),
			Mean:   mean(avail),
			Std:    sampleStd(avail),
			Min:    lo,
			Q25:    quantile(avail, 0.25),
			Median: median(avail),
			Q75:    quantile(avail, 0.75),
			Max:    hi,
		},
		TotalListings: len(listings),
	}

	for _, b := range availabilityBuckets {
		n := 0
		for _, v := range avail {
			if v >= b.min && v <= b.max {
				n++
			}
		}
		rep.Distribution = append(rep.Distribution, domain.BucketCount{Label: b.label, Count: n})
	}

	high, low := 0, 0
	for _, v := range avail {
		if v >= highAvailabilityDays {
			high++
		}
		if v <= lowAvailabilityDays {
			low++
		}
	}
	rep.HighCount, rep.HighPct = high, pctOf(high, len(listings))
	rep.LowCount, rep.LowPct = low, pctOf(low, len(listings))

	rep.ByRoomType = groupAvailability(listings, func(l domain.Listing) string { return l.RoomType })
	rep.ByNeighbourhood = groupAvailability(listings, func(l domain.Listing) string { return l.Neighbourhood })

	top := make([]domain.GroupStats, len(rep.ByNeighbourhood))
	copy(top, rep.ByNeighbourhood)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Mean > top[j].Mean })
	if len(top) > 10 {
		top = top[:10]
	}
	rep.TopNeighbourhoods = top

	avPtr := make([]*float64, len(listings))
	for i := range listings {
		avPtr[i] = listings[i].Availability365
	}
	for _, f := range numericFields {
		col := make([]*float64, len(listings))
		for i := range listings {
			col[i] = f.get(listings[i])
		}
		if r, ok := pearson(avPtr, col); ok {
			rep.Correlations = append(rep.Correlations, domain.Correlation{Field: f.name, R: r})
		}
	}
	sort.SliceStable(rep.Correlations, func(i, j int) bool {
		return rep.Correlations[i].R > rep.Correlations[j].R
	})

	return rep
}

func groupAvailability(listings []domain.Listing, key func(domain.Listing) string) []domain.GroupStats {
	byGroup := map[string][]float64{}
	for _, l := range listings {
		k := key(l)
		if k == "" || l.Availability365 == nil {
			continue
		}
		byGroup[k] = append(byGroup[k], *l.Availability365)
	}
	names := make([]string, 0, len(byGroup))
	for k := range byGroup {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]domain.GroupStats, 0, len(names))
	for _, k := range names {
		vs := byGroup[k]
		out = append(out, domain.GroupStats{
			Group:  k,
			Mean:   mean(vs),
			Median: median(vs),
			Count:  len(vs),
			Std:    sampleStd(vs),
		})
	}
	return out
}
