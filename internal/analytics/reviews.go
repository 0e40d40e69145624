package analytics

import (
	"sort"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// reviewFields enumerates the listing-level review-count columns the
// enhanced analysis inspects, in reporting order.
var reviewFields = []struct {
	name string
	get  func(domain.Listing) *float64
}{
	{"number_of_reviews", func(l domain.Listing) *float64 { return l.NumberOfReviews }},
	{"reviews_per_month", func(l domain.Listing) *float64 { return l.ReviewsPerMonth }},
	{"number_of_reviews_ltm", func(l domain.Listing) *float64 { return l.NumberOfReviewsLTM }},
}

// Distribution bins per field. The first bucket holds exactly 0; every
// later edge is an inclusive upper bound; the last bucket is open-ended.
var reviewBins = map[string]struct {
	edges  []float64
	labels []string
}{
	"number_of_reviews": {
		edges:  []float64{0, 5, 10, 25, 50, 100},
		labels: []string{"0", "1-5", "6-10", "11-25", "26-50", "51-100", "100+"},
	},
	"reviews_per_month": {
		edges:  []float64{0, 0.5, 1, 2, 5, 10},
		labels: []string{"0", "0.1-0.5", "0.6-1", "1.1-2", "2.1-5", "5.1-10", "10+"},
	},
	"number_of_reviews_ltm": {
		edges:  []float64{0, 5, 10, 25, 50, 100},
		labels: []string{"0", "1-5", "6-10", "11-25", "26-50", "51-100", "100+"},
	},
}

// AnalyzeReviewPatterns aggregates review events by day of week.
// Returns nil when the review extract is empty.
func AnalyzeReviewPatterns(reviews []domain.Review) *domain.ReviewPatternReport {
	if len(reviews) == 0 {
		return nil
	}
	byDay := map[string]int{}
	for _, r := range reviews {
		byDay[weekdayName(r.Date)]++
	}
	total := len(reviews)
	rep := &domain.ReviewPatternReport{
		TotalReviews: total,
		AvgPerDay:    float64(total) / 7,
	}
	weekend, weekday := 0, 0
	for _, day := range weekdayOrder {
		n := byDay[day]
		rep.ByWeekday = append(rep.ByWeekday, domain.WeekdayCount{
			Day: day, Count: n, Pct: round1(pctOf(n, total)),
		})
		if weekendDays[day] {
			weekend += n
		} else {
			weekday += n
		}
	}
	rep.WeekendReviews, rep.WeekdayReviews = weekend, weekday
	rep.WeekendPct = pctOf(weekend, total)
	rep.WeekdayPct = pctOf(weekday, total)
	return rep
}

// AnalyzeReviewInsights extends the day-of-week patterns with statistics
// over the listings extract's review-count fields.
func AnalyzeReviewInsights(reviews []domain.Review, listings []domain.Listing) *domain.EnhancedReviewReport {
	base := AnalyzeReviewPatterns(reviews)
	if base == nil {
		return nil
	}
	rep := &domain.EnhancedReviewReport{Pattern: *base}
	if len(listings) == 0 {
		return rep
	}

	type column struct {
		name   string
		values []float64       // non-missing only
		ptrs   []*float64      // aligned with listings, for correlations
		get    func(domain.Listing) *float64
	}
	var available []column
	for _, f := range reviewFields {
		col := column{name: f.name, get: f.get}
		col.ptrs = make([]*float64, len(listings))
		for i, l := range listings {
			v := f.get(l)
			col.ptrs[i] = v
			if v != nil {
				col.values = append(col.values, *v)
			}
		}
		if len(col.values) > 0 {
			available = append(available, col)
		}
	}
	if len(available) == 0 {
		return rep
	}

	rep.FieldStats = map[string]domain.ReviewFieldStats{}
	rep.Distributions = map[string][]domain.BucketCount{}
	for _, col := range available {
		lo, hi := minMax(col.values)
		zero := 0
		for _, v := range col.values {
			if v == 0 {
				zero++
			}
		}
		rep.FieldStats[col.name] = domain.ReviewFieldStats{
			Mean:          mean(col.values),
			Median:        median(col.values),
			Std:           sampleStd(col.values),
			Min:           lo,
			Max:           hi,
			TotalListings: len(col.values),
			ZeroCount:     zero,
			ZeroPct:       round1(pctOf(zero, len(col.values))),
		}
		if bins, ok := reviewBins[col.name]; ok {
			rep.Distributions[col.name] = bucketize(col.values, bins.edges, bins.labels)
		}
	}

	if len(available) >= 2 {
		rep.Correlations = map[string]map[string]float64{}
		for _, a := range available {
			row := map[string]float64{}
			for _, b := range available {
				if r, ok := pearson(a.ptrs, b.ptrs); ok {
					row[b.name] = r
				}
			}
			rep.Correlations[a.name] = row
		}
	}

	rep.ByRoomType = map[string][]domain.GroupStats{}
	for _, col := range available {
		rep.ByRoomType[col.name] = groupField(listings, col.get,
			func(l domain.Listing) string { return l.RoomType }, nil)
	}

	top := topNeighbourhoodsByVolume(listings, 10)
	if len(top) > 0 {
		rep.ByNeighbourhood = map[string][]domain.GroupStats{}
		for _, col := range available {
			rep.ByNeighbourhood[col.name] = groupField(listings, col.get,
				func(l domain.Listing) string { return l.Neighbourhood }, top)
		}
	}
	return rep
}

// bucketize assigns each value to its fixed bin. edges[0] is the exact
// value of the first bucket; later edges are inclusive upper bounds.
func bucketize(vs []float64, edges []float64, labels []string) []domain.BucketCount {
	counts := make([]int, len(labels))
	for _, v := range vs {
		if v < 0 {
			continue
		}
		idx := len(labels) - 1
		if v <= edges[0] {
			idx = 0
		} else {
			for i := 1; i < len(edges); i++ {
				if v <= edges[i] {
					idx = i
					break
				}
			}
		}
		counts[idx]++
	}
	out := make([]domain.BucketCount, len(labels))
	for i, label := range labels {
		out[i] = domain.BucketCount{Label: label, Count: counts[i]}
	}
	return out
}

// topNeighbourhoodsByVolume selects by listing count, not by the metric
// under study.
func topNeighbourhoodsByVolume(listings []domain.Listing, n int) map[string]bool {
	counts := map[string]int{}
	for _, l := range listings {
		if l.Neighbourhood != "" {
			counts[l.Neighbourhood]++
		}
	}
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	top := map[string]bool{}
	for _, k := range names {
		top[k] = true
	}
	return top
}

// groupField computes mean/median/count/std of one field per group,
// rounded to 2 decimals, optionally restricted to an allow-list.
func groupField(listings []domain.Listing, get func(domain.Listing) *float64,
	key func(domain.Listing) string, allow map[string]bool) []domain.GroupStats {

	byGroup := map[string][]float64{}
	for _, l := range listings {
		k := key(l)
		if k == "" || (allow != nil && !allow[k]) {
			continue
		}
		if v := get(l); v != nil {
			byGroup[k] = append(byGroup[k], *v)
		}
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
			Mean:   round2(mean(vs)),
			Median: round2(median(vs)),
			Count:  len(vs),
			Std:    round2(sampleStd(vs)),
		})
	}
	return out
}
