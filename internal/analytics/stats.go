package analytics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// weekdayOrder is the fixed presentation order for every day-of-week
// aggregate. Aggregates always emit all seven days, zero-filled.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekendDays = map[string]bool{"Saturday": true, "Sunday": true}

func weekdayName(t time.Time) string { return t.Weekday().String() }

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// sampleStd is the n-1 standard deviation; 0 for fewer than two samples.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// quantile interpolates linearly between order statistics at position
// p*(n-1), matching the numbers the dashboard has always shown.
// gonum's CumulantKinds implement different estimators, so this one is
// computed directly. xs need not be sorted.
func quantile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	s := make([]float64, n)
	copy(s, xs)
	sort.Float64s(s)
	if n == 1 {
		return s[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	frac := pos - float64(lo)
	return s[lo] + frac*(s[hi]-s[lo])
}

func median(xs []float64) float64 { return quantile(xs, 0.5) }

func minMax(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// pearson computes the correlation over pairwise-complete observations.
// Returns (0, false) when fewer than two complete pairs exist or either
// side is constant.
func pearson(xs, ys []*float64) (float64, bool) {
	var a, b []float64
	for i := range xs {
		if xs[i] != nil && ys[i] != nil {
			a = append(a, *xs[i])
			b = append(b, *ys[i])
		}
	}
	if len(a) < 2 {
		return 0, false
	}
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// pctOf guards the zero denominator that empty partitions produce.
func pctOf(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// monthStart anchors a date to the first day of its (year, month) so
// same-numbered months in different years stay distinct.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sortedMonths(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

func sortedMonthsF(m map[time.Time]float64) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
