package analytics

import (
	"time"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// AnalyzeBookings derives booking-volume patterns from an uploaded
// export. Requires a detected date column; nil otherwise.
func AnalyzeBookings(ds domain.BookingDataset) *domain.BookingPatternReport {
	if len(ds.DateColumns) == 0 || len(ds.Records) == 0 {
		return nil
	}

	uniq := map[time.Time]bool{}
	byMonth := map[time.Time]int{}
	byDay := map[string]int{}
	dated := 0
	for _, r := range ds.Records {
		if r.Date == nil {
			continue
		}
		dated++
		d := r.Date.UTC().Truncate(24 * time.Hour)
		uniq[d] = true
		byMonth[monthStart(*r.Date)]++
		byDay[weekdayName(*r.Date)]++
	}

	rep := &domain.BookingPatternReport{
		TotalBookings: len(ds.Records),
		UniqueDates:   len(uniq),
	}
	for _, m := range sortedMonths(byMonth) {
		rep.ByMonth = append(rep.ByMonth, domain.MonthCount{Month: m, Count: byMonth[m]})
	}
	for _, day := range weekdayOrder {
		n := byDay[day]
		rep.ByWeekday = append(rep.ByWeekday, domain.WeekdayCount{
			Day: day, Count: n, Pct: round1(pctOf(n, dated)),
		})
	}
	return rep
}

// AnalyzeRevenue sums the detected price column as revenue and tracks
// monthly totals. Requires a detected price column; nil otherwise.
func AnalyzeRevenue(ds domain.BookingDataset) *domain.RevenueReport {
	if len(ds.PriceColumns) == 0 || len(ds.Records) == 0 {
		return nil
	}

	var amounts []float64
	byMonth := map[time.Time]float64{}
	for _, r := range ds.Records {
		if r.Amount == nil {
			continue
		}
		amounts = append(amounts, *r.Amount)
		if r.Date != nil {
			byMonth[monthStart(*r.Date)] += *r.Amount
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	total := 0.0
	for _, v := range amounts {
		total += v
	}
	rep := &domain.RevenueReport{
		TotalRevenue:  total,
		AvgPerBooking: mean(amounts),
	}
	for _, m := range sortedMonthsF(byMonth) {
		rep.ByMonth = append(rep.ByMonth, domain.MonthValue{Month: m, Value: byMonth[m]})
	}
	return rep
}

// AnalyzePricingTrend reports mean/median of the detected price column
// and its monthly mean trend. Requires date and price columns.
func AnalyzePricingTrend(ds domain.BookingDataset) *domain.PricingTrendReport {
	if len(ds.PriceColumns) == 0 || len(ds.DateColumns) == 0 || len(ds.Records) == 0 {
		return nil
	}

	var amounts []float64
	sums := map[time.Time]float64{}
	counts := map[time.Time]int{}
	for _, r := range ds.Records {
		if r.Amount == nil {
			continue
		}
		amounts = append(amounts, *r.Amount)
		if r.Date != nil {
			m := monthStart(*r.Date)
			sums[m] += *r.Amount
			counts[m]++
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	rep := &domain.PricingTrendReport{
		AvgPrice:    mean(amounts),
		MedianPrice: median(amounts),
	}
	for _, m := range sortedMonthsF(sums) {
		rep.Trend = append(rep.Trend, domain.MonthValue{Month: m, Value: sums[m] / float64(counts[m])})
	}
	return rep
}
