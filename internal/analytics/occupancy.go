package analytics

import (
	"sort"
	"time"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// AnalyzeOccupancy derives booking-pattern metrics from the calendar
// extract, optionally enriched with availability_365 statistics when a
// listings extract is supplied. Returns nil when the calendar is empty.
func AnalyzeOccupancy(cal []domain.CalendarEntry, listings []domain.Listing) *domain.OccupancyReport {
	if len(cal) == 0 {
		return nil
	}

	total := len(cal)
	booked, available := 0, 0
	dowBooked := map[string]int{}
	monthBooked := map[time.Time]int{}
	quarterBooked := map[[2]int]int{}
	domBooked := map[int]int{}

	for _, e := range cal {
		if e.Available {
			available++
			continue
		}
		booked++
		dowBooked[weekdayName(e.Date)]++
		monthBooked[monthStart(e.Date)]++
		q := (int(e.Date.Month())-1)/3 + 1
		quarterBooked[[2]int{e.Date.Year(), q}]++
		domBooked[e.Date.Day()]++
	}

	rep := &domain.OccupancyReport{
		TotalDays:     total,
		BookedDays:    booked,
		AvailableDays: available,
		OccupancyRate: pctOf(booked, total),
	}

	// Fixed Monday..Sunday order; first max/min in that order wins ties.
	peakDay, lowDay := "", ""
	peakN, lowN := -1, -1
	weekend, weekday := 0, 0
	for _, day := range weekdayOrder {
		n := dowBooked[day]
		rep.ByWeekday = append(rep.ByWeekday, domain.WeekdayCount{
			Day: day, Count: n, Pct: round1(pctOf(n, booked)),
		})
		if n > peakN {
			peakDay, peakN = day, n
		}
		if lowN < 0 || n < lowN {
			lowDay, lowN = day, n
		}
		if weekendDays[day] {
			weekend += n
		} else {
			weekday += n
		}
	}
	rep.PeakDay, rep.PeakBookings = peakDay, peakN
	rep.LowDay, rep.LowBookings = lowDay, lowN
	rep.WeekendBookings, rep.WeekdayBookings = weekend, weekday
	rep.WeekendPct = pctOf(weekend, booked)
	rep.WeekdayPct = pctOf(weekday, booked)

	for _, m := range sortedMonths(monthBooked) {
		rep.ByMonth = append(rep.ByMonth, domain.MonthCount{Month: m, Count: monthBooked[m]})
	}
	for _, qk := range sortedQuarters(quarterBooked) {
		rep.ByQuarter = append(rep.ByQuarter, domain.QuarterCount{
			Year: qk[0], Quarter: qk[1], Count: quarterBooked[qk],
		})
	}
	// Full 1-31 range; short months just contribute zeros at the tail.
	for d := 1; d <= 31; d++ {
		rep.ByDayOfMonth = append(rep.ByDayOfMonth, domain.DayOfMonthCount{Day: d, Count: domBooked[d]})
	}

	rep.Availability = analyzeAvailability(listings)
	return rep
}

func sortedQuarters(m map[[2]int]int) [][2]int {
	keys := make([][2]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	return keys
}
