package analytics

import (
	"sort"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// AnalyzeMarket summarizes the listings extract: volume, price spread,
// and per-neighbourhood / per-room-type breakdowns. The calendar sample,
// when present, contributes a cheap occupancy snapshot.
func AnalyzeMarket(listings []domain.Listing, calSample []domain.CalendarEntry) *domain.MarketReport {
	if len(listings) == 0 {
		return nil
	}

	neighbourhoods := map[string]bool{}
	roomTypes := map[string]bool{}
	var prices []float64
	for _, l := range listings {
		if l.Neighbourhood != "" {
			neighbourhoods[l.Neighbourhood] = true
		}
		if l.RoomType != "" {
			roomTypes[l.RoomType] = true
		}
		if l.Price != nil {
			prices = append(prices, *l.Price)
		}
	}

	rep := &domain.MarketReport{
		TotalListings:  len(listings),
		Neighbourhoods: len(neighbourhoods),
		RoomTypes:      len(roomTypes),
	}
	if len(prices) > 0 {
		lo, hi := minMax(prices)
		rep.PriceStats = &domain.PriceStats{
			Avg:    mean(prices),
			Median: median(prices),
			Min:    lo,
			Max:    hi,
			Count:  len(prices),
		}
	}

	rep.ByNeighbourhood = groupPrices(listings, func(l domain.Listing) string { return l.Neighbourhood })
	rep.ByRoomType = groupPrices(listings, func(l domain.Listing) string { return l.RoomType })

	if len(calSample) > 0 {
		total, avail, booked := len(calSample), 0, 0
		uniq := map[int64]bool{}
		for _, e := range calSample {
			if e.Available {
				avail++
			} else {
				booked++
			}
			uniq[e.ListingID] = true
		}
		rep.Calendar = &domain.CalendarSnapshot{
			TotalDays:        total,
			AvailableDays:    avail,
			BookedDays:       booked,
			AvailabilityRate: pctOf(avail, total),
			OccupancyRate:    pctOf(booked, total),
			UniqueListings:   len(uniq),
		}
	}
	return rep
}

func groupPrices(listings []domain.Listing, key func(domain.Listing) string) []domain.GroupPriceStats {
	type agg struct {
		listings int
		prices   []float64
	}
	byGroup := map[string]*agg{}
	for _, l := range listings {
		k := key(l)
		if k == "" {
			continue
		}
		a := byGroup[k]
		if a == nil {
			a = &agg{}
			byGroup[k] = a
		}
		a.listings++
		if l.Price != nil {
			a.prices = append(a.prices, *l.Price)
		}
	}
	names := make([]string, 0, len(byGroup))
	for k := range byGroup {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]domain.GroupPriceStats, 0, len(names))
	for _, k := range names {
		a := byGroup[k]
		g := domain.GroupPriceStats{Group: k, Listings: a.listings, PriceCount: len(a.prices)}
		if len(a.prices) > 0 {
			g.AvgPrice = round2(mean(a.prices))
			g.MedianPrice = round2(median(a.prices))
		}
		out = append(out, g)
	}
	return out
}
