package analytics

import (
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// FilterAll is the sentinel meaning "no filter" for neighbourhood and
// room-type selections.
const FilterAll = "All"

// OptimalPricing partitions the filtered market into four quartile bands.
// Filters are exact matches applied before any statistic; returns nil
// when the filtered set has no usable prices.
func OptimalPricing(listings []domain.Listing, neighbourhood, roomType string) *domain.OptimalPricingReport {
	if neighbourhood == "" {
		neighbourhood = FilterAll
	}
	if roomType == "" {
		roomType = FilterAll
	}

	var prices []float64
	matched := 0
	for _, l := range listings {
		if neighbourhood != FilterAll && l.Neighbourhood != neighbourhood {
			continue
		}
		if roomType != FilterAll && l.RoomType != roomType {
			continue
		}
		matched++
		if l.Price != nil {
			prices = append(prices, *l.Price)
		}
	}
	if len(prices) == 0 {
		return nil
	}

	lo, hi := minMax(prices)
	q1 := quantile(prices, 0.25)
	q2 := quantile(prices, 0.50)
	q3 := quantile(prices, 0.75)

	return &domain.OptimalPricingReport{
		Neighbourhood: neighbourhood,
		RoomType:      roomType,
		Listings:      matched,
		AvgPrice:      mean(prices),
		MedianPrice:   q2,
		MinPrice:      lo,
		MaxPrice:      hi,
		Bands: []domain.PriceBand{
			{Name: "Budget", Low: lo, High: q1},
			{Name: "Competitive", Low: q1, High: q2},
			{Name: "Premium", Low: q2, High: q3},
			{Name: "Luxury", Low: q3, High: hi},
		},
		PriceStdDev: sampleStd(prices),
	}
}
