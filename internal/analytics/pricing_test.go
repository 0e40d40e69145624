package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

func pricedListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Neighbourhood: "Indre By", RoomType: "Entire home/apt", Price: fp(50)},
		{ID: 2, Neighbourhood: "Indre By", RoomType: "Private room", Price: fp(100)},
		{ID: 3, Neighbourhood: "Vesterbro", RoomType: "Entire home/apt", Price: fp(150)},
		{ID: 4, Neighbourhood: "Vesterbro", RoomType: "Private room", Price: fp(200)},
	}
}

func TestOptimalPricingQuartileBands(t *testing.T) {
	rep := OptimalPricing(pricedListings(), FilterAll, FilterAll)
	require.NotNil(t, rep)

	assert.Equal(t, 4, rep.Listings)
	assert.InDelta(t, 125.0, rep.AvgPrice, 1e-9)
	assert.InDelta(t, 125.0, rep.MedianPrice, 1e-9)
	assert.InDelta(t, 64.55, rep.PriceStdDev, 0.01)

	require.Len(t, rep.Bands, 4)
	budget, competitive, premium, luxury := rep.Bands[0], rep.Bands[1], rep.Bands[2], rep.Bands[3]

	assert.Equal(t, "Budget", budget.Name)
	assert.InDelta(t, 50.0, budget.Low, 1e-9)
	assert.InDelta(t, 87.5, budget.High, 1e-9)
	assert.InDelta(t, 125.0, competitive.High, 1e-9)
	assert.InDelta(t, 162.5, premium.High, 1e-9)
	assert.InDelta(t, 200.0, luxury.High, 1e-9)

	// bands partition [min, max] with shared edges and no gaps
	assert.Equal(t, budget.High, competitive.Low)
	assert.Equal(t, competitive.High, premium.Low)
	assert.Equal(t, premium.High, luxury.Low)
	assert.Equal(t, rep.MinPrice, budget.Low)
	assert.Equal(t, rep.MaxPrice, luxury.High)
}

func TestOptimalPricingFilters(t *testing.T) {
	rep := OptimalPricing(pricedListings(), "Indre By", FilterAll)
	require.NotNil(t, rep)
	assert.Equal(t, 2, rep.Listings)
	assert.InDelta(t, 75.0, rep.AvgPrice, 1e-9)

	rep = OptimalPricing(pricedListings(), "Indre By", "Private room")
	require.NotNil(t, rep)
	assert.Equal(t, 1, rep.Listings)
	assert.InDelta(t, 100.0, rep.AvgPrice, 1e-9)
	assert.Equal(t, 0.0, rep.PriceStdDev)

	// empty sentinel behaves like All
	rep = OptimalPricing(pricedListings(), "", "")
	require.NotNil(t, rep)
	assert.Equal(t, FilterAll, rep.Neighbourhood)
	assert.Equal(t, 4, rep.Listings)
}

func TestOptimalPricingNoMatches(t *testing.T) {
	assert.Nil(t, OptimalPricing(pricedListings(), "Atlantis", FilterAll))
	assert.Nil(t, OptimalPricing(nil, FilterAll, FilterAll))

	// matched listings without usable prices
	noPrices := []domain.Listing{{ID: 1, Neighbourhood: "Indre By"}}
	assert.Nil(t, OptimalPricing(noPrices, FilterAll, FilterAll))
}

func TestAnalyzeMarket(t *testing.T) {
	cal := []domain.CalendarEntry{
		{ListingID: 1, Date: day(2025, time.January, 1), Available: true},
		{ListingID: 1, Date: day(2025, time.January, 2), Available: false},
		{ListingID: 2, Date: day(2025, time.January, 1), Available: false},
	}
	rep := AnalyzeMarket(pricedListings(), cal)
	require.NotNil(t, rep)

	assert.Equal(t, 4, rep.TotalListings)
	assert.Equal(t, 2, rep.Neighbourhoods)
	assert.Equal(t, 2, rep.RoomTypes)

	require.NotNil(t, rep.PriceStats)
	assert.InDelta(t, 125.0, rep.PriceStats.Avg, 1e-9)
	assert.InDelta(t, 50.0, rep.PriceStats.Min, 1e-9)
	assert.InDelta(t, 200.0, rep.PriceStats.Max, 1e-9)

	require.Len(t, rep.ByNeighbourhood, 2)
	assert.Equal(t, "Indre By", rep.ByNeighbourhood[0].Group)
	assert.Equal(t, 2, rep.ByNeighbourhood[0].Listings)
	assert.InDelta(t, 75.0, rep.ByNeighbourhood[0].AvgPrice, 1e-9)

	require.NotNil(t, rep.Calendar)
	assert.Equal(t, 3, rep.Calendar.TotalDays)
	assert.Equal(t, 2, rep.Calendar.BookedDays)
	assert.InDelta(t, 66.67, rep.Calendar.OccupancyRate, 0.01)
	assert.Equal(t, 2, rep.Calendar.UniqueListings)
}

func TestAnalyzeMarketWithoutListings(t *testing.T) {
	assert.Nil(t, AnalyzeMarket(nil, nil))
}
