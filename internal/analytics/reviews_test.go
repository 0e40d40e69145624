package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

func TestAnalyzeReviewPatterns(t *testing.T) {
	reviews := []domain.Review{
		{ListingID: 1, Date: day(2025, time.June, 2)}, // Monday
		{ListingID: 1, Date: day(2025, time.June, 2)}, // Monday
		{ListingID: 2, Date: day(2025, time.June, 7)}, // Saturday
		{ListingID: 3, Date: day(2025, time.June, 8)}, // Sunday
	}
	rep := AnalyzeReviewPatterns(reviews)
	require.NotNil(t, rep)

	assert.Equal(t, 4, rep.TotalReviews)
	require.Len(t, rep.ByWeekday, 7)
	assert.Equal(t, "Monday", rep.ByWeekday[0].Day)
	assert.Equal(t, 2, rep.ByWeekday[0].Count)
	assert.InDelta(t, 50.0, rep.ByWeekday[0].Pct, 1e-9)
	assert.Equal(t, 0, rep.ByWeekday[1].Count) // Tuesday zero-filled

	assert.Equal(t, 2, rep.WeekendReviews)
	assert.Equal(t, 2, rep.WeekdayReviews)
	assert.InDelta(t, 50.0, rep.WeekendPct, 1e-9)
	assert.InDelta(t, 4.0/7, rep.AvgPerDay, 1e-9)
}

func TestAnalyzeReviewPatternsEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeReviewPatterns(nil))
}

func insightListings() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Neighbourhood: "Indre By", RoomType: "Private room", NumberOfReviews: fp(0), ReviewsPerMonth: fp(0)},
		{ID: 2, Neighbourhood: "Indre By", RoomType: "Private room", NumberOfReviews: fp(3), ReviewsPerMonth: fp(0.4)},
		{ID: 3, Neighbourhood: "Vesterbro", RoomType: "Entire home/apt", NumberOfReviews: fp(12), ReviewsPerMonth: fp(1.5)},
		{ID: 4, Neighbourhood: "Vesterbro", RoomType: "Entire home/apt", NumberOfReviews: fp(120), ReviewsPerMonth: fp(11)},
	}
}

func TestAnalyzeReviewInsights(t *testing.T) {
	reviews := []domain.Review{{ListingID: 1, Date: day(2025, time.June, 2)}}
	rep := AnalyzeReviewInsights(reviews, insightListings())
	require.NotNil(t, rep)

	stats, ok := rep.FieldStats["number_of_reviews"]
	require.True(t, ok)
	assert.Equal(t, 4, stats.TotalListings)
	assert.Equal(t, 1, stats.ZeroCount)
	assert.InDelta(t, 25.0, stats.ZeroPct, 1e-9)
	assert.InDelta(t, 33.75, stats.Mean, 1e-9)
	assert.InDelta(t, 0.0, stats.Min, 1e-9)
	assert.InDelta(t, 120.0, stats.Max, 1e-9)

	dist, ok := rep.Distributions["number_of_reviews"]
	require.True(t, ok)
	require.Len(t, dist, 7)
	want := map[string]int{"0": 1, "1-5": 1, "6-10": 0, "11-25": 1, "26-50": 0, "51-100": 0, "100+": 1}
	for _, b := range dist {
		assert.Equal(t, want[b.Label], b.Count, b.Label)
	}

	rpm, ok := rep.Distributions["reviews_per_month"]
	require.True(t, ok)
	wantRPM := map[string]int{"0": 1, "0.1-0.5": 1, "0.6-1": 0, "1.1-2": 1, "2.1-5": 0, "5.1-10": 0, "10+": 1}
	for _, b := range rpm {
		assert.Equal(t, wantRPM[b.Label], b.Count, b.Label)
	}

	// number_of_reviews_ltm absent from the extract: no stats for it
	_, ok = rep.FieldStats["number_of_reviews_ltm"]
	assert.False(t, ok)

	// two fields present: correlation matrix exists and is symmetric
	require.NotNil(t, rep.Correlations)
	r1 := rep.Correlations["number_of_reviews"]["reviews_per_month"]
	r2 := rep.Correlations["reviews_per_month"]["number_of_reviews"]
	assert.InDelta(t, r1, r2, 1e-9)
	assert.InDelta(t, 1.0, rep.Correlations["number_of_reviews"]["number_of_reviews"], 1e-9)

	byRoom, ok := rep.ByRoomType["number_of_reviews"]
	require.True(t, ok)
	require.Len(t, byRoom, 2)
	assert.Equal(t, "Entire home/apt", byRoom[0].Group)
	assert.InDelta(t, 66.0, byRoom[0].Mean, 1e-9)
	assert.Equal(t, 2, byRoom[0].Count)

	byHood, ok := rep.ByNeighbourhood["number_of_reviews"]
	require.True(t, ok)
	require.Len(t, byHood, 2)
}

func TestAnalyzeReviewInsightsWithoutListings(t *testing.T) {
	reviews := []domain.Review{{ListingID: 1, Date: day(2025, time.June, 2)}}
	rep := AnalyzeReviewInsights(reviews, nil)
	require.NotNil(t, rep)
	assert.Nil(t, rep.FieldStats)
	assert.Equal(t, 1, rep.Pattern.TotalReviews)
}

func TestTopNeighbourhoodsByVolume(t *testing.T) {
	var listings []domain.Listing
	for i := 0; i < 12; i++ {
		listings = append(listings, domain.Listing{ID: int64(i), Neighbourhood: "Big"})
	}
	listings = append(listings, domain.Listing{ID: 100, Neighbourhood: "Small"})

	top := topNeighbourhoodsByVolume(listings, 1)
	assert.True(t, top["Big"])
	assert.False(t, top["Small"])
}
