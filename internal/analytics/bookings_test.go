package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

func tp(t time.Time) *time.Time { return &t }

func uploadedBookings() domain.BookingDataset {
	return domain.BookingDataset{
		ID:           "test",
		Columns:      []string{"checkin_date", "total_paid", "guest"},
		DateColumns:  []string{"checkin_date"},
		PriceColumns: []string{"total_paid"},
		Records: []domain.BookingRecord{
			{Date: tp(day(2025, time.January, 6)), Amount: fp(300)},  // Monday
			{Date: tp(day(2025, time.January, 6)), Amount: fp(200)},  // same date
			{Date: tp(day(2025, time.February, 1)), Amount: fp(500)}, // Saturday
			{Date: tp(day(2025, time.February, 8)), Amount: nil},     // unparsable amount
		},
	}
}

func TestAnalyzeBookings(t *testing.T) {
	rep := AnalyzeBookings(uploadedBookings())
	require.NotNil(t, rep)

	assert.Equal(t, 4, rep.TotalBookings)
	assert.Equal(t, 3, rep.UniqueDates)

	require.Len(t, rep.ByMonth, 2)
	assert.Equal(t, day(2025, time.January, 1), rep.ByMonth[0].Month)
	assert.Equal(t, 2, rep.ByMonth[0].Count)
	assert.Equal(t, 2, rep.ByMonth[1].Count)

	require.Len(t, rep.ByWeekday, 7)
	assert.Equal(t, 2, rep.ByWeekday[0].Count) // Monday
	assert.Equal(t, 2, rep.ByWeekday[5].Count) // Saturday
}

func TestAnalyzeBookingsRequiresDateColumn(t *testing.T) {
	ds := uploadedBookings()
	ds.DateColumns = nil
	assert.Nil(t, AnalyzeBookings(ds))
}

func TestAnalyzeRevenue(t *testing.T) {
	rep := AnalyzeRevenue(uploadedBookings())
	require.NotNil(t, rep)

	assert.InDelta(t, 1000.0, rep.TotalRevenue, 1e-9)
	assert.InDelta(t, 1000.0/3, rep.AvgPerBooking, 1e-9)

	require.Len(t, rep.ByMonth, 2)
	assert.InDelta(t, 500.0, rep.ByMonth[0].Value, 1e-9)
	assert.InDelta(t, 500.0, rep.ByMonth[1].Value, 1e-9)
}

func TestAnalyzeRevenueRequiresPriceColumn(t *testing.T) {
	ds := uploadedBookings()
	ds.PriceColumns = nil
	assert.Nil(t, AnalyzeRevenue(ds))
}

func TestAnalyzePricingTrend(t *testing.T) {
	rep := AnalyzePricingTrend(uploadedBookings())
	require.NotNil(t, rep)

	assert.InDelta(t, 1000.0/3, rep.AvgPrice, 1e-9)
	assert.InDelta(t, 300.0, rep.MedianPrice, 1e-9)

	require.Len(t, rep.Trend, 2)
	assert.InDelta(t, 250.0, rep.Trend[0].Value, 1e-9) // January mean
	assert.InDelta(t, 500.0, rep.Trend[1].Value, 1e-9)
}

func TestAnalyzePricingTrendRequiresBothColumns(t *testing.T) {
	ds := uploadedBookings()
	ds.DateColumns = nil
	assert.Nil(t, AnalyzePricingTrend(ds))
}
