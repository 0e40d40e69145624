package domain

import "time"

// Report types returned by the metrics engine. A nil report pointer means
// "analysis unavailable" (missing input), which callers must treat as a
// normal outcome, not a failure.

type WeekdayCount struct {
	Day   string  `json:"day"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type MonthCount struct {
	Month time.Time `json:"month"` // anchored to the first day of the month
	Count int       `json:"count"`
}

type MonthValue struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

type QuarterCount struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
	Count   int `json:"count"`
}

type DayOfMonthCount struct {
	Day   int `json:"day"` // 1-31
	Count int `json:"count"`
}

type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FieldStats mirrors a describe() over one numeric column.
type FieldStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

type GroupStats struct {
	Group  string  `json:"group"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
	Std    float64 `json:"std"`
}

type Correlation struct {
	Field string  `json:"field"`
	R     float64 `json:"r"`
}

// OccupancyReport covers the calendar-level occupancy analysis plus the
// optional availability_365 enrichment from the listings extract.
type OccupancyReport struct {
	TotalDays       int                 `json:"total_days"`
	BookedDays      int                 `json:"booked_days"`
	AvailableDays   int                 `json:"available_days"`
	OccupancyRate   float64             `json:"occupancy_rate"`
	ByWeekday       []WeekdayCount      `json:"by_weekday"` // always 7, Monday first
	ByMonth         []MonthCount        `json:"by_month"`
	ByQuarter       []QuarterCount      `json:"by_quarter"`
	ByDayOfMonth    []DayOfMonthCount   `json:"by_day_of_month"` // always 31
	PeakDay         string              `json:"peak_day"`
	PeakBookings    int                 `json:"peak_bookings"`
	LowDay          string              `json:"low_day"`
	LowBookings     int                 `json:"low_bookings"`
	WeekendBookings int                 `json:"weekend_bookings"`
	WeekdayBookings int                 `json:"weekday_bookings"`
	WeekendPct      float64             `json:"weekend_pct"`
	WeekdayPct      float64             `json:"weekday_pct"`
	Availability    *AvailabilityReport `json:"availability,omitempty"`
}

type AvailabilityReport struct {
	Stats             FieldStats    `json:"stats"`
	Distribution      []BucketCount `json:"distribution"` // 4 fixed buckets
	ByRoomType        []GroupStats  `json:"by_room_type"`
	ByNeighbourhood   []GroupStats  `json:"by_neighbourhood"`
	TopNeighbourhoods []GroupStats  `json:"top_neighbourhoods"` // top 10 by mean
	Correlations      []Correlation `json:"correlations"`       // vs other numeric fields, desc
	HighCount         int           `json:"high_availability_count"` // >= 300 days
	HighPct           float64       `json:"high_availability_pct"`
	LowCount          int           `json:"low_availability_count"` // <= 30 days
	LowPct            float64       `json:"low_availability_pct"`
	TotalListings     int           `json:"total_listings"`
}

// MarketReport is the listings-level city overview.
type MarketReport struct {
	TotalListings   int               `json:"total_listings"`
	Neighbourhoods  int               `json:"neighbourhoods"`
	RoomTypes       int               `json:"room_types"`
	PriceStats      *PriceStats       `json:"price_stats,omitempty"`
	ByNeighbourhood []GroupPriceStats `json:"by_neighbourhood"`
	ByRoomType      []GroupPriceStats `json:"by_room_type"`
	Calendar        *CalendarSnapshot `json:"calendar,omitempty"`
}

type PriceStats struct {
	Avg    float64 `json:"avg_price"`
	Median float64 `json:"median_price"`
	Min    float64 `json:"min_price"`
	Max    float64 `json:"max_price"`
	Count  int     `json:"count"`
}

type GroupPriceStats struct {
	Group       string  `json:"group"`
	Listings    int     `json:"listings"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	PriceCount  int     `json:"price_count"`
}

type CalendarSnapshot struct {
	TotalDays        int     `json:"total_days"`
	AvailableDays    int     `json:"available_days"`
	BookedDays       int     `json:"booked_days"`
	AvailabilityRate float64 `json:"availability_rate"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	UniqueListings   int     `json:"unique_listings"`
}

// OptimalPricingReport partitions the (filtered) market into quartile bands.
type OptimalPricingReport struct {
	Neighbourhood string      `json:"neighbourhood"`
	RoomType      string      `json:"room_type"`
	Listings      int         `json:"listings"`
	AvgPrice      float64     `json:"avg_price"`
	MedianPrice   float64     `json:"median_price"`
	MinPrice      float64     `json:"min_price"`
	MaxPrice      float64     `json:"max_price"`
	Bands         []PriceBand `json:"bands"` // Budget, Competitive, Premium, Luxury
	// Sample standard deviation. The public label stays "price_variance"
	// to keep dashboard numbers byte-compatible with the historical output.
	PriceStdDev float64 `json:"price_variance"`
}

type PriceBand struct {
	Name string  `json:"name"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type AmenityReport struct {
	TopAmenities []AmenityCount  `json:"top_amenities"`
	Impact       []AmenityImpact `json:"impact"` // sorted by DiffPct desc
}

type AmenityCount struct {
	Name     string `json:"name"`
	Listings int    `json:"listings"`
}

type AmenityImpact struct {
	Amenity      string  `json:"amenity"`
	WithAvg      float64 `json:"with_avg_price"`
	WithoutAvg   float64 `json:"without_avg_price"`
	Diff         float64 `json:"price_difference"`
	DiffPct      float64 `json:"price_difference_pct"`
	ListingsWith int     `json:"listings_with"`
}

type ReviewPatternReport struct {
	TotalReviews   int            `json:"total_reviews"`
	ByWeekday      []WeekdayCount `json:"by_weekday"` // always 7, Monday first
	AvgPerDay      float64        `json:"avg_reviews_per_day"`
	WeekendReviews int            `json:"weekend_reviews"`
	WeekdayReviews int            `json:"weekday_reviews"`
	WeekendPct     float64        `json:"weekend_pct"`
	WeekdayPct     float64        `json:"weekday_pct"`
}

type ReviewFieldStats struct {
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	Std           float64 `json:"std"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	TotalListings int     `json:"total_listings"`
	ZeroCount     int     `json:"zero_reviews"`
	ZeroPct       float64 `json:"zero_reviews_pct"`
}

type EnhancedReviewReport struct {
	Pattern         ReviewPatternReport           `json:"pattern"`
	FieldStats      map[string]ReviewFieldStats   `json:"field_stats,omitempty"`
	Distributions   map[string][]BucketCount      `json:"distributions,omitempty"`
	Correlations    map[string]map[string]float64 `json:"correlations,omitempty"`
	ByRoomType      map[string][]GroupStats       `json:"by_room_type,omitempty"`
	ByNeighbourhood map[string][]GroupStats       `json:"by_neighbourhood,omitempty"` // top 10 by listing volume
}

// CalendarEvent is one presentation-ready single-day event.
type CalendarEvent struct {
	Title      string     `json:"title"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Color      string     `json:"color"`
	ResourceID string     `json:"resourceId"`
	Props      EventProps `json:"extendedProps"`
}

type EventProps struct {
	Available     bool     `json:"available"`
	Price         *float64 `json:"price"`
	MinimumNights *int     `json:"minimum_nights"`
	MaximumNights *int     `json:"maximum_nights"`
}

// Reports over uploaded booking exports.

type BookingPatternReport struct {
	TotalBookings int            `json:"total_bookings"`
	UniqueDates   int            `json:"unique_dates"`
	ByMonth       []MonthCount   `json:"by_month"`
	ByWeekday     []WeekdayCount `json:"by_weekday"`
}

type RevenueReport struct {
	TotalRevenue  float64      `json:"total_revenue"`
	AvgPerBooking float64      `json:"avg_revenue_per_booking"`
	ByMonth       []MonthValue `json:"by_month"`
}

type PricingTrendReport struct {
	AvgPrice    float64      `json:"avg_price"`
	MedianPrice float64      `json:"median_price"`
	Trend       []MonthValue `json:"trend"`
}
