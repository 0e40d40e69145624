package domain

import "time"

// Listing is one rental unit from the city listings extract.
// Optional columns stay nil rather than defaulting to zero so that
// aggregates can tell "missing" apart from a real 0.
type Listing struct {
	ID                 int64
	Name               string
	Neighbourhood      string
	RoomType           string
	Price              *float64 // nightly price, currency-cleaned
	Rating             *float64
	MinimumNights      *float64
	NumberOfReviews    *float64
	ReviewsPerMonth    *float64
	NumberOfReviewsLTM *float64
	Availability365    *float64 // days open in the next year, 0-365
	Latitude           *float64
	Longitude          *float64
	Amenities          string // raw free-text amenities list, may be empty
}

// CalendarEntry is one (listing, date) row from the calendar extract.
type CalendarEntry struct {
	ListingID     int64
	Date          time.Time
	Available     bool // true = open for booking, false = booked
	Price         *float64
	MinimumNights *int
	MaximumNights *int
}

// Review is one guest review event. Only the date matters to the engine.
type Review struct {
	ListingID int64
	Date      time.Time
}

// CityData bundles the three city extracts. Calendar and Reviews may be
// empty when the corresponding file is absent; Listings is mandatory.
type CityData struct {
	Listings       []Listing
	Calendar       []CalendarEntry
	CalendarSample []CalendarEntry // bounded sample for cheap snapshot stats
	Reviews        []Review
}

// BookingRecord is one row of a user-uploaded booking export after
// column classification: the first detected date-like and price-like
// values, either of which may be missing.
type BookingRecord struct {
	Date   *time.Time
	Amount *float64
}

// BookingDataset is the merged, deduplicated result of one upload batch.
type BookingDataset struct {
	ID           string
	Columns      []string
	DateColumns  []string
	PriceColumns []string
	Records      []BookingRecord
}
