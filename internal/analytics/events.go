package analytics

import (
	"fmt"

	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

const (
	// DefaultMaxEvents caps market-wide event projections.
	DefaultMaxEvents = 1000
	// DefaultMaxEventsPerListing caps single-listing views.
	DefaultMaxEventsPerListing = 500

	colorAvailable = "#28a745"
	colorBooked    = "#dc3545"
)

// CalendarEvents projects calendar rows into single-day presentation
// events, optionally filtered to one listing and silently truncated at
// maxEvents. The input is never mutated.
func CalendarEvents(cal []domain.CalendarEntry, listingID *int64, maxEvents int) []domain.CalendarEvent {
	if len(cal) == 0 {
		return []domain.CalendarEvent{}
	}
	if maxEvents <= 0 {
		if listingID != nil {
			maxEvents = DefaultMaxEventsPerListing
		} else {
			maxEvents = DefaultMaxEvents
		}
	}

	events := make([]domain.CalendarEvent, 0, min(maxEvents, len(cal)))
	for _, e := range cal {
		if listingID != nil && e.ListingID != *listingID {
			continue
		}
		if len(events) >= maxEvents {
			break
		}

		price := "N/A"
		if e.Price != nil {
			price = fmt.Sprintf("%g", *e.Price)
		}
		state, color := "Booked", colorBooked
		if e.Available {
			state, color = "Available", colorAvailable
		}
		day := e.Date.Format("2006-01-02")
		events = append(events, domain.CalendarEvent{
			Title:      fmt.Sprintf("%s - $%s", state, price),
			Start:      day,
			End:        day,
			Color:      color,
			ResourceID: fmt.Sprintf("%d", e.ListingID),
			Props: domain.EventProps{
				Available:     e.Available,
				Price:         e.Price,
				MinimumNights: e.MinimumNights,
				MaximumNights: e.MaximumNights,
			},
		})
	}
	return events
}
