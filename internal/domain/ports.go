package domain

import (
	"context"
	"errors"
)

var (
	// ErrNoListings means the primary listings extract is absent or
	// unreadable. Listings-dependent analyses cannot run without it.
	ErrNoListings = errors.New("listings dataset unavailable")

	// ErrNoDataset means an uploaded dataset id is unknown.
	ErrNoDataset = errors.New("uploaded dataset not found")
)

// DataSource loads the city extracts. Implementations own file discovery
// and caching; callers receive immutable snapshots.
type DataSource interface {
	CityData(ctx context.Context) (CityData, error)
	// FullCalendar returns the complete calendar extract (the CityData
	// calendar may be a bounded sample). Empty slice when absent.
	FullCalendar(ctx context.Context) ([]CalendarEntry, error)
	// Fingerprint identifies the current input files; same inputs,
	// same fingerprint. Used as a cache-key component.
	Fingerprint(ctx context.Context) (string, error)
}

// Cache is a shared result cache (Redis in production).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// UploadStore keeps uploaded booking datasets for the life of the process.
type UploadStore interface {
	Put(ds BookingDataset)
	Get(id string) (BookingDataset, bool)
}
