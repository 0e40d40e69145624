package loader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toniju98/AirBnbAnalyzer/internal/analytics"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// Fixed city extract filenames, resolved against the data directory.
// The .gz fallback mirrors how the extracts are usually distributed.
const (
	listingsFile = "listings.csv"
	calendarFile = "calendar.csv.gz"
	reviewsFile  = "reviews.csv"
)

const defaultSampleRows = 10000

// Source loads the city extracts from a directory, memoizing parsed
// results in an injected FileCache for the life of the process.
type Source struct {
	dir        string
	sampleRows int
	cache      *FileCache
}

func New(dir string, sampleRows int, cache *FileCache) *Source {
	if sampleRows <= 0 {
		sampleRows = defaultSampleRows
	}
	if cache == nil {
		cache = NewFileCache()
	}
	return &Source{dir: dir, sampleRows: sampleRows, cache: cache}
}

// CityData loads listings (mandatory), a bounded calendar sample, and
// reviews. Absent calendar/reviews come back empty, not as errors.
func (s *Source) CityData(ctx context.Context) (domain.CityData, error) {
	listings, err := s.listings()
	if err != nil {
		return domain.CityData{}, err
	}
	out := domain.CityData{Listings: listings}

	full, err := s.calendar()
	if err != nil {
		log.Warn().Err(err).Msg("calendar extract unreadable, occupancy analyses disabled")
	} else {
		out.Calendar = full
		if len(full) > s.sampleRows {
			out.CalendarSample = full[:s.sampleRows]
		} else {
			out.CalendarSample = full
		}
	}

	reviews, err := s.reviews()
	if err != nil {
		log.Warn().Err(err).Msg("reviews extract unreadable, review analyses disabled")
	} else {
		out.Reviews = reviews
	}
	return out, nil
}

func (s *Source) FullCalendar(ctx context.Context) ([]domain.CalendarEntry, error) {
	return s.calendar()
}

// Fingerprint hashes the identities of the three input files; identical
// inputs always produce the same fingerprint.
func (s *Source) Fingerprint(ctx context.Context) (string, error) {
	parts := []string{
		fileKey(s.path(listingsFile)),
		fileKey(s.path(listingsFile) + ".gz"),
		fileKey(s.path(calendarFile)),
		fileKey(s.path(reviewsFile)),
		fileKey(s.path(reviewsFile) + ".gz"),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(sum[:]), nil
}

func (s *Source) path(name string) string { return filepath.Join(s.dir, name) }

// existing returns the first of path, path.gz that exists.
func (s *Source) existing(name string) (string, bool) {
	p := s.path(name)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	if _, err := os.Stat(p + ".gz"); err == nil {
		return p + ".gz", true
	}
	return "", false
}

func (s *Source) listings() ([]domain.Listing, error) {
	path, ok := s.existing(listingsFile)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoListings, s.path(listingsFile))
	}
	v, err := s.cache.load(path, func(rows [][]string) (any, error) {
		return parseListings(rows), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoListings, err)
	}
	return v.([]domain.Listing), nil
}

func (s *Source) calendar() ([]domain.CalendarEntry, error) {
	path := s.path(calendarFile)
	if _, err := os.Stat(path); err != nil {
		return nil, nil // optional extract
	}
	v, err := s.cache.load(path, func(rows [][]string) (any, error) {
		return parseCalendar(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CalendarEntry), nil
}

func (s *Source) reviews() ([]domain.Review, error) {
	path, ok := s.existing(reviewsFile)
	if !ok {
		return nil, nil // optional extract
	}
	v, err := s.cache.load(path, func(rows [][]string) (any, error) {
		return parseReviews(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Review), nil
}

/********** row parsing **********/

func parseListings(rows [][]string) []domain.Listing {
	if len(rows) < 2 {
		return nil
	}
	header := normalizeHeader(rows[0])
	col := func(field string) int { return headerIndex(header, listingAliases[field]) }

	idx := map[string]int{}
	for field := range listingAliases {
		idx[field] = col(field)
	}

	cell := func(row []string, field string) string {
		i := idx[field]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]domain.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id, err := strconv.ParseInt(strings.TrimSpace(cell(row, "id")), 10, 64)
		if err != nil {
			continue // a listing without an id is unusable
		}
		out = append(out, domain.Listing{
			ID:                 id,
			Name:               cell(row, "name"),
			Neighbourhood:      cell(row, "neighbourhood"),
			RoomType:           cell(row, "room_type"),
			Price:              analytics.CleanPrice(cell(row, "price")),
			Rating:             parseFloat(cell(row, "rating")),
			MinimumNights:      parseFloat(cell(row, "minimum_nights")),
			NumberOfReviews:    parseFloat(cell(row, "number_of_reviews")),
			ReviewsPerMonth:    parseFloat(cell(row, "reviews_per_month")),
			NumberOfReviewsLTM: parseFloat(cell(row, "number_of_reviews_ltm")),
			Availability365:    parseFloat(cell(row, "availability_365")),
			Latitude:           parseFloat(cell(row, "latitude")),
			Longitude:          parseFloat(cell(row, "longitude")),
			Amenities:          cell(row, "amenities"),
		})
	}
	return out
}

func parseCalendar(rows [][]string) []domain.CalendarEntry {
	if len(rows) < 2 {
		return nil
	}
	header := normalizeHeader(rows[0])
	iListing := headerIndex(header, []string{"listing_id"})
	iDate := headerIndex(header, []string{"date"})
	iAvail := headerIndex(header, []string{"available"})
	iPrice := headerIndex(header, []string{"price", "adjusted_price"})
	iMin := headerIndex(header, []string{"minimum_nights"})
	iMax := headerIndex(header, []string{"maximum_nights"})
	if iDate < 0 || iAvail < 0 {
		return nil
	}

	get := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]domain.CalendarEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		d, ok := parseDate(get(row, iDate))
		if !ok {
			continue
		}
		id, _ := strconv.ParseInt(strings.TrimSpace(get(row, iListing)), 10, 64)
		out = append(out, domain.CalendarEntry{
			ListingID:     id,
			Date:          d,
			Available:     parseAvailable(get(row, iAvail)),
			Price:         analytics.CleanPrice(get(row, iPrice)),
			MinimumNights: parseInt(get(row, iMin)),
			MaximumNights: parseInt(get(row, iMax)),
		})
	}
	return out
}

func parseReviews(rows [][]string) []domain.Review {
	if len(rows) < 2 {
		return nil
	}
	header := normalizeHeader(rows[0])
	iListing := headerIndex(header, []string{"listing_id"})
	iDate := headerIndex(header, []string{"date"})
	if iDate < 0 {
		return nil
	}

	out := make([]domain.Review, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if iDate >= len(row) {
			continue
		}
		d, ok := parseDate(row[iDate])
		if !ok {
			continue
		}
		var id int64
		if iListing >= 0 && iListing < len(row) {
			id, _ = strconv.ParseInt(strings.TrimSpace(row[iListing]), 10, 64)
		}
		out = append(out, domain.Review{ListingID: id, Date: d})
	}
	return out
}

/********** scalar coercion **********/

func normalizeHeader(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = normalizeColumn(c)
	}
	return out
}

// availability tokens: t/true/1/yes mean open for booking, everything
// else counts as booked.
func parseAvailable(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true", "1", "yes":
		return true
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	if f := parseFloat(raw); f != nil {
		v := int(*f)
		return &v
	}
	return nil
}
