package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "github.com/toniju98/AirBnbAnalyzer/internal/adapters/http_server"
	"github.com/toniju98/AirBnbAnalyzer/internal/app"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

type fakeSource struct {
	data     domain.CityData
	calendar []domain.CalendarEntry
}

func (f *fakeSource) CityData(ctx context.Context) (domain.CityData, error) { return f.data, nil }
func (f *fakeSource) FullCalendar(ctx context.Context) ([]domain.CalendarEntry, error) {
	return f.calendar, nil
}
func (f *fakeSource) Fingerprint(ctx context.Context) (string, error) { return "fp", nil }

type noCache struct{}

func (noCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (noCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (noCache) Del(ctx context.Context, key string) error { return nil }

type memStore struct {
	sets map[string]domain.BookingDataset
}

func (s *memStore) Put(ds domain.BookingDataset) {
	if s.sets == nil {
		s.sets = map[string]domain.BookingDataset{}
	}
	s.sets[ds.ID] = ds
}
func (s *memStore) Get(id string) (domain.BookingDataset, bool) {
	ds, ok := s.sets[id]
	return ds, ok
}

func newTestServer(src *fakeSource) (*httptest.Server, *memStore) {
	store := &memStore{}
	q := app.NewQueryService(src, noCache{}, store, time.Minute)
	u := app.NewUploadService(store, 2)
	srv := httpserver.New(0)
	srv.MountHandlers(&httpserver.Handlers{Q: q, U: u, MaxEvents: 1000})
	return httptest.NewServer(srv.Mux()), store
}

func cityFixture() *fakeSource {
	p1, p2 := 50.0, 150.0
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	return &fakeSource{
		data: domain.CityData{
			Listings: []domain.Listing{
				{ID: 1, Neighbourhood: "Centro", RoomType: "Private room", Price: &p1},
				{ID: 2, Neighbourhood: "Norte", RoomType: "Entire home/apt", Price: &p2},
			},
		},
		calendar: []domain.CalendarEntry{
			{ListingID: 1, Date: day, Available: true, Price: &p1},
			{ListingID: 2, Date: day, Available: false},
		},
	}
}

func TestMarketEndpoint_OKAndNotModified(t *testing.T) {
	ts, _ := newTestServer(cityFixture())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/market")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	var rep domain.MarketReport
	if err := json.NewDecoder(res.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.TotalListings != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/market", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestReviewPatterns_NoData(t *testing.T) {
	src := cityFixture()
	src.data.Reviews = nil
	ts, _ := newTestServer(src)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/reviews/patterns")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem+json, got %s", ct)
	}
}

func TestOptimalPricing_QueryFilters(t *testing.T) {
	ts, _ := newTestServer(cityFixture())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/pricing/optimal?neighbourhood=Centro")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
	var rep domain.OptimalPricingReport
	if err := json.NewDecoder(res.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Neighbourhood != "Centro" || rep.Listings != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestCalendarEvents_BadListingID(t *testing.T) {
	ts, _ := newTestServer(cityFixture())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/calendar/events?listing_id=abc")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestCalendarEvents_MaxCapsResponse(t *testing.T) {
	src := cityFixture()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	src.calendar = nil
	for i := 0; i < 10; i++ {
		src.calendar = append(src.calendar, domain.CalendarEntry{
			ListingID: 1, Date: day.AddDate(0, 0, i), Available: true,
		})
	}
	ts, _ := newTestServer(src)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/calendar/events?max=3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	var events []domain.CalendarEvent
	if err := json.NewDecoder(res.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestUploadFlow(t *testing.T) {
	ts, _ := newTestServer(cityFixture())
	defer ts.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "bookings.csv")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	_, _ = fw.Write([]byte("Booking Date,Price\n2024-01-05,$120\n2024-02-01,$80\n"))
	_ = mw.Close()

	res, err := http.Post(ts.URL+"/v1/uploads", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var up struct {
		ID   string `json:"id"`
		Rows int    `json:"rows"`
	}
	if err := json.NewDecoder(res.Body).Decode(&up); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if up.ID == "" || up.Rows != 2 {
		t.Fatalf("unexpected upload response: %+v", up)
	}

	res2, err := http.Get(ts.URL + "/v1/uploads/" + up.ID + "/bookings")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res2.StatusCode)
	}
	var rep domain.BookingPatternReport
	if err := json.NewDecoder(res2.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.TotalBookings != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestUploadAnalysis_UnknownID(t *testing.T) {
	ts, _ := newTestServer(cityFixture())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/uploads/nope/revenue")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	srv := httpserver.New(1)
	store := &memStore{}
	q := app.NewQueryService(cityFixture(), noCache{}, store, time.Minute)
	srv.MountHandlers(&httpserver.Handlers{Q: q, U: app.NewUploadService(store, 1), MaxEvents: 1000})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	limited := false
	for i := 0; i < 10; i++ {
		res, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		res.Body.Close()
		if res.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("expected a 429 after burst exhaustion")
	}
}
