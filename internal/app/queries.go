package app

import (
	"context"
	"fmt"
	"time"

	"github.com/toniju98/AirBnbAnalyzer/internal/adapters/observability"
	"github.com/toniju98/AirBnbAnalyzer/internal/analytics"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// QueryService runs analyses over the city datasets with cache-aside
// result caching. Cache keys carry the dataset fingerprint so a changed
// input file never serves stale reports.
type QueryService struct {
	src      domain.DataSource
	cache    domain.Cache
	uploads  domain.UploadStore
	cacheTTL time.Duration
}

func NewQueryService(src domain.DataSource, cache domain.Cache, uploads domain.UploadStore, ttl time.Duration) *QueryService {
	return &QueryService{src: src, cache: cache, uploads: uploads, cacheTTL: ttl}
}

func (s *QueryService) key(ctx context.Context, analysis string, params ...any) string {
	fp, err := s.src.Fingerprint(ctx)
	if err != nil {
		fp = "unknown"
	}
	k := fmt.Sprintf("%s:%s", analysis, fp)
	for _, p := range params {
		k = fmt.Sprintf("%s:%v", k, p)
	}
	return k
}

// run wraps one analysis execution with timing metrics.
func run[T any](name string, f func() *T) *T {
	start := time.Now()
	out := f()
	observability.ObserveAnalysis(name, time.Since(start))
	return out
}

func (s *QueryService) Market(ctx context.Context) (*domain.MarketReport, error) {
	key := s.key(ctx, "market")
	var cached domain.MarketReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("market", func() *domain.MarketReport {
		return analytics.AnalyzeMarket(data.Listings, data.CalendarSample)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

func (s *QueryService) Occupancy(ctx context.Context) (*domain.OccupancyReport, error) {
	key := s.key(ctx, "occupancy")
	var cached domain.OccupancyReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	cal, err := s.src.FullCalendar(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("occupancy", func() *domain.OccupancyReport {
		return analytics.AnalyzeOccupancy(cal, data.Listings)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

func (s *QueryService) ReviewPatterns(ctx context.Context) (*domain.ReviewPatternReport, error) {
	key := s.key(ctx, "review_patterns")
	var cached domain.ReviewPatternReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("review_patterns", func() *domain.ReviewPatternReport {
		return analytics.AnalyzeReviewPatterns(data.Reviews)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

func (s *QueryService) ReviewInsights(ctx context.Context) (*domain.EnhancedReviewReport, error) {
	key := s.key(ctx, "review_insights")
	var cached domain.EnhancedReviewReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("review_insights", func() *domain.EnhancedReviewReport {
		return analytics.AnalyzeReviewInsights(data.Reviews, data.Listings)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

func (s *QueryService) OptimalPricing(ctx context.Context, neighbourhood, roomType string) (*domain.OptimalPricingReport, error) {
	key := s.key(ctx, "optimal_pricing", neighbourhood, roomType)
	var cached domain.OptimalPricingReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("optimal_pricing", func() *domain.OptimalPricingReport {
		return analytics.OptimalPricing(data.Listings, neighbourhood, roomType)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

func (s *QueryService) Amenities(ctx context.Context) (*domain.AmenityReport, error) {
	key := s.key(ctx, "amenities")
	var cached domain.AmenityReport
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	data, err := s.src.CityData(ctx)
	if err != nil {
		return nil, err
	}
	rep := run("amenities", func() *domain.AmenityReport {
		return analytics.AnalyzeAmenities(data.Listings)
	})
	put(s, ctx, key, rep)
	return rep, nil
}

// CalendarEvents is computed on demand; the result is already bounded
// by the event cap, so it skips the result cache.
func (s *QueryService) CalendarEvents(ctx context.Context, listingID *int64, maxEvents int) ([]domain.CalendarEvent, error) {
	cal, err := s.src.FullCalendar(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	events := analytics.CalendarEvents(cal, listingID, maxEvents)
	observability.ObserveAnalysis("calendar_events", time.Since(start))
	return events, nil
}

// Uploaded-dataset analyses. Data already sits in memory, so no result
// caching is involved.

func (s *QueryService) UploadBookings(ctx context.Context, id string) (*domain.BookingPatternReport, error) {
	ds, ok := s.uploads.Get(id)
	if !ok {
		return nil, domain.ErrNoDataset
	}
	return run("upload_bookings", func() *domain.BookingPatternReport {
		return analytics.AnalyzeBookings(ds)
	}), nil
}

func (s *QueryService) UploadRevenue(ctx context.Context, id string) (*domain.RevenueReport, error) {
	ds, ok := s.uploads.Get(id)
	if !ok {
		return nil, domain.ErrNoDataset
	}
	return run("upload_revenue", func() *domain.RevenueReport {
		return analytics.AnalyzeRevenue(ds)
	}), nil
}

func (s *QueryService) UploadPricing(ctx context.Context, id string) (*domain.PricingTrendReport, error) {
	ds, ok := s.uploads.Get(id)
	if !ok {
		return nil, domain.ErrNoDataset
	}
	return run("upload_pricing", func() *domain.PricingTrendReport {
		return analytics.AnalyzePricingTrend(ds)
	}), nil
}

// put stores a non-nil report; "no data" outcomes are cheap to
// recompute and stay uncached.
func put[T any](s *QueryService, ctx context.Context, key string, rep *T) {
	if rep == nil {
		return
	}
	_ = s.cache.Set(ctx, key, rep, int(s.cacheTTL.Seconds()))
}
