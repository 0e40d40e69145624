package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/toniju98/AirBnbAnalyzer/internal/adapters/observability"
	"github.com/toniju98/AirBnbAnalyzer/internal/analytics"
	"github.com/toniju98/AirBnbAnalyzer/internal/loader"
	"github.com/toniju98/AirBnbAnalyzer/internal/shared"
)

// report runs every city analysis once and logs one summary line per
// analysis. Useful as a smoke check over a freshly downloaded extract.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Str("data_dir", cfg.DataDir).Int("workers", cfg.Workers).Msg("report starting")

	src := loader.New(cfg.DataDir, cfg.CalendarSampleRows, loader.NewFileCache())
	data, err := src.CityData(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading city data failed")
	}
	cal, err := src.FullCalendar(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("calendar unavailable")
	}

	jobs := []struct {
		name string
		run  func()
	}{
		{"market", func() {
			if rep := analytics.AnalyzeMarket(data.Listings, data.CalendarSample); rep != nil {
				log.Info().Int("listings", rep.TotalListings).Int("neighbourhoods", rep.Neighbourhoods).Msg("market")
			}
		}},
		{"occupancy", func() {
			if rep := analytics.AnalyzeOccupancy(cal, data.Listings); rep != nil {
				log.Info().Float64("occupancy_rate", rep.OccupancyRate).Str("peak_day", rep.PeakDay).Msg("occupancy")
			}
		}},
		{"review_patterns", func() {
			if rep := analytics.AnalyzeReviewPatterns(data.Reviews); rep != nil {
				log.Info().Int("reviews", rep.TotalReviews).Float64("weekend_pct", rep.WeekendPct).Msg("review patterns")
			}
		}},
		{"review_insights", func() {
			if rep := analytics.AnalyzeReviewInsights(data.Reviews, data.Listings); rep != nil {
				log.Info().Int("fields", len(rep.FieldStats)).Msg("review insights")
			}
		}},
		{"optimal_pricing", func() {
			if rep := analytics.OptimalPricing(data.Listings, "", ""); rep != nil {
				log.Info().Float64("median_price", rep.MedianPrice).Int("listings", rep.Listings).Msg("optimal pricing")
			}
		}},
		{"amenities", func() {
			if rep := analytics.AnalyzeAmenities(data.Listings); rep != nil {
				log.Info().Int("amenities", len(rep.TopAmenities)).Msg("amenities")
			}
		}},
		{"calendar_events", func() {
			events := analytics.CalendarEvents(cal, nil, cfg.MaxEvents)
			log.Info().Int("events", len(events)).Msg("calendar events")
		}},
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, j := range jobs {
		j := j

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			j.run()
		}()
	}

	wg.Wait()
	log.Info().Msg("report completed")
}
