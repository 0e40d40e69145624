package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "github.com/toniju98/AirBnbAnalyzer/internal/adapters/http_server"
	"github.com/toniju98/AirBnbAnalyzer/internal/adapters/observability"
	redisad "github.com/toniju98/AirBnbAnalyzer/internal/adapters/redis"
	"github.com/toniju98/AirBnbAnalyzer/internal/app"
	"github.com/toniju98/AirBnbAnalyzer/internal/loader"
	"github.com/toniju98/AirBnbAnalyzer/internal/shared"
	"github.com/toniju98/AirBnbAnalyzer/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	src := loader.New(cfg.DataDir, cfg.CalendarSampleRows, loader.NewFileCache())
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	store := memory.NewUploadStore()
	q := app.NewQueryService(src, cache, store, cfg.CacheTTL)
	u := app.NewUploadService(store, cfg.Workers)

	// http
	srv := server.New(float64(cfg.RateRPS))
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, U: u, MaxEvents: cfg.MaxEvents})

	log.Info().Str("addr", cfg.HTTPAddr).Str("data_dir", cfg.DataDir).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
