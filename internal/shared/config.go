package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	MetricsAddr        string
	DataDir            string
	RedisAddr          string
	RedisDB            int
	RedisPass          string
	Workers            int
	CalendarSampleRows int
	MaxEvents          int
	RateRPS            int
	CacheTTL           time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        env("METRICS_ADDR", ":9100"),
		DataDir:            env("DATA_DIR", "."),
		RedisAddr:          env("REDIS_ADDR", "localhost:6379"),
		RedisPass:          env("REDIS_PASSWORD", ""),
		RedisDB:            atoi("REDIS_DB", 0),
		Workers:            atoi("UPLOAD_WORKERS", 4),
		CalendarSampleRows: atoi("CALENDAR_SAMPLE_ROWS", 10000),
		MaxEvents:          atoi("MAX_CALENDAR_EVENTS", 1000),
		RateRPS:            atoi("RATE_LIMIT_RPS", 20),
		CacheTTL:           time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.DataDir == "" {
		log.Warn().Msg("DATA_DIR is empty, using working directory")
		c.DataDir = "."
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
