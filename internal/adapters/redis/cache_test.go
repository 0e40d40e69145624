package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/toniju98/AirBnbAnalyzer/internal/adapters/redis"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)
	ctx := context.Background()

	var missed domain.RevenueReport
	ok, err := cache.Get(ctx, "revenue:abc", &missed)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	in := domain.RevenueReport{TotalRevenue: 1200, AvgPerBooking: 300}
	if err := cache.Set(ctx, "revenue:abc", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.RevenueReport
	ok, err = cache.Get(ctx, "revenue:abc", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if out.TotalRevenue != 1200 || out.AvgPerBooking != 300 {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := cache.Del(ctx, "revenue:abc"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = cache.Get(ctx, "revenue:abc", &out)
	if ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCacheTTLExpires(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", 42, 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	srv.FastForward(2 * time.Second)

	var v int
	ok, _ := cache.Get(ctx, "k", &v)
	if ok {
		t.Fatalf("expected entry to expire")
	}
}
