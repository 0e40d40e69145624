package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/toniju98/AirBnbAnalyzer/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveAnalysis("occupancy", 3*time.Millisecond)
	observability.ObserveLoad("/data/listings.csv", "miss")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "advisor_http_requests_total") {
		t.Fatalf("expected advisor_http_requests_total in output")
	}
	if !strings.Contains(out, "advisor_analysis_runs_total") {
		t.Fatalf("expected advisor_analysis_runs_total in output")
	}
	if !strings.Contains(out, `file="listings.csv"`) {
		t.Fatalf("expected base-filename label in output")
	}
}
