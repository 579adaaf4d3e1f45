package monitoring_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wkstats/internal/monitoring"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := monitoring.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/levels/{level}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/levels/12", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/api/levels/{level}", "418"))
	assert.Equal(t, 1.0, got)
}

func TestObserveUpstreamAndCache(t *testing.T) {
	m := monitoring.New()
	m.ObserveUpstream("assignments", "ok", 120*time.Millisecond)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCounter.WithLabelValues("assignments", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *monitoring.Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("user", "ok", time.Millisecond)
		m.ObserveCache(true)
		m.ObservePrefetchDropped()
	})
}

func TestHandler_ServesTextFormat(t *testing.T) {
	m := monitoring.New()
	m.ObservePrefetchDropped()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prefetch_jobs_dropped_total 1")
}
