package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("folio").(*Metrics)
	m.RegisterCounter("posts_created_total", "posts created")
	m.RegisterCounterVec("function_calls_total", "function calls", []string{"function", "outcome"})

	m.IncCounter("posts_created_total")
	m.AddCounter("posts_created_total", 2)
	m.IncCounter("unknown_total")
	m.IncCounterVec("function_calls_total", "get_posts", "ok")
	m.IncCounterVec("function_calls_total", "get_posts", "ok")
	m.IncCounterVec("function_calls_total", "missing_label")

	assert.Equal(t, float64(3), testutil.ToFloat64(m.counters["posts_created_total"]))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.counterVecs["function_calls_total"].WithLabelValues("get_posts", "ok")))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	m := NewMetrics("folio").(*Metrics)
	m.RegisterCounter("posts_created_total", "posts created")
	m.IncCounter("posts_created_total")

	assert.NotPanics(t, func() { m.RegisterCounter("posts_created_total", "posts created") })
	assert.Equal(t, float64(1), testutil.ToFloat64(m.counters["posts_created_total"]))
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics("folio").(*Metrics)
	m.RegisterGauge("start_time_seconds", "start time")
	m.SetCurrentTimeGauge("start_time_seconds")

	assert.Greater(t, testutil.ToFloat64(m.gauges["start_time_seconds"]), float64(0))
}

func TestMetrics_Histogram(t *testing.T) {
	m := NewMetrics("folio")
	m.RegisterHistogramVec("function_duration_seconds", "function duration", []float64{0.1, 1}, []string{"function"})
	m.ObserveHistogramVec("function_duration_seconds", 0.2, "create_post")

	count, err := testutil.GatherAndCount(m.GetRegistry(), "folio_function_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("folio")
	m.RegisterCounter("posts_created_total", "posts created")
	m.IncCounter("posts_created_total")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "folio_posts_created_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
