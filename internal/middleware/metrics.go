package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
)

// RequestMetrics counts requests by route and status and observes their duration.
func RequestMetrics(m interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := routeOf(r)
			m.IncCounterVec(metrics.HttpRequestsTotal, route, strconv.Itoa(rec.status))
			m.ObserveHistogramVec(metrics.HttpRequestDuration, time.Since(start).Seconds(), route)
		})
	}
}
