package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haguru/folio/internal/metrics"
	"github.com/haguru/folio/pkg/dto"
	pkgmetrics "github.com/haguru/folio/pkg/metrics"
	"github.com/haguru/folio/pkg/zerolog"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return mux
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(rate.NewLimiter(rate.Limit(1), 1))(newMux())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))

	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	var body dto.ErrorResponseDTO
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, RateLimitMessage, body.Message)
	assert.Equal(t, "rate limit exceeded", body.Error)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(zerolog.NewZerologLoggerWithWriter("test", &buf))(newMux())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "Request served")
	assert.Contains(t, buf.String(), "GET /ok")

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), "Request failed")

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "Request rejected")
	assert.Contains(t, buf.String(), "unmatched")
}

func TestRequestMetrics(t *testing.T) {
	m := pkgmetrics.NewMetrics("test")
	metrics.Register(m)
	handler := RequestMetrics(m)(newMux())

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	expected := `
# HELP test_http_requests_total Total number of HTTP requests by route and status code
# TYPE test_http_requests_total counter
test_http_requests_total{code="200",route="GET /ok"} 2
test_http_requests_total{code="500",route="GET /boom"} 1
`
	err := testutil.GatherAndCompare(m.GetRegistry(), strings.NewReader(expected), "test_http_requests_total")
	assert.NoError(t, err)
}
