package middleware

import (
	"net/http"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/pkg/helper"
)

// RequestLogger logs one line per request. Server errors are logged at Error.
func RequestLogger(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			keyvals := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"route", routeOf(r),
				"status", rec.status,
				"remote", helper.RemoteIP(r),
				"duration", time.Since(start),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("Request failed", keyvals...)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("Request rejected", keyvals...)
			default:
				logger.Info("Request served", keyvals...)
			}
		})
	}
}
