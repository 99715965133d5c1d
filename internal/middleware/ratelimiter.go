package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/folio/internal/ratelimit"
	"github.com/haguru/folio/pkg/dto"

	"golang.org/x/time/rate"
)

const RateLimitMessage = "Too many requests. Please try again later."

// RateLimitMiddleware guards the whole server with one token bucket.
// Rejected requests get a 429 in the API error shape and a Retry-After
// hint in whole seconds.
func RateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			reservation := limiter.ReserveN(now, 1)
			if !reservation.OK() || reservation.DelayFrom(now) > 0 {
				wait := reservation.DelayFrom(now)
				reservation.CancelAt(now)
				writeTooManyRequests(w, wait)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter, wait time.Duration) {
	if wait > 0 && wait != rate.InfDuration {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponseDTO{
		Error:   ratelimit.ErrRateLimited.Error(),
		Message: RateLimitMessage,
	})
}
