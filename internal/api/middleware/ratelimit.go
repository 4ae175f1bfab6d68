package middleware

import (
	"net/http"

	"github.com/mcoot/leelawheel/internal/api/apierr"
	"github.com/mcoot/leelawheel/internal/middleware"
)

// RateLimit creates per-client rate limiting middleware with JSON errors
func RateLimit(limiter *middleware.RateLimiter) func(http.Handler) http.Handler {
	return limiter.Middleware(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewRateLimitedError())
	})
}
