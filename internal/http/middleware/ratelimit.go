package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// BookingRateLimit caps booking submissions per client IP per minute.
// A non-positive limit disables limiting.
func BookingRateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(perMinute, time.Minute)
}
