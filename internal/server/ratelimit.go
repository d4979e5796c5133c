package server

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit wraps next with a token-bucket limiter. Spec §5 delegates
// admission control to the framing layer ("the facade does not queue
// requests internally"); this middleware is that layer's concrete
// mechanism rather than a purely notional requirement.
func RateLimit(next http.Handler, ratePerSecond float64, burst int) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, envelope{Status: "error", Message: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
