package middleware

import (
	"log"
	"net"
	"net/http"

	"folioassist/internal/store"
	"folioassist/pkg/utils"
)

// RateLimit rejects callers that exceed their fixed window. Keys are
// client IPs; chi's RealIP middleware runs earlier in the stack so
// RemoteAddr already reflects proxy headers.
func RateLimit(limiter store.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				// Fail open: a broken cache must not take chat down.
				log.Printf("[ratelimit] check failed for %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Printf("[ratelimit] rejected %s on %s", key, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				utils.RespondError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
