package middleware

import (
	"encoding/json"
	"net/http"
	"net/netip"

	"github.com/bnema/zerowrap"

	"github.com/bnema/ocicomp/internal/adapters/dto"
	"github.com/bnema/ocicomp/internal/boundaries/out"
)

// RateLimit rejects requests with 429 once the global or per-client budget
// is spent. A nil limiter disables that check.
func RateLimit(global, perIP out.RateLimiter, trusted []netip.Prefix, log zerowrap.Logger) func(http.Handler) http.Handler {
	if global == nil && perIP == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if global != nil && !global.Allow(ctx, "global") {
				tooManyRequests(w, r, "global", log)
				return
			}

			if perIP != nil {
				ip := GetClientIP(r, trusted)
				if !perIP.Allow(ctx, "ip:"+ip) {
					tooManyRequests(w, r, "ip", log)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, scope string, log zerowrap.Logger) {
	log.Warn().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "http").
		Str(zerowrap.FieldMethod, r.Method).
		Str(zerowrap.FieldPath, r.URL.Path).
		Str("scope", scope).
		Msg("rate limit exceeded")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: "rate limit exceeded",
		Kind:  "RateLimited",
	})
}
