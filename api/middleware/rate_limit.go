package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/OmerAlfiel/Shahen-website/api/responses"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/redis"
)

// RateLimitStore counts hits per scope in a fixed window.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (redis.Window, error)
}

// RateLimitPolicy is a per-IP fixed window.
type RateLimitPolicy struct {
	Window time.Duration
	Max    int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Max > 0
}

// RateLimit throttles each client IP to policy.Max requests per window.
// Without a store it passes everything through. Store failures are logged
// and the request is let through.
func RateLimit(policy RateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := ClientIP(r)

			win, err := store.FixedWindowAllow(ctx, "ip:"+ip, int64(policy.Max), policy.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate_limit.store_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(int64(policy.Max)-win.Count, 0)
			w.Header().Set("RateLimit-Limit", strconv.Itoa(policy.Max))
			w.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("RateLimit-Reset", strconv.Itoa(int(win.ResetIn.Seconds())))

			if !win.Allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       win.Count,
						"limit":          policy.Max,
						"window_seconds": int(policy.Window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(win.ResetIn.Seconds())))
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, ""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
