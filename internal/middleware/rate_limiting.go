package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/gymbot/internal/telemetry/metrics"
	"github.com/2beens/gymbot/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

const rateLimitKeyPrefix = "gymbot:http:"

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type RateLimitParams struct {
	// Name scopes the limit, one bucket per name and client address
	Name           string
	PerMinute      int
	MetricsManager *metrics.Manager
}

// RateLimit throttles each client address separately. A limiter failure lets
// the request through: redis being down should not take the read API with it.
func RateLimit(rateLimiter RequestRateLimiter, params RateLimitParams) func(next http.Handler) http.Handler {
	limit := redis_rate.PerMinute(params.PerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP, err := pkg.ReadUserIP(r)
			if err != nil {
				clientIP = "unknown"
			}

			res, err := rateLimiter.Allow(r.Context(), rateLimitKey(params.Name, clientIP), limit)
			if err != nil {
				log.Warnf("rate limit [%s] for %s: %s", params.Name, clientIP, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if params.MetricsManager != nil {
				params.MetricsManager.CounterRateLimitedRequests.Inc()
			}
			retryAfter := int(res.RetryAfter.Seconds() + 0.5)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, fmt.Sprintf("retry after %d seconds", retryAfter), http.StatusTooManyRequests)
		})
	}
}

func rateLimitKey(name, clientIP string) string {
	return rateLimitKeyPrefix + name + ":" + clientIP
}
