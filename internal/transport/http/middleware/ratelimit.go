package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"hrportal/internal/requestctx"
	"hrportal/internal/transport/http/api"
)

const rateLimitPrefix = "hrportal:ratelimit"

// NewRateLimitStore returns a redis backed store for "redis" and an
// in-process store otherwise.
func NewRateLimitStore(storage, redisURL string) (limiter.Store, error) {
	if !strings.EqualFold(storage, "redis") {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix, CleanUpInterval: time.Minute}), nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit redis url: %w", err)
	}
	return sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{Prefix: rateLimitPrefix})
}

// RateLimit allows perMinute requests per authenticated user, or per client
// IP for anonymous callers. A non-positive limit disables it.
func RateLimit(perMinute int, store limiter.Store) func(http.Handler) http.Handler {
	if perMinute <= 0 || store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	instance := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: int64(perMinute)})
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(actorOrIPKey),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded", "key", actorOrIPKey(r), "method", r.Method, "path", r.URL.Path, "limit", perMinute)
			api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("rate limit store failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "rate_limit_error", "rate limit check failed", GetRequestID(r.Context()))
		}),
	)
	return mw.Handler
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return "ip:" + requestctx.ClientIPFrom(r)
}
