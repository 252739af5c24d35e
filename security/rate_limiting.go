package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window request cap per client, backed by Redis
// so the cap holds across instances.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 120
	}
	return &RateLimiter{
		redis:  redisClient,
		limit:  perMinute,
		window: time.Minute,
	}
}

// Limit is a route-group middleware. Authenticated clients are counted per
// user, everyone else per IP. Redis being down fails open.
func (r *RateLimiter) Limit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		allowed, err := r.allow(e.Request.Context(), r.identify(e))
		if err != nil {
			slog.Warn("rate limit check failed", "error", err)
			return e.Next()
		}
		if !allowed {
			return e.JSON(http.StatusTooManyRequests, map[string]any{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
			})
		}

		return e.Next()
	}
}

func (r *RateLimiter) allow(ctx context.Context, client string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", client)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}
	return count <= int64(r.limit), nil
}

func (r *RateLimiter) identify(e *core.RequestEvent) string {
	if auth := e.Request.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
			// Token, not user ID: the limiter runs before auth resolves.
			return "token:" + token[:min(16, len(token))]
		}
	}
	return "ip:" + e.RealIP()
}
