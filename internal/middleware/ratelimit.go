package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"country-currency-api/internal/config"
)

// NewRefreshLimiter returns a fixed-window rate limiter keyed by client IP.
// The first request of a window creates the counter with an expiry; once
// the counter exceeds the limit the request is rejected with 429 and a
// Retry-After hint taken from the key's remaining TTL. Redis errors fail
// open: a broken limiter must not take the endpoint down with it.
func NewRefreshLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.Path(), c.RealIP())

			pipe := rdb.TxPipeline()
			count := pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, cfg.Window)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}

			if count.Val() > int64(cfg.Limit) {
				retry := cfg.Window
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = ttl
				}
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retry/time.Second)+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many refresh requests, try again later",
				})
			}
			return next(c)
		}
	}
}
