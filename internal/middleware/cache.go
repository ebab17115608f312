// Package middleware provides the Redis-backed response cache and the
// refresh rate limiter. Both degrade to pass-through middleware when no
// Redis client is available.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"country-currency-api/internal/config"
)

// cachedResponse is the stored form of a cacheable response. Every cached
// endpoint serves JSON, so status plus content type plus body is enough.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter tees the response body into a buffer, up to limit bytes,
// while forwarding it to the client unchanged.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.buf.Len() < cw.limit {
		remain := cw.limit - cw.buf.Len()
		if len(b) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	return cw.ResponseWriter.Write(b)
}

// cacheKey derives a stable key from route and raw query under the
// configured prefix.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// NewResponseCache caches successful GET responses for the configured TTL.
// Served hits carry an X-Cache: HIT header. Responses larger than
// MaxBodyBytes are passed through uncached.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet || isImagePath(c.Path()) {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					if cached.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					_, _ = c.Response().Write(cached.Body)
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.buf.Len() < cfg.MaxBodyBytes {
				cached := cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				}
				if payload, err := json.Marshal(cached); err == nil {
					// Detached context: the request may already be done.
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

// NewCacheInvalidator drops every cached response after a successful
// mutating request. Without it, a deleted country could still be served
// with X-Cache: HIT until its TTL expired.
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status < http.StatusBadRequest {
				// Detached context: the request may already be done.
				flushPrefix(context.Background(), rdb, cfg.Prefix)
			}
			return nil
		}
	}
}

// flushPrefix deletes every key under the prefix via SCAN rather than a
// blocking KEYS call. Errors are ignored; a failed flush only extends the
// staleness window to the TTL.
func flushPrefix(ctx context.Context, rdb *redis.Client, prefix string) {
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+":*", 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = rdb.Del(ctx, keys...).Err()
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

// isImagePath reports whether the route serves raw image bytes; those are
// left to the filesystem rather than Redis.
func isImagePath(path string) bool {
	return strings.HasSuffix(path, "/image")
}
