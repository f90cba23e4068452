package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/shareit/internal/config"
)

// NewRateLimiter builds a fixed-window request limiter backed by Redis.
// Requests are counted per caller (identity header when present, client
// IP otherwise) inside the configured window via INCR; the first hit of
// a window sets the key's expiry.  When the limiter is disabled, Redis
// is unavailable or the INCR fails, requests pass through unthrottled.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := c.Request().Header.Get(UserHeader)
			if caller == "" {
				caller = c.RealIP()
			}
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, caller, window)

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}
			if n > int64(cfg.Limit) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":   "Too many requests",
					"message": "rate limit exceeded, retry later",
				})
			}
			return next(c)
		}
	}
}
