package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a fixed-window per-client limiter backed by Redis.
// Each client gets `limit` requests per `window`, keyed by user id when
// authenticated and by remote IP otherwise.  A nil Redis client disables
// limiting entirely so the service degrades instead of failing closed.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}

			ident := c.RealIP()
			if uid := c.Get("user_id"); uid != nil {
				ident = fmt.Sprintf("u:%v", uid)
			}
			key := fmt.Sprintf("ratelimit:%s:%d", ident, time.Now().Unix()/int64(window.Seconds()))

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis trouble must not take the API down.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, window)
			}
			if n > int64(limit) {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
