package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// bodyCapture tees the response body so a successful payload can be stored
// in Redis after the handler runs.
type bodyCapture struct {
	io.Writer
	http.ResponseWriter
	status int
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// CacheGET caches successful GET responses in Redis for the given TTL,
// keyed by request path and query string.  Only 200 responses are stored.
// A nil Redis client turns the middleware into a pass-through.  Event and
// facilitator listings are read-heavy and change rarely, which makes a
// short TTL cache worthwhile; booking endpoints are never cached.
func CacheGET(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "cache:" + c.Request().URL.RequestURI()

			if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, cached)
			}

			// Miss: run the handler with a teed writer, then store on 200.
			var buf bytes.Buffer
			res := c.Response()
			bw := &bodyCapture{Writer: io.MultiWriter(&buf, res.Writer), ResponseWriter: res.Writer, status: http.StatusOK}
			res.Writer = bw
			res.Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if bw.status == http.StatusOK && buf.Len() > 0 {
				rdb.Set(ctx, key, buf.Bytes(), ttl)
			}
			return nil
		}
	}
}
