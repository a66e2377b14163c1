package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// CorrelationIDHeader is the inbound/outbound header carrying the id.
	CorrelationIDHeader = "X-Correlation-ID"
	// CorrelationIDKey is the context key handlers read it back from.
	CorrelationIDKey = "correlation_id"
)

// CorrelationID extracts the correlation id from the request header or
// generates a fresh one, stores it in the context and echoes it back in
// the response.  The id travels into published broker events so a booking
// can be traced across services.
func CorrelationID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(CorrelationIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			c.Set(CorrelationIDKey, id)
			c.Response().Header().Set(CorrelationIDHeader, id)
			return next(c)
		}
	}
}

// GetCorrelationID retrieves the correlation id stored by CorrelationID.
// It returns an empty string when the middleware did not run.
func GetCorrelationID(c echo.Context) string {
	if v, ok := c.Get(CorrelationIDKey).(string); ok {
		return v
	}
	return ""
}
