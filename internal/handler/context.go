package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user id stored by the JWT
// middleware.  JSON numbers arrive as float64 through jwt.MapClaims, so
// both encodings are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int64:
		return uint64(v), nil
	default:
		return 0, errNoUser
	}
}
