package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StaticBearer returns an Echo middleware that guards CRM endpoints with a
// single pre-shared bearer token.  The two failure modes are deliberately
// distinct: a request with no Authorization header at all is answered with
// 401 (the caller never attempted to authenticate), while a malformed
// scheme or a wrong token is answered with 403 (the caller authenticated
// and was refused).
func StaticBearer(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization header missing"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid authorization header format"})
			}
			if parts[1] != token {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}
			return next(c)
		}
	}
}
