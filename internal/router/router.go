// Package router wires the booking API's routes, handlers and middleware.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wellness-booking-platform/internal/handler"
	"github.com/iliyamo/wellness-booking-platform/internal/middleware"
)

// Deps carries everything the booking routes need.  Rdb may be nil; the
// cache and rate-limit middleware then become pass-throughs.
type Deps struct {
	Auth      *handler.AuthHandler
	Events    *handler.EventHandler
	Bookings  *handler.BookingHandler
	Health    *handler.HealthHandler
	JWTSecret string
	Rdb       *redis.Client
	CacheTTL  time.Duration
	RateLimit int
	RateWin   time.Duration
}

// Register attaches all booking API routes to the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.CorrelationID())

	e.GET("/healthz", d.Health.Healthz)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)

	protected := v1.Group("", middleware.JWTAuth(d.JWTSecret),
		middleware.RateLimit(d.Rdb, d.RateLimit, d.RateWin))

	protected.GET("/auth/me", d.Auth.Me)

	// The event catalogue is read-heavy; cache it briefly.
	events := protected.Group("/events", middleware.CacheGET(d.Rdb, d.CacheTTL))
	events.GET("", d.Events.ListEvents)
	events.GET("/:id", d.Events.GetEvent)

	protected.POST("/bookings", d.Bookings.CreateBooking)
	protected.GET("/bookings", d.Bookings.ListBookings)
	protected.DELETE("/bookings/:id", d.Bookings.CancelBooking)
}
