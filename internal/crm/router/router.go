// Package router wires the CRM/facilitator API's routes and middleware.
package router

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/handler"
	"github.com/iliyamo/wellness-booking-platform/internal/middleware"
)

// Deps carries everything the CRM routes need.
type Deps struct {
	Notify       *handler.NotifyHandler
	Facilitators *handler.FacilitatorHandler
	Auth         *handler.AuthHandler
	DB           *sql.DB
	BearerToken  string
}

// Register attaches all CRM routes to the Echo instance.  The notification
// intake and facilitator endpoints sit behind the shared static bearer
// token; login and the index page are open.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.CorrelationID())

	e.GET("/", handler.Index)
	e.GET("/healthz", func(c echo.Context) error {
		if err := d.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "service": "crm"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "crm"})
	})

	bearer := middleware.StaticBearer(d.BearerToken)

	e.POST("/notify", d.Notify.Receive, bearer)

	api := e.Group("/api/facilitator")
	api.POST("/login", d.Auth.Login)
	api.GET("/:id/bookings", d.Facilitators.ListBookings, bearer)
	api.GET("/:id/events", d.Facilitators.ListEvents, bearer)
	api.PUT("/:id/events/:event_id", d.Facilitators.UpdateEvent, bearer)
	api.DELETE("/:id/events/:event_id", d.Facilitators.CancelEvent, bearer)
}
