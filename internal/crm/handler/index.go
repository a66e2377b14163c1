package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index describes the API surface so a developer hitting the root URL can
// orient themselves without documentation.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "CRM/Facilitator API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"notify":               "POST /notify",
			"facilitator_login":    "POST /api/facilitator/login",
			"facilitator_bookings": "GET /api/facilitator/:id/bookings",
			"facilitator_events":   "GET /api/facilitator/:id/events",
			"modify_event":         "PUT /api/facilitator/:id/events/:event_id",
			"cancel_event":         "DELETE /api/facilitator/:id/events/:event_id",
		},
	})
}
