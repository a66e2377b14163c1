package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a liveness probe that also pings the database.
type HealthHandler struct {
	DB      *sql.DB
	Service string
}

func NewHealthHandler(db *sql.DB, service string) *HealthHandler {
	return &HealthHandler{DB: db, Service: service}
}

// Healthz reports service and database health.  A failing database ping is
// reported with 503 so orchestrators can rotate the instance.
func (h *HealthHandler) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":  "degraded",
			"service": h.Service,
			"error":   "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": h.Service})
}
