package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

// EventHandler serves the read-only event catalogue.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: events}
}

// ListEvents returns every active event with facilitator details and the
// live confirmed-booking count, ordered by start time.
func (h *EventHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Events.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load events"})
	}

	views := make([]eventView, 0, len(details))
	for _, d := range details {
		views = append(views, newEventView(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": views, "total": len(views)})
}

// GetEvent returns a single event by id, including inactive ones so a
// client can explain why a previously listed event is gone.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Events.GetDetail(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load event"})
	}

	return c.JSON(http.StatusOK, newEventView(d))
}
