package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
)

// FacilitatorHandler serves the facilitator-facing CRM endpoints.  Every
// lookup is scoped to the facilitator id in the path, so one facilitator
// can never read or modify another's data.
type FacilitatorHandler struct {
	Notifications *repository.NotificationRepo
	Events        *repository.CRMEventRepo
}

func NewFacilitatorHandler(notifications *repository.NotificationRepo, events *repository.CRMEventRepo) *FacilitatorHandler {
	return &FacilitatorHandler{Notifications: notifications, Events: events}
}

// ListBookings returns every booking notification addressed to the
// facilitator.
func (h *FacilitatorHandler) ListBookings(c echo.Context) error {
	facilitatorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facilitator id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Notifications.ListByFacilitator(ctx, facilitatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load bookings"})
	}

	views := make([]notificationView, 0, len(list))
	for _, n := range list {
		views = append(views, newNotificationView(n))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"facilitator_id": facilitatorID,
		"bookings":       views,
		"total":          len(views),
	})
}

// ListEvents returns the facilitator's events, active and inactive alike.
func (h *FacilitatorHandler) ListEvents(c echo.Context) error {
	facilitatorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facilitator id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Events.ListByFacilitator(ctx, facilitatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load events"})
	}

	views := make([]crmEventView, 0, len(list))
	for _, ev := range list {
		views = append(views, newCRMEventView(ev))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"facilitator_id": facilitatorID,
		"events":         views,
		"total":          len(views),
	})
}

// updateEventRequest carries the mutable event fields.  Absent fields stay
// untouched.
type updateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	MaxParticipants *uint32 `json:"max_participants"`
	PriceCents      *uint32 `json:"price_cents"`
}

// UpdateEvent applies a partial update to an event owned by the
// facilitator.  An event id belonging to another facilitator is
// indistinguishable from a missing one and yields 404.
func (h *FacilitatorHandler) UpdateEvent(c echo.Context) error {
	facilitatorID, eventID, err := pathIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id in path"})
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no data provided"})
	}

	upd := repository.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		MaxParticipants: req.MaxParticipants,
		PriceCents:      req.PriceCents,
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
		}
		upd.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
		}
		upd.EndTime = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.UpdateScoped(ctx, eventID, facilitatorID, upd); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found or not authorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update event"})
	}

	ev, err := h.Events.GetScoped(ctx, eventID, facilitatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load event"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "event updated successfully",
		"event":   newCRMEventView(ev),
	})
}

// CancelEvent soft-cancels an event owned by the facilitator by clearing
// its is_active flag.  The row is kept so past bookings stay resolvable.
func (h *FacilitatorHandler) CancelEvent(c echo.Context) error {
	facilitatorID, eventID, err := pathIDs(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id in path"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.DeactivateScoped(ctx, eventID, facilitatorID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found or not authorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel event"})
	}

	ev, err := h.Events.GetScoped(ctx, eventID, facilitatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load event"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "event cancelled successfully",
		"event":   newCRMEventView(ev),
	})
}

func pathIDs(c echo.Context) (facilitatorID, eventID uint64, err error) {
	facilitatorID, err = strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	eventID, err = strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return facilitatorID, eventID, nil
}
