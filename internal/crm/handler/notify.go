// Package handler implements the CRM/facilitator API endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
)

// notifyRequest is the inbound shape of POST /notify.  Pointer fields let
// the handler tell "absent" apart from a zero value when listing missing
// fields.
type notifyRequest struct {
	BookingID     *uint64      `json:"booking_id"`
	User          *notifyUser  `json:"user"`
	Event         *notifyEvent `json:"event"`
	FacilitatorID *uint64      `json:"facilitator_id"`
	BookedAt      string       `json:"booked_at"`
}

type notifyUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type notifyEvent struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// NotifyHandler ingests booking notifications from the booking API.
type NotifyHandler struct {
	Notifications *repository.NotificationRepo
}

func NewNotifyHandler(notifications *repository.NotificationRepo) *NotifyHandler {
	return &NotifyHandler{Notifications: notifications}
}

// Receive validates and persists one booking notification.  A payload with
// missing required fields is answered with 400 and the exact list of what
// is missing, so the sending side can diagnose contract drift from its own
// logs.
func (h *NotifyHandler) Receive(c echo.Context) error {
	var req notifyRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no data provided"})
	}

	missing := make([]string, 0, 4)
	if req.BookingID == nil {
		missing = append(missing, "booking_id")
	}
	if req.User == nil {
		missing = append(missing, "user")
	}
	if req.Event == nil {
		missing = append(missing, "event")
	}
	if req.FacilitatorID == nil {
		missing = append(missing, "facilitator_id")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "missing required fields",
			"missing": missing,
		})
	}

	n := repository.Notification{
		BookingID:      *req.BookingID,
		UserID:         req.User.ID,
		UserUsername:   req.User.Username,
		UserEmail:      req.User.Email,
		EventID:        req.Event.ID,
		EventTitle:     req.Event.Title,
		EventType:      req.Event.EventType,
		EventStartTime: req.Event.StartTime,
		EventEndTime:   req.Event.EndTime,
		FacilitatorID:  *req.FacilitatorID,
		BookedAt:       req.BookedAt,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.Create(ctx, &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store notification"})
	}

	log.Printf("crm: received booking notification: booking #%d for %q", n.BookingID, n.EventTitle)

	return c.JSON(http.StatusOK, echo.Map{
		"message":         "notification received successfully",
		"notification_id": n.ID,
	})
}
