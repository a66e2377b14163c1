package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/admission"
	"github.com/iliyamo/wellness-booking-platform/internal/middleware"
	"github.com/iliyamo/wellness-booking-platform/internal/queue"
	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

// Notifier delivers a booking confirmation to the CRM service and reports
// whether it was acknowledged.  The booking row is committed before this
// runs; implementations must never return an error, only a verdict.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b repository.Booking, u repository.User, ev repository.Event) bool
}

// EventPublisher pushes a confirmed-booking event onto the message broker.
// Failures are tolerated; the broker feed is an audit trail, not a source
// of truth.
type EventPublisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// BookingHandler implements the booking lifecycle endpoints.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Checker  *admission.Checker
	Notifier Notifier
	Publish  EventPublisher // optional; nil disables broker publishing
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *repository.BookingRepo, users *repository.UserRepo, checker *admission.Checker, n Notifier, pub EventPublisher) *BookingHandler {
	return &BookingHandler{
		Bookings: bookings,
		Users:    users,
		Checker:  checker,
		Notifier: n,
		Publish:  pub,
	}
}

type createBookingRequest struct {
	EventID uint64 `json:"event_id"`
}

// CreateBooking books the authenticated user onto an event.  The admission
// checker decides eligibility; its sentinels map onto HTTP statuses:
//
//	missing event          -> 404
//	inactive event         -> 400
//	duplicate booking      -> 409
//	capacity reached       -> 400
//
// On success the CRM is notified best-effort and the outcome travels back
// as the crm_notified flag.  A failed notification never unwinds the
// booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil || req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	event, err := h.Checker.CanAdmit(ctx, req.EventID, userID)
	switch {
	case errors.Is(err, admission.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, admission.ErrEventUnavailable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is no longer available"})
	case errors.Is(err, admission.ErrDuplicateBooking):
		return c.JSON(http.StatusConflict, echo.Map{"error": "you have already booked this event"})
	case errors.Is(err, admission.ErrCapacityExceeded):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event is fully booked"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not check availability"})
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load user"})
	}

	booking := repository.Booking{UserID: userID, EventID: event.ID}
	if err := h.Bookings.Create(ctx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	// From here on the booking is committed; everything below is
	// best-effort and only decorates the response.
	notified := false
	if h.Notifier != nil {
		notified = h.Notifier.BookingConfirmed(c.Request().Context(), booking, user, event)
	}

	h.publishConfirmed(c, booking, user, event, notified)

	detail, err := h.Bookings.GetDetailByIDAndUser(ctx, booking.ID, userID)
	if err != nil {
		// The row exists; fall back to the lean record rather than failing
		// a booking that already succeeded.
		log.Printf("booking: load detail for fresh booking %d failed: %v", booking.ID, err)
		return c.JSON(http.StatusCreated, echo.Map{
			"message":      "booking confirmed",
			"booking_id":   booking.ID,
			"crm_notified": notified,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "booking confirmed",
		"booking":      newBookingView(detail),
		"crm_notified": notified,
	})
}

// ListBookings returns the user's bookings partitioned into upcoming and
// past by comparing each event's start time with the current time.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListDetailsByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load bookings"})
	}

	now := time.Now().UTC()
	upcoming := make([]bookingView, 0)
	past := make([]bookingView, 0)
	for _, d := range details {
		v := newBookingView(d)
		if d.Event.StartTime.After(now) {
			upcoming = append(upcoming, v)
		} else {
			past = append(past, v)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"upcoming": upcoming,
		"past":     past,
		"total":    len(details),
	})
}

// CancelBooking flips the user's booking to cancelled.  The lookup is
// scoped to the owner, so another user's booking id yields 404, and a
// booking that is already cancelled yields 409.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.GetByIDAndUser(ctx, id, userID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	if booking.Status == repository.BookingCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already cancelled"})
	}

	if err := h.Bookings.Cancel(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyCancelled) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel booking"})
	}

	detail, err := h.Bookings.GetDetailByIDAndUser(ctx, id, userID)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking cancelled",
		"booking": newBookingView(detail),
	})
}

// publishConfirmed pushes the confirmed booking onto the broker in the
// background.  The request does not wait for the broker and never fails
// because of it.
func (h *BookingHandler) publishConfirmed(c echo.Context, b repository.Booking, u repository.User, ev repository.Event, notified bool) {
	if h.Publish == nil {
		return
	}
	event := queue.BookingConfirmedEvent{
		EventID:       uuid.New().String(),
		CorrelationID: middleware.GetCorrelationID(c),
		BookingID:     b.ID,
		UserID:        u.ID,
		Username:      u.Username,
		EventRef:      ev.ID,
		EventTitle:    ev.Title,
		EventType:     ev.EventType,
		FacilitatorID: ev.FacilitatorID,
		StartTime:     ev.StartTime.UTC().Format(time.RFC3339),
		EndTime:       ev.EndTime.UTC().Format(time.RFC3339),
		PriceCents:    ev.PriceCents,
		BookedAt:      b.BookedAt.UTC().Format(time.RFC3339),
		CRMNotified:   notified,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Publish(ctx, event); err != nil {
			log.Printf("booking: publish confirmed event for booking %d failed: %v", b.ID, err)
		}
	}()
}
