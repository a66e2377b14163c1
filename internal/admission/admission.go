// Package admission decides whether a new booking may be created for an
// event.  The checker runs read-only queries against the booking store and
// reports its verdict through sentinel errors; handlers translate those
// into HTTP status codes.
package admission

import (
	"context"
	"errors"

	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

// Rejection reasons.  ErrEventNotFound is re-exported from the repository
// so callers only need this package to classify an admission failure.
var (
	ErrEventNotFound    = repository.ErrEventNotFound
	ErrEventUnavailable = errors.New("event is no longer available")
	ErrDuplicateBooking = errors.New("user has already booked this event")
	ErrCapacityExceeded = errors.New("event is fully booked")
)

// Checker evaluates admission for (event, user) pairs.
type Checker struct {
	Events   *repository.EventRepo
	Bookings *repository.BookingRepo
}

// NewChecker constructs a Checker.  Both repositories must be non-nil.
func NewChecker(events *repository.EventRepo, bookings *repository.BookingRepo) *Checker {
	if events == nil || bookings == nil {
		panic("nil repository passed to NewChecker")
	}
	return &Checker{Events: events, Bookings: bookings}
}

// CanAdmit returns the event when a booking may be created, or one of the
// rejection sentinels:
//
//  1. the event must exist (ErrEventNotFound) and be active
//     (ErrEventUnavailable),
//  2. the user must not already hold a confirmed booking for it
//     (ErrDuplicateBooking),
//  3. the confirmed count must be below max_participants
//     (ErrCapacityExceeded).
//
// The check and the subsequent insert are not wrapped in a transaction;
// two concurrent requests for the last slot can both pass step 3 before
// either writes.  The store serializes the individual inserts, so the
// worst case is slight overbooking, never a corrupt row.
func (c *Checker) CanAdmit(ctx context.Context, eventID, userID uint64) (repository.Event, error) {
	event, err := c.Events.GetByID(ctx, eventID)
	if err != nil {
		return repository.Event{}, err
	}
	if !event.IsActive {
		return repository.Event{}, ErrEventUnavailable
	}

	dup, err := c.Bookings.HasConfirmed(ctx, userID, eventID)
	if err != nil {
		return repository.Event{}, err
	}
	if dup {
		return repository.Event{}, ErrDuplicateBooking
	}

	confirmed, err := c.Bookings.CountConfirmed(ctx, eventID)
	if err != nil {
		return repository.Event{}, err
	}
	if confirmed >= event.MaxParticipants {
		return repository.Event{}, ErrCapacityExceeded
	}

	return event, nil
}
