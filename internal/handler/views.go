package handler

import (
	"time"

	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

// The view structs below define the JSON shapes returned to clients.
// Repository types stay free of json tags; handlers map rows into views at
// the edge so the wire format can evolve independently of the schema.

type facilitatorView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Specialization *string `json:"specialization"`
}

type eventView struct {
	ID                  uint64          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	EventType           string          `json:"event_type"`
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
	MaxParticipants     uint32          `json:"max_participants"`
	CurrentParticipants uint32          `json:"current_participants"`
	PriceCents          uint32          `json:"price_cents"`
	IsActive            bool            `json:"is_active"`
	Facilitator         facilitatorView `json:"facilitator"`
}

type userView struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type bookingView struct {
	ID       uint64    `json:"id"`
	Status   string    `json:"status"`
	BookedAt string    `json:"booked_at"`
	User     userView  `json:"user"`
	Event    eventView `json:"event"`
}

func newEventView(d repository.EventDetail) eventView {
	return eventView{
		ID:                  d.ID,
		Title:               d.Title,
		Description:         d.Description,
		EventType:           d.EventType,
		StartTime:           d.StartTime.UTC().Format(time.RFC3339),
		EndTime:             d.EndTime.UTC().Format(time.RFC3339),
		MaxParticipants:     d.MaxParticipants,
		CurrentParticipants: d.CurrentParticipants,
		PriceCents:          d.PriceCents,
		IsActive:            d.IsActive,
		Facilitator: facilitatorView{
			ID:             d.FacilitatorID,
			Name:           d.FacilitatorName,
			Email:          d.FacilitatorEmail,
			Specialization: d.FacilitatorSpecialization,
		},
	}
}

func newBookingView(d repository.BookingDetail) bookingView {
	return bookingView{
		ID:       d.ID,
		Status:   d.Status,
		BookedAt: d.BookedAt.UTC().Format(time.RFC3339),
		User: userView{
			ID:       d.User.ID,
			Username: d.User.Username,
			Email:    d.User.Email,
		},
		Event: newEventView(d.Event),
	}
}
