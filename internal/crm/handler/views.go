package handler

import (
	"time"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
)

// JSON views of CRM rows.  Timestamps originating from the booking service
// are stored and echoed back verbatim; only CRM-owned timestamps are
// formatted here.

type notificationView struct {
	ID            uint64            `json:"id"`
	BookingID     uint64            `json:"booking_id"`
	User          notificationUser  `json:"user"`
	Event         notificationEvent `json:"event"`
	FacilitatorID uint64            `json:"facilitator_id"`
	BookedAt      string            `json:"booked_at"`
	ReceivedAt    string            `json:"received_at"`
}

type notificationUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type notificationEvent struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type crmEventView struct {
	ID              uint64 `json:"id"`
	OriginalEventID uint64 `json:"original_event_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EventType       string `json:"event_type"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants uint32 `json:"max_participants"`
	PriceCents      uint32 `json:"price_cents"`
	FacilitatorID   uint64 `json:"facilitator_id"`
	IsActive        bool   `json:"is_active"`
}

type facilitatorView struct {
	ID             uint64  `json:"id"`
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Specialization *string `json:"specialization"`
}

func newNotificationView(n repository.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		BookingID: n.BookingID,
		User: notificationUser{
			ID:       n.UserID,
			Username: n.UserUsername,
			Email:    n.UserEmail,
		},
		Event: notificationEvent{
			ID:        n.EventID,
			Title:     n.EventTitle,
			EventType: n.EventType,
			StartTime: n.EventStartTime,
			EndTime:   n.EventEndTime,
		},
		FacilitatorID: n.FacilitatorID,
		BookedAt:      n.BookedAt,
		ReceivedAt:    n.ReceivedAt.UTC().Format(time.RFC3339),
	}
}

func newCRMEventView(ev repository.CRMEvent) crmEventView {
	return crmEventView{
		ID:              ev.ID,
		OriginalEventID: ev.OriginalEventID,
		Title:           ev.Title,
		Description:     ev.Description,
		EventType:       ev.EventType,
		StartTime:       ev.StartTime.UTC().Format(time.RFC3339),
		EndTime:         ev.EndTime.UTC().Format(time.RFC3339),
		MaxParticipants: ev.MaxParticipants,
		PriceCents:      ev.PriceCents,
		FacilitatorID:   ev.FacilitatorID,
		IsActive:        ev.IsActive,
	}
}

func newFacilitatorView(f repository.CRMFacilitator) facilitatorView {
	return facilitatorView{
		ID:             f.ID,
		Username:       f.Username,
		Name:           f.Name,
		Email:          f.Email,
		Specialization: f.Specialization,
	}
}
