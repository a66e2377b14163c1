// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking is committed.  It
// carries enough denormalized information for downstream consumers to log,
// notify or feed analytics without querying the booking database.  The
// broker path is independent of the synchronous CRM notification; both are
// best-effort side effects of the same commit.
type BookingConfirmedEvent struct {
	EventID       string `json:"event_id"`       // unique id of this message
	CorrelationID string `json:"correlation_id"` // request correlation id, if any
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	Username      string `json:"username"`
	EventRef      uint64 `json:"event_ref"` // id of the booked wellness event
	EventTitle    string `json:"event_title"`
	EventType     string `json:"event_type"`
	FacilitatorID uint64 `json:"facilitator_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	PriceCents    uint32 `json:"price_cents"`
	BookedAt      string `json:"booked_at"`
	CRMNotified   bool   `json:"crm_notified"`
}
