// Package notifier delivers booking confirmations to the CRM/facilitator
// API.  Delivery is strictly best-effort: the booking row is already
// committed by the time a notification is attempted, so every failure mode
// is logged and collapsed into a boolean that travels back to the client
// as an informational flag.  Nothing here can fail a booking.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

// Timeout bounds a single delivery attempt end to end.  There is no retry;
// a timed-out attempt is final for that booking request.
const Timeout = 5 * time.Second

// userPayload is the user snapshot embedded in a notification.
type userPayload struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// eventPayload is the event snapshot embedded in a notification.  Times
// are rendered as ISO-8601 so the CRM stores them verbatim.
type eventPayload struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Payload is the wire format of POST {CRM_URL}/notify.
type Payload struct {
	BookingID     uint64       `json:"booking_id"`
	User          userPayload  `json:"user"`
	Event         eventPayload `json:"event"`
	FacilitatorID uint64       `json:"facilitator_id"`
	BookedAt      string       `json:"booked_at"`
}

// Client posts booking notifications to the CRM service with a static
// bearer credential.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a Client for the given CRM base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: Timeout},
	}
}

// BookingConfirmed sends one notification for a freshly confirmed booking
// and reports whether the CRM acknowledged it with a 2xx response.  Any
// marshalling problem, transport error, timeout or non-2xx status is
// logged and returned as false; errors are never propagated because a
// failed notification must not affect the committed booking.
func (c *Client) BookingConfirmed(ctx context.Context, b repository.Booking, u repository.User, ev repository.Event) bool {
	payload := Payload{
		BookingID: b.ID,
		User: userPayload{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		},
		Event: eventPayload{
			ID:        ev.ID,
			Title:     ev.Title,
			EventType: ev.EventType,
			StartTime: ev.StartTime.UTC().Format(time.RFC3339),
			EndTime:   ev.EndTime.UTC().Format(time.RFC3339),
		},
		FacilitatorID: ev.FacilitatorID,
		BookedAt:      b.BookedAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("crm-notifier: marshal payload failed: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify", bytes.NewReader(body))
	if err != nil {
		log.Printf("crm-notifier: build request failed: %v", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("crm-notifier: delivery failed for booking %d: %v", b.ID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("crm-notifier: CRM rejected booking %d with status %d", b.ID, resp.StatusCode)
		return false
	}
	return true
}
