package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

func fixtures() (repository.Booking, repository.User, repository.Event) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	b := repository.Booking{
		ID:       11,
		UserID:   42,
		EventID:  7,
		Status:   repository.BookingConfirmed,
		BookedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
	u := repository.User{ID: 42, Username: "asha", Email: "asha@example.com"}
	ev := repository.Event{
		ID:            7,
		Title:         "Morning Meditation Session",
		EventType:     "session",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		FacilitatorID: 3,
		IsActive:      true,
	}
	return b, u, ev
}

func TestBookingConfirmed_Delivered(t *testing.T) {
	b, u, ev := fixtures()

	var got Payload
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if r.URL.Path != "/notify" {
			t.Errorf("expected path /notify, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, "crm-secret-token-12345")
	if !client.BookingConfirmed(context.Background(), b, u, ev) {
		t.Fatal("expected delivery to succeed")
	}

	if auth != "Bearer crm-secret-token-12345" {
		t.Errorf("unexpected Authorization header: %q", auth)
	}
	if contentType != "application/json" {
		t.Errorf("unexpected Content-Type: %q", contentType)
	}
	if got.BookingID != 11 {
		t.Errorf("expected booking_id 11, got %d", got.BookingID)
	}
	if got.User.Username != "asha" {
		t.Errorf("expected username asha, got %q", got.User.Username)
	}
	if got.FacilitatorID != 3 {
		t.Errorf("expected facilitator_id 3, got %d", got.FacilitatorID)
	}
	if got.Event.StartTime != "2026-09-01T08:00:00Z" {
		t.Errorf("expected RFC3339 start_time, got %q", got.Event.StartTime)
	}
	if got.BookedAt != "2026-08-28T12:00:00Z" {
		t.Errorf("expected RFC3339 booked_at, got %q", got.BookedAt)
	}
}

func TestBookingConfirmed_ServerError(t *testing.T) {
	b, u, ev := fixtures()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "token")
	if client.BookingConfirmed(context.Background(), b, u, ev) {
		t.Fatal("expected 500 to report failure")
	}
}

func TestBookingConfirmed_Unauthorized(t *testing.T) {
	b, u, ev := fixtures()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(srv.URL, "wrong-token")
	if client.BookingConfirmed(context.Background(), b, u, ev) {
		t.Fatal("expected 403 to report failure")
	}
}

func TestBookingConfirmed_Unreachable(t *testing.T) {
	b, u, ev := fixtures()

	// A server that is closed before the call exercises the transport
	// error path.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(url, "token")
	if client.BookingConfirmed(context.Background(), b, u, ev) {
		t.Fatal("expected unreachable CRM to report failure")
	}
}

func TestBookingConfirmed_ContextCancelled(t *testing.T) {
	b, u, ev := fixtures()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(srv.URL, "token")
	if client.BookingConfirmed(ctx, b, u, ev) {
		t.Fatal("expected cancelled context to report failure")
	}
}
