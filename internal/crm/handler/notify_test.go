package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
)

func newNotifyContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validNotification = `{
	"booking_id": 11,
	"user": {"id": 42, "username": "asha", "email": "asha@example.com"},
	"event": {"id": 7, "title": "Morning Meditation Session", "event_type": "session",
			  "start_time": "2026-09-01T08:00:00Z", "end_time": "2026-09-01T09:00:00Z"},
	"facilitator_id": 3,
	"booked_at": "2026-08-28T12:00:00Z"
}`

func TestReceive_Persisted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(uint64(11), uint64(42), "asha", "asha@example.com",
			uint64(7), "Morning Meditation Session", "session",
			"2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z",
			uint64(3), "2026-08-28T12:00:00Z", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	h := NewNotifyHandler(repository.NewNotificationRepo(db))
	c, rec := newNotifyContext(validNotification)
	if err := h.Receive(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message        string `json:"message"`
		NotificationID uint64 `json:"notification_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.NotificationID != 5 {
		t.Errorf("expected notification_id 5, got %d", resp.NotificationID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReceive_MissingFieldsListed(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	h := NewNotifyHandler(repository.NewNotificationRepo(db))
	c, rec := newNotifyContext(`{"booking_id": 11, "user": {"id": 42}}`)
	if err := h.Receive(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	want := []string{"event", "facilitator_id"}
	if len(resp.Missing) != len(want) {
		t.Fatalf("expected missing %v, got %v", want, resp.Missing)
	}
	for i, f := range want {
		if resp.Missing[i] != f {
			t.Errorf("expected missing[%d]=%s, got %s", i, f, resp.Missing[i])
		}
	}
}

func TestReceive_EmptyBody(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	h := NewNotifyHandler(repository.NewNotificationRepo(db))
	c, rec := newNotifyContext("")
	if err := h.Receive(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReceive_InvalidJSON(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	h := NewNotifyHandler(repository.NewNotificationRepo(db))
	c, rec := newNotifyContext("{invalid")
	if err := h.Receive(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
