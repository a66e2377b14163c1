package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
)

var crmEventCols = []string{
	"id", "original_event_id", "title", "description", "event_type",
	"start_time", "end_time", "max_participants", "price_cents", "facilitator_id", "is_active",
}

var notificationCols = []string{
	"id", "booking_id", "user_id", "user_username", "user_email",
	"event_id", "event_title", "event_type", "event_start_time", "event_end_time",
	"facilitator_id", "booked_at", "received_at",
}

func newFacilitatorTestHandler(t *testing.T) (*FacilitatorHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFacilitatorHandler(repository.NewNotificationRepo(db), repository.NewCRMEventRepo(db)), mock
}

func newFacilitatorContext(method, target, body string, names, values []string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func TestListBookings_ScopedToFacilitator(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	received := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows(notificationCols).
		AddRow(5, 11, 42, "asha", "asha@example.com",
			7, "Morning Meditation Session", "session",
			"2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z",
			3, "2026-08-28T12:00:00Z", received)
	mock.ExpectQuery("SELECT id, booking_id").
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	c, rec := newFacilitatorContext(http.MethodGet, "/api/facilitator/3/bookings", "",
		[]string{"id"}, []string{"3"})
	if err := h.ListBookings(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		FacilitatorID uint64             `json:"facilitator_id"`
		Bookings      []notificationView `json:"bookings"`
		Total         int                `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Total != 1 || resp.FacilitatorID != 3 {
		t.Errorf("expected 1 booking for facilitator 3, got %s", rec.Body.String())
	}
	if resp.Bookings[0].BookingID != 11 || resp.Bookings[0].User.Username != "asha" {
		t.Errorf("unexpected booking view: %+v", resp.Bookings[0])
	}
}

func TestListEvents_IncludesInactive(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(crmEventCols).
		AddRow(1, 7, "Morning Meditation Session", "", "session",
			start, start.Add(time.Hour), 15, 50000, 3, true).
		AddRow(2, 8, "Silent Meditation Retreat - Dharamsala", "", "retreat",
			start.Add(14*24*time.Hour), start.Add(17*24*time.Hour), 8, 1200000, 3, false)
	mock.ExpectQuery("SELECT id, original_event_id").
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	c, rec := newFacilitatorContext(http.MethodGet, "/api/facilitator/3/events", "",
		[]string{"id"}, []string{"3"})
	if err := h.ListEvents(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Events []crmEventView `json:"events"`
		Total  int            `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 events, got %d", resp.Total)
	}
	if resp.Events[1].IsActive {
		t.Error("expected second event to be inactive")
	}
}

func TestUpdateEvent_Success(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE crm_events SET").
		WithArgs("Evening Meditation", uint32(20), uint64(1), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, original_event_id").
		WithArgs(uint64(1), uint64(3)).
		WillReturnRows(sqlmock.NewRows(crmEventCols).
			AddRow(1, 7, "Evening Meditation", "", "session",
				start, start.Add(time.Hour), 20, 50000, 3, true))

	c, rec := newFacilitatorContext(http.MethodPut, "/api/facilitator/3/events/1",
		`{"title":"Evening Meditation","max_participants":20}`,
		[]string{"id", "event_id"}, []string{"3", "1"})
	if err := h.UpdateEvent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Event crmEventView `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Event.Title != "Evening Meditation" || resp.Event.MaxParticipants != 20 {
		t.Errorf("unexpected event view: %+v", resp.Event)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

// An event id owned by another facilitator reads as missing.
func TestUpdateEvent_WrongFacilitator(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	mock.ExpectExec("UPDATE crm_events SET").
		WithArgs("Hijacked", uint64(1), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, original_event_id").
		WithArgs(uint64(1), uint64(99)).
		WillReturnRows(sqlmock.NewRows(crmEventCols))

	c, rec := newFacilitatorContext(http.MethodPut, "/api/facilitator/99/events/1",
		`{"title":"Hijacked"}`,
		[]string{"id", "event_id"}, []string{"99", "1"})
	if err := h.UpdateEvent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateEvent_BadStartTime(t *testing.T) {
	h, _ := newFacilitatorTestHandler(t)

	c, rec := newFacilitatorContext(http.MethodPut, "/api/facilitator/3/events/1",
		`{"start_time":"tomorrow"}`,
		[]string{"id", "event_id"}, []string{"3", "1"})
	if err := h.UpdateEvent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelEvent_SoftCancel(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE crm_events SET is_active=0").
		WithArgs(uint64(1), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, original_event_id").
		WithArgs(uint64(1), uint64(3)).
		WillReturnRows(sqlmock.NewRows(crmEventCols).
			AddRow(1, 7, "Morning Meditation Session", "", "session",
				start, start.Add(time.Hour), 15, 50000, 3, false))

	c, rec := newFacilitatorContext(http.MethodDelete, "/api/facilitator/3/events/1", "",
		[]string{"id", "event_id"}, []string{"3", "1"})
	if err := h.CancelEvent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Event crmEventView `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Event.IsActive {
		t.Error("expected event to be inactive after cancellation")
	}
}

func TestCancelEvent_NotOwned(t *testing.T) {
	h, mock := newFacilitatorTestHandler(t)

	mock.ExpectExec("UPDATE crm_events SET is_active=0").
		WithArgs(uint64(1), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, original_event_id").
		WithArgs(uint64(1), uint64(99)).
		WillReturnRows(sqlmock.NewRows(crmEventCols))

	c, rec := newFacilitatorContext(http.MethodDelete, "/api/facilitator/99/events/1", "",
		[]string{"id", "event_id"}, []string{"99", "1"})
	if err := h.CancelEvent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
