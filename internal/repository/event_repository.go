package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Event mirrors the 'events' table.  All timestamps are stored in UTC.
// IsActive is cleared when a facilitator cancels the event; rows are never
// deleted.
type Event struct {
	ID              uint64
	Title           string
	Description     string
	EventType       string // 'session' or 'retreat'
	StartTime       time.Time
	EndTime         time.Time
	MaxParticipants uint32
	PriceCents      uint32
	FacilitatorID   uint64
	IsActive        bool
}

// EventDetail extends Event with the owning facilitator and the live count
// of confirmed bookings.  It backs the denormalized JSON views returned by
// the events and bookings endpoints.
type EventDetail struct {
	Event
	FacilitatorName           string
	FacilitatorEmail          string
	FacilitatorSpecialization *string
	CurrentParticipants       uint32
}

type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

var ErrEventNotFound = errors.New("event not found")

const eventDetailColumns = `e.id, e.title, e.description, e.event_type,
	   e.start_time, e.end_time,
	   e.max_participants, e.price_cents, e.facilitator_id, e.is_active,
	   f.name, f.email, f.specialization,
	   (SELECT COUNT(*) FROM bookings b WHERE b.event_id = e.id AND b.status = 'confirmed')`

// GetByID fetches a single event row.  ErrEventNotFound is returned when
// no row exists; callers distinguish missing from inactive themselves.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (Event, error) {
	var e Event
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, description, event_type, start_time, end_time,
				max_participants, price_cents, facilitator_id, is_active
		 FROM events WHERE id = ? LIMIT 1`, id).
		Scan(&e.ID, &e.Title, &desc, &e.EventType, &e.StartTime, &e.EndTime,
			&e.MaxParticipants, &e.PriceCents, &e.FacilitatorID, &e.IsActive)
	if err == sql.ErrNoRows {
		return Event{}, ErrEventNotFound
	}
	if err != nil {
		return Event{}, err
	}
	e.Description = desc.String
	return e, nil
}

// GetDetail fetches a single event together with its facilitator and the
// confirmed booking count.
func (r *EventRepo) GetDetail(ctx context.Context, id uint64) (EventDetail, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+eventDetailColumns+`
		 FROM events e
		 JOIN facilitators f ON f.id = e.facilitator_id
		 WHERE e.id = ? LIMIT 1`, id)
	d, err := scanEventDetail(row)
	if err == sql.ErrNoRows {
		return EventDetail{}, ErrEventNotFound
	}
	return d, err
}

// ListActive returns all bookable events with facilitator details, ordered
// by start time.
func (r *EventRepo) ListActive(ctx context.Context) ([]EventDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+eventDetailColumns+`
		 FROM events e
		 JOIN facilitators f ON f.id = e.facilitator_id
		 WHERE e.is_active = 1
		 ORDER BY e.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]EventDetail, 0)
	for rows.Next() {
		d, err := scanEventDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEventDetail(row rowScanner) (EventDetail, error) {
	var d EventDetail
	var desc, spec sql.NullString
	err := row.Scan(&d.ID, &d.Title, &desc, &d.EventType, &d.StartTime, &d.EndTime,
		&d.MaxParticipants, &d.PriceCents, &d.FacilitatorID, &d.IsActive,
		&d.FacilitatorName, &d.FacilitatorEmail, &spec, &d.CurrentParticipants)
	if err != nil {
		return EventDetail{}, err
	}
	d.Description = desc.String
	if spec.Valid {
		s := spec.String
		d.FacilitatorSpecialization = &s
	}
	return d, nil
}
