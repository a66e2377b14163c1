package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// CRMEvent mirrors the 'crm_events' table: the CRM's own copy of a
// wellness event, linked to the booking service only through
// original_event_id.  Facilitators manage these rows through the CRM API.
type CRMEvent struct {
	ID              uint64
	OriginalEventID uint64
	Title           string
	Description     string
	EventType       string
	StartTime       time.Time
	EndTime         time.Time
	MaxParticipants uint32
	PriceCents      uint32
	FacilitatorID   uint64
	IsActive        bool
}

type CRMEventRepo struct{ DB *sql.DB }

func NewCRMEventRepo(db *sql.DB) *CRMEventRepo { return &CRMEventRepo{DB: db} }

// ErrEventNotFound covers both a missing row and a row owned by another
// facilitator; scoped queries make the two indistinguishable on purpose.
var ErrEventNotFound = errors.New("event not found")

const crmEventColumns = `id, original_event_id, title, description, event_type,
	   start_time, end_time, max_participants, price_cents, facilitator_id, is_active`

// ListByFacilitator returns all events owned by a facilitator, active and
// inactive alike, ordered by start time.
func (r *CRMEventRepo) ListByFacilitator(ctx context.Context, facilitatorID uint64) ([]CRMEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+crmEventColumns+` FROM crm_events WHERE facilitator_id = ? ORDER BY start_time`,
		facilitatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]CRMEvent, 0)
	for rows.Next() {
		ev, err := scanCRMEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// GetScoped fetches one event owned by the given facilitator.
func (r *CRMEventRepo) GetScoped(ctx context.Context, id, facilitatorID uint64) (CRMEvent, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+crmEventColumns+` FROM crm_events WHERE id = ? AND facilitator_id = ? LIMIT 1`,
		id, facilitatorID)
	ev, err := scanCRMEvent(row)
	if err == sql.ErrNoRows {
		return CRMEvent{}, ErrEventNotFound
	}
	return ev, err
}

// EventUpdate holds the mutable fields of a CRM event.  Nil pointers mean
// "leave unchanged".
type EventUpdate struct {
	Title           *string
	Description     *string
	StartTime       *time.Time
	EndTime         *time.Time
	MaxParticipants *uint32
	PriceCents      *uint32
}

// UpdateScoped applies a partial update to an event owned by the given
// facilitator.  The ownership filter in the WHERE clause means another
// facilitator's event id reports ErrEventNotFound rather than leaking its
// existence.
func (r *CRMEventRepo) UpdateScoped(ctx context.Context, id, facilitatorID uint64, upd EventUpdate) error {
	set := make([]string, 0, 6)
	args := make([]any, 0, 8)
	if upd.Title != nil {
		set = append(set, "title=?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.StartTime != nil {
		set = append(set, "start_time=?")
		args = append(args, upd.StartTime.UTC())
	}
	if upd.EndTime != nil {
		set = append(set, "end_time=?")
		args = append(args, upd.EndTime.UTC())
	}
	if upd.MaxParticipants != nil {
		set = append(set, "max_participants=?")
		args = append(args, *upd.MaxParticipants)
	}
	if upd.PriceCents != nil {
		set = append(set, "price_cents=?")
		args = append(args, *upd.PriceCents)
	}
	if len(set) == 0 {
		return nil
	}

	query := "UPDATE crm_events SET " + joinSet(set) + " WHERE id=? AND facilitator_id=?"
	args = append(args, id, facilitatorID)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such row" from "values already identical".
		if _, err := r.GetScoped(ctx, id, facilitatorID); err != nil {
			return err
		}
	}
	return nil
}

// DeactivateScoped soft-cancels an event owned by the given facilitator.
// The row survives so existing bookings keep resolving; the booking API
// simply stops admitting new participants.
func (r *CRMEventRepo) DeactivateScoped(ctx context.Context, id, facilitatorID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE crm_events SET is_active=0 WHERE id=? AND facilitator_id=?",
		id, facilitatorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetScoped(ctx, id, facilitatorID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a CRM event row, used by the seeder.
func (r *CRMEventRepo) Create(ctx context.Context, ev *CRMEvent) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO crm_events
			(original_event_id, title, description, event_type, start_time, end_time,
			 max_participants, price_cents, facilitator_id, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		ev.OriginalEventID, ev.Title, ev.Description, ev.EventType,
		ev.StartTime.UTC(), ev.EndTime.UTC(),
		ev.MaxParticipants, ev.PriceCents, ev.FacilitatorID, ev.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Count returns the number of CRM events, used by the seeder to stay
// idempotent.
func (r *CRMEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM crm_events").Scan(&n)
	return n, err
}

func scanCRMEvent(row interface{ Scan(...any) error }) (CRMEvent, error) {
	var ev CRMEvent
	var origID sql.NullInt64
	var desc, etype sql.NullString
	var start, end sql.NullTime
	err := row.Scan(&ev.ID, &origID, &ev.Title, &desc, &etype,
		&start, &end, &ev.MaxParticipants, &ev.PriceCents, &ev.FacilitatorID, &ev.IsActive)
	if err != nil {
		return CRMEvent{}, err
	}
	ev.OriginalEventID = uint64(origID.Int64)
	ev.Description = desc.String
	ev.EventType = etype.String
	ev.StartTime = start.Time
	ev.EndTime = end.Time
	return ev, nil
}

func joinSet(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
