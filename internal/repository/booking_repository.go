package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Booking status values.  Transitions are one-directional: a confirmed
// booking may become cancelled, nothing else.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking mirrors the 'bookings' table.  Rows are never deleted; a
// cancellation only flips the status so the history stays auditable.
type Booking struct {
	ID       uint64
	UserID   uint64
	EventID  uint64
	Status   string
	BookedAt time.Time
}

// BookingDetail is the fully denormalized view of a booking: the user and
// event facts are embedded by value rather than referenced by id, matching
// what the booking endpoints return to clients.
type BookingDetail struct {
	Booking
	User  User
	Event EventDetail
}

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// HasConfirmed reports whether the user already holds a confirmed booking
// for the event.  Cancelled rows do not count, so re-booking after a
// cancellation is permitted.
func (r *BookingRepo) HasConfirmed(ctx context.Context, userID, eventID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE user_id=? AND event_id=? AND status=?",
		userID, eventID, BookingConfirmed).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountConfirmed returns the number of confirmed bookings for an event.
// This is the figure compared against max_participants during admission.
func (r *BookingRepo) CountConfirmed(ctx context.Context, eventID uint64) (uint32, error) {
	var n uint32
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id=? AND status=?",
		eventID, BookingConfirmed).Scan(&n)
	return n, err
}

// Create inserts a confirmed booking and populates the generated ID and
// booked_at timestamp on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *Booking) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (user_id, event_id, status, booked_at) VALUES (?,?,?,?)",
		b.UserID, b.EventID, BookingConfirmed, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = BookingConfirmed
	b.BookedAt = now
	return nil
}

// GetByIDAndUser returns a booking scoped to its owner.  Filtering on both
// id and user_id prevents one user from acting on another user's booking;
// a foreign id simply looks like a missing row.
func (r *BookingRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (Booking, error) {
	var b Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, event_id, status, booked_at FROM bookings WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(&b.ID, &b.UserID, &b.EventID, &b.Status, &b.BookedAt)
	if err == sql.ErrNoRows {
		return Booking{}, ErrBookingNotFound
	}
	return b, err
}

// Cancel flips a booking to cancelled.  The status guard in the WHERE
// clause makes the update a no-op when the booking is already cancelled,
// reported as ErrAlreadyCancelled.
func (r *BookingRepo) Cancel(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND user_id=? AND status=?",
		BookingCancelled, id, userID, BookingConfirmed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}

const bookingDetailQuery = `SELECT b.id, b.user_id, b.event_id, b.status, b.booked_at,
	   u.id, u.username, u.email,
	   ` + eventDetailColumns + `
  FROM bookings b
  JOIN users u ON u.id = b.user_id
  JOIN events e ON e.id = b.event_id
  JOIN facilitators f ON f.id = e.facilitator_id`

// ListDetailsByUser returns every booking owned by the user with the user
// and event snapshots embedded, newest first.  Callers partition the
// result into upcoming and past themselves.
func (r *BookingRepo) ListDetailsByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.booked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
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

// GetDetailByIDAndUser returns a single denormalized booking scoped to its
// owner.  ErrBookingNotFound covers both a missing row and a row owned by
// someone else.
func (r *BookingRepo) GetDetailByIDAndUser(ctx context.Context, id, userID uint64) (BookingDetail, error) {
	row := r.DB.QueryRowContext(ctx,
		bookingDetailQuery+` WHERE b.id = ? AND b.user_id = ? LIMIT 1`, id, userID)
	d, err := scanBookingDetail(row)
	if err == sql.ErrNoRows {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

func scanBookingDetail(row rowScanner) (BookingDetail, error) {
	var d BookingDetail
	var desc, spec sql.NullString
	err := row.Scan(&d.ID, &d.UserID, &d.EventID, &d.Status, &d.BookedAt,
		&d.User.ID, &d.User.Username, &d.User.Email,
		&d.Event.ID, &d.Event.Title, &desc, &d.Event.EventType,
		&d.Event.StartTime, &d.Event.EndTime,
		&d.Event.MaxParticipants, &d.Event.PriceCents, &d.Event.FacilitatorID, &d.Event.IsActive,
		&d.Event.FacilitatorName, &d.Event.FacilitatorEmail, &spec,
		&d.Event.CurrentParticipants)
	if err != nil {
		return BookingDetail{}, err
	}
	d.Event.Description = desc.String
	if spec.Valid {
		s := spec.String
		d.Event.FacilitatorSpecialization = &s
	}
	return d, nil
}
