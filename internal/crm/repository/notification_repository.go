// Package repository holds the CRM service's data access layer.  The CRM
// keeps its own store; nothing here references the booking database.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// Notification is a denormalized audit copy of a booking as it looked when
// the booking API announced it.  Snapshot fields are stored verbatim so
// the record stays meaningful even if the source row changes later.
type Notification struct {
	ID             uint64
	BookingID      uint64
	UserID         uint64
	UserUsername   string
	UserEmail      string
	EventID        uint64
	EventTitle     string
	EventType      string
	EventStartTime string
	EventEndTime   string
	FacilitatorID  uint64
	BookedAt       string
	ReceivedAt     time.Time
}

type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification row and populates the generated ID and
// received_at timestamp.
func (r *NotificationRepo) Create(ctx context.Context, n *Notification) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO notifications
			(booking_id, user_id, user_username, user_email,
			 event_id, event_title, event_type, event_start_time, event_end_time,
			 facilitator_id, booked_at, received_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		n.BookingID, n.UserID, n.UserUsername, n.UserEmail,
		n.EventID, n.EventTitle, n.EventType, n.EventStartTime, n.EventEndTime,
		n.FacilitatorID, n.BookedAt, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	n.ReceivedAt = now
	return nil
}

// ListByFacilitator returns every notification addressed to a facilitator,
// newest first.
func (r *NotificationRepo) ListByFacilitator(ctx context.Context, facilitatorID uint64) ([]Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, booking_id, user_id, user_username, user_email,
				event_id, event_title, event_type, event_start_time, event_end_time,
				facilitator_id, booked_at, received_at
		   FROM notifications
		  WHERE facilitator_id = ?
		  ORDER BY received_at DESC, id DESC`, facilitatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.BookingID, &n.UserID, &n.UserUsername, &n.UserEmail,
			&n.EventID, &n.EventTitle, &n.EventType, &n.EventStartTime, &n.EventEndTime,
			&n.FacilitatorID, &n.BookedAt, &n.ReceivedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
