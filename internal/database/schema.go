package database

// schema.go bootstraps the table layout of both services on startup.  The
// original deployment target is a small single-node MySQL per service, so
// idempotent CREATE TABLE IF NOT EXISTS statements stand in for a full
// migration tool.  Statements are executed in dependency order.

import (
	"context"
	"database/sql"
	"time"
)

// bookingSchema describes the tables owned by the booking API.
var bookingSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(80) NOT NULL UNIQUE,
		email VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS facilitators (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		specialization VARCHAR(200) NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NULL,
		event_type ENUM('session','retreat') NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		max_participants INT UNSIGNED NOT NULL DEFAULT 20,
		price_cents INT UNSIGNED NOT NULL DEFAULT 0,
		facilitator_id BIGINT UNSIGNED NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		CONSTRAINT fk_events_facilitator FOREIGN KEY (facilitator_id) REFERENCES facilitators(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		event_id BIGINT UNSIGNED NOT NULL,
		status ENUM('confirmed','cancelled') NOT NULL DEFAULT 'confirmed',
		booked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_event_status (event_id, status),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_bookings_event FOREIGN KEY (event_id) REFERENCES events(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		KEY idx_refresh_tokens_hash (token_hash)
	) ENGINE=InnoDB`,
}

// crmSchema describes the tables owned by the CRM/facilitator API.  The
// notifications table is a denormalized audit copy of bookings at receipt
// time; crm_events mirrors events by original_event_id only.  Neither table
// holds a foreign key into the booking database.
var crmSchema = []string{
	`CREATE TABLE IF NOT EXISTS crm_facilitators (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(80) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		specialization VARCHAR(200) NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NULL,
		user_username VARCHAR(80) NULL,
		user_email VARCHAR(120) NULL,
		event_id BIGINT UNSIGNED NULL,
		event_title VARCHAR(200) NULL,
		event_type VARCHAR(50) NULL,
		event_start_time VARCHAR(50) NULL,
		event_end_time VARCHAR(50) NULL,
		facilitator_id BIGINT UNSIGNED NOT NULL,
		booked_at VARCHAR(50) NULL,
		received_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_notifications_facilitator (facilitator_id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS crm_events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		original_event_id BIGINT UNSIGNED NULL UNIQUE,
		title VARCHAR(200) NOT NULL,
		description TEXT NULL,
		event_type VARCHAR(50) NULL,
		start_time DATETIME NULL,
		end_time DATETIME NULL,
		max_participants INT UNSIGNED NOT NULL DEFAULT 20,
		price_cents INT UNSIGNED NOT NULL DEFAULT 0,
		facilitator_id BIGINT UNSIGNED NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		KEY idx_crm_events_facilitator (facilitator_id)
	) ENGINE=InnoDB`,
}

// EnsureBookingSchema creates the booking API tables when absent.
func EnsureBookingSchema(db *sql.DB) error {
	return applySchema(db, bookingSchema)
}

// EnsureCRMSchema creates the CRM API tables when absent.
func EnsureCRMSchema(db *sql.DB) error {
	return applySchema(db, crmSchema)
}

func applySchema(db *sql.DB, stmts []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
