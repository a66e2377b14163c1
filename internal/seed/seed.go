// Package seed loads demo facilitators and events on first start so a
// fresh deployment is immediately usable.  Seeding is idempotent: a
// non-empty table is left alone.
package seed

import (
	"context"
	"database/sql"
	"log"
	"time"

	crmrepo "github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
	"github.com/iliyamo/wellness-booking-platform/internal/repository"
)

type facilitatorSeed struct {
	name           string
	email          string
	specialization string
}

var facilitatorSeeds = []facilitatorSeed{
	{"Dr. Priya Sharma", "priya@wellness.in", "Mindfulness & Meditation"},
	{"Arjun Patel", "arjun@wellness.in", "Yoga & Pranayama"},
	{"Kavya Reddy", "kavya@wellness.in", "Sound Healing & Therapy"},
}

type eventSeed struct {
	title           string
	description     string
	eventType       string
	startOffset     time.Duration
	duration        time.Duration
	maxParticipants uint32
	priceCents      uint32
	facilitatorIdx  int // index into facilitatorSeeds
}

var eventSeeds = []eventSeed{
	{
		title:           "Morning Meditation Session",
		description:     "Start your day with a peaceful guided meditation session at our Rishikesh center. Perfect for beginners and experienced practitioners alike.",
		eventType:       "session",
		startOffset:     24*time.Hour + 8*time.Hour,
		duration:        time.Hour,
		maxParticipants: 15,
		priceCents:      50000,
		facilitatorIdx:  0,
	},
	{
		title:           "Weekend Yoga Retreat - Coorg",
		description:     "A transformative 2-day yoga retreat in the hills of Coorg, Karnataka. Includes sattvic meals, accommodation, and multiple yoga sessions.",
		eventType:       "retreat",
		startOffset:     7 * 24 * time.Hour,
		duration:        2 * 24 * time.Hour,
		maxParticipants: 20,
		priceCents:      850000,
		facilitatorIdx:  1,
	},
	{
		title:           "Sound Bath Healing",
		description:     "Experience deep relaxation through the healing vibrations of Tibetan singing bowls and traditional Indian instruments.",
		eventType:       "session",
		startOffset:     3*24*time.Hour + 18*time.Hour,
		duration:        90 * time.Minute,
		maxParticipants: 12,
		priceCents:      80000,
		facilitatorIdx:  2,
	},
	{
		title:           "Pranayama Workshop",
		description:     "Learn powerful breathing techniques from ancient Indian traditions for stress relief, energy, and emotional balance.",
		eventType:       "session",
		startOffset:     5*24*time.Hour + 10*time.Hour,
		duration:        2 * time.Hour,
		maxParticipants: 10,
		priceCents:      120000,
		facilitatorIdx:  1,
	},
	{
		title:           "Silent Meditation Retreat - Dharamsala",
		description:     "A 3-day silent retreat in the serene mountains of Dharamsala. Includes guided Vipassana sessions and mindful meals.",
		eventType:       "retreat",
		startOffset:     14 * 24 * time.Hour,
		duration:        3 * 24 * time.Hour,
		maxParticipants: 8,
		priceCents:      1200000,
		facilitatorIdx:  0,
	},
}

// crmAccounts are the demo facilitator logins on the CRM side.  They
// mirror facilitatorSeeds one-to-one.
var crmAccounts = []struct {
	username string
	password string
}{
	{"priya", "priya123"},
	{"arjun", "arjun123"},
	{"kavya", "kavya123"},
}

// Booking populates the booking database with demo facilitators and events
// when both tables are empty.
func Booking(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	facilitators := repository.NewFacilitatorRepo(db)
	n, err := facilitators.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ids := make([]uint64, 0, len(facilitatorSeeds))
	for _, fs := range facilitatorSeeds {
		sp := fs.specialization
		f := repository.Facilitator{Name: fs.name, Email: fs.email, Specialization: &sp}
		if err := facilitators.Create(ctx, &f); err != nil {
			return err
		}
		ids = append(ids, f.ID)
	}

	now := time.Now().UTC().Truncate(time.Second)
	for _, e := range eventSeeds {
		start := now.Add(e.startOffset)
		_, err := db.ExecContext(ctx,
			`INSERT INTO events
				(title, description, event_type, start_time, end_time,
				 max_participants, price_cents, facilitator_id, is_active)
			 VALUES (?,?,?,?,?,?,?,?,1)`,
			e.title, e.description, e.eventType, start, start.Add(e.duration),
			e.maxParticipants, e.priceCents, ids[e.facilitatorIdx])
		if err != nil {
			return err
		}
	}

	log.Printf("seed: booking database seeded with %d facilitators and %d events",
		len(facilitatorSeeds), len(eventSeeds))
	return nil
}

// CRM populates the CRM database with demo facilitator accounts and a
// mirror of the seeded events when the accounts table is empty.  Account
// IDs are assigned in insertion order, matching the booking-side
// facilitator IDs on a fresh pair of databases.
func CRM(db *sql.DB, bcryptCost int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	facilitators := crmrepo.NewCRMFacilitatorRepo(db)
	n, err := facilitators.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ids := make([]uint64, 0, len(crmAccounts))
	for i, acct := range crmAccounts {
		fs := facilitatorSeeds[i]
		sp := fs.specialization
		f := crmrepo.CRMFacilitator{
			Username:       acct.username,
			Name:           fs.name,
			Email:          fs.email,
			Specialization: &sp,
		}
		if err := facilitators.Create(ctx, &f, acct.password, bcryptCost); err != nil {
			return err
		}
		ids = append(ids, f.ID)
	}

	events := crmrepo.NewCRMEventRepo(db)
	now := time.Now().UTC().Truncate(time.Second)
	for i, e := range eventSeeds {
		start := now.Add(e.startOffset)
		ev := crmrepo.CRMEvent{
			OriginalEventID: uint64(i + 1),
			Title:           e.title,
			Description:     e.description,
			EventType:       e.eventType,
			StartTime:       start,
			EndTime:         start.Add(e.duration),
			MaxParticipants: e.maxParticipants,
			PriceCents:      e.priceCents,
			FacilitatorID:   ids[e.facilitatorIdx],
			IsActive:        true,
		}
		if err := events.Create(ctx, &ev); err != nil {
			return err
		}
	}

	log.Printf("seed: CRM database seeded with %d facilitator accounts and %d events",
		len(crmAccounts), len(eventSeeds))
	return nil
}
