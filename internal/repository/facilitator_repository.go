package repository

import (
	"context"
	"database/sql"
)

// Facilitator mirrors the 'facilitators' table on the booking side.  The
// booking service only reads facilitators; they are managed through the
// CRM service against its own mirrored store.
type Facilitator struct {
	ID             uint64
	Name           string
	Email          string
	Specialization *string
}

type FacilitatorRepo struct{ DB *sql.DB }

func NewFacilitatorRepo(db *sql.DB) *FacilitatorRepo { return &FacilitatorRepo{DB: db} }

// Create inserts a facilitator row, used by the seeder.
func (r *FacilitatorRepo) Create(ctx context.Context, f *Facilitator) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO facilitators (name, email, specialization) VALUES (?,?,?)",
		f.Name, f.Email, f.Specialization)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// Count returns the number of facilitator rows.  Used by the seeder to
// decide whether demo data is needed.
func (r *FacilitatorRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM facilitators").Scan(&n)
	return n, err
}
