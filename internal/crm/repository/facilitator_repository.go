package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wellness-booking-platform/internal/utils"
)

// CRMFacilitator is a facilitator account on the CRM side, with its own
// login credentials independent of booking-side users.
type CRMFacilitator struct {
	ID             uint64
	Username       string
	PasswordHash   string
	Name           string
	Email          string
	Specialization *string
}

type CRMFacilitatorRepo struct{ DB *sql.DB }

func NewCRMFacilitatorRepo(db *sql.DB) *CRMFacilitatorRepo { return &CRMFacilitatorRepo{DB: db} }

// GetByUsername fetches a facilitator for login.
func (r *CRMFacilitatorRepo) GetByUsername(ctx context.Context, username string) (CRMFacilitator, error) {
	var f CRMFacilitator
	var spec sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, name, email, specialization FROM crm_facilitators WHERE username=? LIMIT 1",
		username).Scan(&f.ID, &f.Username, &f.PasswordHash, &f.Name, &f.Email, &spec)
	if err != nil {
		return CRMFacilitator{}, err
	}
	if spec.Valid {
		s := spec.String
		f.Specialization = &s
	}
	return f, nil
}

// Create inserts a facilitator account, hashing the given password with
// bcrypt.  Used by the seeder.
func (r *CRMFacilitatorRepo) Create(ctx context.Context, f *CRMFacilitator, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO crm_facilitators (username, password_hash, name, email, specialization) VALUES (?,?,?,?,?)",
		f.Username, hash, f.Name, f.Email, f.Specialization)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	f.PasswordHash = hash
	return nil
}

// Count returns the number of facilitator accounts, used by the seeder to
// stay idempotent.
func (r *CRMFacilitatorRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM crm_facilitators").Scan(&n)
	return n, err
}
