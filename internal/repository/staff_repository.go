package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// StaffRepo persists staff accounts. Passwords never leave this layer in
// plain form; Create hashes them with bcrypt before the INSERT.
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const staffColumns = `id, email, full_name, password_hash, role, is_active, created_at, updated_at`

func scanStaff(row interface{ Scan(...interface{}) error }) (model.Staff, error) {
	var s model.Staff
	var role string
	err := row.Scan(&s.ID, &s.Email, &s.FullName, &s.PasswordHash, &role, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Staff{}, err
	}
	r, ok := model.ParseStaffRole(role)
	if !ok {
		return model.Staff{}, errors.New("unknown staff role in database: " + role)
	}
	s.Role = r
	return s, nil
}

// Create inserts a staff account and returns its ID.
func (r *StaffRepo) Create(ctx context.Context, email, fullName, password string, role model.StaffRole, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO staff (email, full_name, password_hash, role) VALUES (?,?,?,?)",
		email, fullName, hash, string(role))
	if err != nil {
		// MySQL error 1062: duplicate entry for the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a staff account by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE email=? LIMIT 1", email))
}

// GetByID fetches a staff account by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
	return scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE id=? LIMIT 1", id))
}

// List returns all staff accounts ordered by name.
func (r *StaffRepo) List(ctx context.Context) ([]model.Staff, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+staffColumns+" FROM staff ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	staff := make([]model.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *StaffRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, "UPDATE staff SET password_hash=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Update rewrites name, role and active flag of an account.
func (r *StaffRepo) Update(ctx context.Context, s *model.Staff) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE staff SET full_name=?, role=?, is_active=? WHERE id=?",
		s.FullName, string(s.Role), s.IsActive, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate disables login for an account. Accounts are never deleted so
// audit log rows keep a valid reference.
func (r *StaffRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE staff SET is_active=FALSE WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
