package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// GuestRepo provides CRUD and search over the guests table.
type GuestRepo struct {
	db *sql.DB
}

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

var ErrGuestNotFound = errors.New("guest not found")

const guestColumns = `id, first_name, last_name, middle_name, contact_number, email, created_at, updated_at`

func scanGuest(row interface{ Scan(...interface{}) error }) (model.Guest, error) {
	var g model.Guest
	var email sql.NullString
	err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.MiddleName, &g.ContactNumber,
		&email, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return model.Guest{}, err
	}
	if email.Valid {
		e := email.String
		g.Email = &e
	}
	return g, nil
}

// List returns all guests ordered by last then first name.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}

// GetByID returns one guest or ErrGuestNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Guest{}, ErrGuestNotFound
	}
	return g, err
}

// Create inserts a guest and populates the generated ID.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	var email interface{}
	if g.Email != nil {
		email = *g.Email
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (first_name, last_name, middle_name, contact_number, email) VALUES (?, ?, ?, ?, ?)`,
		g.FirstName, g.LastName, g.MiddleName, g.ContactNumber, email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update rewrites a guest's fields.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	var email interface{}
	if g.Email != nil {
		email = *g.Email
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests SET first_name = ?, last_name = ?, middle_name = ?, contact_number = ?, email = ? WHERE id = ?`,
		g.FirstName, g.LastName, g.MiddleName, g.ContactNumber, email, g.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// Delete removes a guest. Guests with bookings are protected by the
// foreign key; callers should surface that as a conflict.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// Search matches the query against names and contact number, case
// insensitively.
func (r *GuestRepo) Search(ctx context.Context, query string) ([]model.Guest, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM guests
		 WHERE LOWER(CONCAT(first_name, ' ', last_name)) LIKE ?
		    OR LOWER(middle_name) LIKE ?
		    OR contact_number LIKE ?
		 ORDER BY last_name, first_name`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guests, nil
}
