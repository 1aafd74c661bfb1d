package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// PromoRepo provides CRUD over promo codes plus the validity lookup used
// during booking creation.
type PromoRepo struct {
	db *sql.DB
}

func NewPromoRepo(db *sql.DB) *PromoRepo { return &PromoRepo{db: db} }

var ErrPromoNotFound = errors.New("promo not found")

const promoColumns = `id, code, description, discount_cents, valid_from, valid_to, active, created_at, updated_at`

func scanPromo(row interface{ Scan(...interface{}) error }) (model.Promo, error) {
	var p model.Promo
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.DiscountCents,
		&p.ValidFrom, &p.ValidTo, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns all promos, newest first.
func (r *PromoRepo) List(ctx context.Context) ([]model.Promo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+promoColumns+` FROM promos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	promos := make([]model.Promo, 0)
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return promos, nil
}

// GetValidByCode returns the promo for a code if it is active and the
// given UTC date falls inside its validity window. ErrPromoNotFound covers
// both "no such code" and "code exists but is not currently usable" so the
// caller cannot probe for codes.
func (r *PromoRepo) GetValidByCode(ctx context.Context, code string, day time.Time) (model.Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	p, err := scanPromo(r.db.QueryRowContext(ctx,
		`SELECT `+promoColumns+` FROM promos
		 WHERE code = ? AND active = TRUE AND valid_from <= ? AND valid_to >= ?`,
		code, day, day))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Promo{}, ErrPromoNotFound
	}
	return p, err
}

// Create inserts a promo and populates the generated ID. Codes are stored
// upper-cased so lookups are case insensitive.
func (r *PromoRepo) Create(ctx context.Context, p *model.Promo) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO promos (code, description, discount_cents, valid_from, valid_to, active) VALUES (?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(strings.TrimSpace(p.Code)), p.Description, p.DiscountCents, p.ValidFrom, p.ValidTo, p.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites a promo's fields.
func (r *PromoRepo) Update(ctx context.Context, p *model.Promo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE promos SET code = ?, description = ?, discount_cents = ?, valid_from = ?, valid_to = ?, active = ? WHERE id = ?`,
		strings.ToUpper(strings.TrimSpace(p.Code)), p.Description, p.DiscountCents, p.ValidFrom, p.ValidTo, p.Active, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// SetActive toggles the manual kill switch.
func (r *PromoRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE promos SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// Delete removes a promo. Bookings keep the code string they were created
// with, so deleting a promo never touches historical bookings.
func (r *PromoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPromoNotFound
	}
	return nil
}
