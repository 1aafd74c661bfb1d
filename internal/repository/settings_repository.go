package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// SettingsRepo stores per-staff UI preferences. A staff member with no row
// gets the defaults.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the stored settings for a staff member, or the defaults when
// none have been saved yet.
func (r *SettingsRepo) Get(ctx context.Context, staffID uint64) (model.Settings, error) {
	var s model.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT staff_id, dark_mode, resolution, updated_at FROM settings WHERE staff_id = ?`,
		staffID).Scan(&s.StaffID, &s.DarkMode, &s.Resolution, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(staffID), nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// Upsert saves settings, creating the row on first save.
func (r *SettingsRepo) Upsert(ctx context.Context, s model.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (staff_id, dark_mode, resolution) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE dark_mode = VALUES(dark_mode), resolution = VALUES(resolution)`,
		s.StaffID, s.DarkMode, s.Resolution)
	return err
}
