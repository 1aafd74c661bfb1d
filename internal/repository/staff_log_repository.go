package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// StaffLogRepo records who did what at the front desk. Lifecycle handlers
// write entries inside the same transaction as the state change, so a log
// row exists iff the change committed.
type StaffLogRepo struct {
	db *sql.DB
}

func NewStaffLogRepo(db *sql.DB) *StaffLogRepo { return &StaffLogRepo{db: db} }

const staffLogColumns = `id, staff_id, action, details, created_at`

// AddTx appends an audit entry within an open transaction.
func (r *StaffLogRepo) AddTx(ctx context.Context, tx *sql.Tx, staffID uint64, action, details string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO staff_logs (staff_id, action, details) VALUES (?, ?, ?)`,
		staffID, action, details)
	return err
}

// Add appends an audit entry outside any transaction, for actions that do
// not touch booking or room state.
func (r *StaffLogRepo) Add(ctx context.Context, staffID uint64, action, details string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO staff_logs (staff_id, action, details) VALUES (?, ?, ?)`,
		staffID, action, details)
	return err
}

func collectLogs(rows *sql.Rows) ([]model.StaffLog, error) {
	defer rows.Close()
	logs := make([]model.StaffLog, 0)
	for rows.Next() {
		var l model.StaffLog
		if err := rows.Scan(&l.ID, &l.StaffID, &l.Action, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListAll returns recent entries across all staff, newest first.
func (r *StaffLogRepo) ListAll(ctx context.Context, limit int) ([]model.StaffLog, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+staffLogColumns+` FROM staff_logs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectLogs(rows)
}

// ListByStaff returns recent entries of one staff member, newest first.
func (r *StaffLogRepo) ListByStaff(ctx context.Context, staffID uint64, limit int) ([]model.StaffLog, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+staffLogColumns+` FROM staff_logs WHERE staff_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		staffID, limit)
	if err != nil {
		return nil, err
	}
	return collectLogs(rows)
}

// PurgeOlderThan deletes entries created before the cutoff and returns the
// number removed.
func (r *StaffLogRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
