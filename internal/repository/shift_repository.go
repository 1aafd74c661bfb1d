package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ShiftRepo persists the front-desk shift roster.
type ShiftRepo struct {
	db *sql.DB
}

func NewShiftRepo(db *sql.DB) *ShiftRepo { return &ShiftRepo{db: db} }

var ErrShiftNotFound = errors.New("shift not found")

const shiftColumns = `id, staff_id, shift_date, start_time, end_time, created_at, updated_at`

func scanShift(row interface{ Scan(...interface{}) error }) (model.StaffShift, error) {
	var s model.StaffShift
	err := row.Scan(&s.ID, &s.StaffID, &s.ShiftDate, &s.StartTime, &s.EndTime,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListByDate returns all shifts on one UTC calendar day, earliest start
// first.
func (r *ShiftRepo) ListByDate(ctx context.Context, day time.Time) ([]model.StaffShift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shiftColumns+` FROM staff_shifts WHERE shift_date = ? ORDER BY start_time, id`, day)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

// ListForStaff returns shifts of one staff member from the given day
// onward.
func (r *ShiftRepo) ListForStaff(ctx context.Context, staffID uint64, from time.Time) ([]model.StaffShift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shiftColumns+` FROM staff_shifts WHERE staff_id = ? AND shift_date >= ? ORDER BY shift_date, start_time`,
		staffID, from)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func collectShifts(rows *sql.Rows) ([]model.StaffShift, error) {
	defer rows.Close()
	shifts := make([]model.StaffShift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}

// CurrentShift returns the shift covering the given day and clock time
// ("HH:MM") for one staff member, or ErrShiftNotFound. Shifts that roll
// over midnight are not matched; the roster models them as two entries.
func (r *ShiftRepo) CurrentShift(ctx context.Context, staffID uint64, day time.Time, clock string) (model.StaffShift, error) {
	s, err := scanShift(r.db.QueryRowContext(ctx,
		`SELECT `+shiftColumns+` FROM staff_shifts
		 WHERE staff_id = ? AND shift_date = ? AND start_time <= ? AND end_time > ?
		 ORDER BY start_time LIMIT 1`,
		staffID, day, clock, clock))
	if errors.Is(err, sql.ErrNoRows) {
		return model.StaffShift{}, ErrShiftNotFound
	}
	return s, err
}

// Create inserts a shift and populates the generated ID.
func (r *ShiftRepo) Create(ctx context.Context, s *model.StaffShift) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO staff_shifts (staff_id, shift_date, start_time, end_time) VALUES (?, ?, ?, ?)`,
		s.StaffID, s.ShiftDate, s.StartTime, s.EndTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// Update rewrites a shift's fields.
func (r *ShiftRepo) Update(ctx context.Context, s *model.StaffShift) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE staff_shifts SET staff_id = ?, shift_date = ?, start_time = ?, end_time = ? WHERE id = ?`,
		s.StaffID, s.ShiftDate, s.StartTime, s.EndTime, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShiftNotFound
	}
	return nil
}

// Delete removes a shift from the roster.
func (r *ShiftRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff_shifts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShiftNotFound
	}
	return nil
}
