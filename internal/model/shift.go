package model

import "time"

// StaffShift assigns a staff member to a working window on a given
// calendar date. Start and end are clock times in "HH:MM" form; a
// shift whose end is before its start rolls over midnight.
type StaffShift struct {
	ID        uint64    // staff_shifts.id
	StaffID   uint64    // staff_shifts.staff_id
	ShiftDate time.Time // staff_shifts.shift_date (UTC calendar date)
	StartTime string    // staff_shifts.start_time
	EndTime   string    // staff_shifts.end_time
	CreatedAt time.Time // staff_shifts.created_at
	UpdatedAt time.Time // staff_shifts.updated_at
}
