package model

import "time"

// StaffLog is an append-only audit record. Booking lifecycle
// transitions insert their log row inside the same transaction as
// the status writes, so the audit trail can never disagree with the
// persisted state.
type StaffLog struct {
	ID        uint64    // staff_logs.id
	StaffID   uint64    // staff_logs.staff_id
	Action    string    // staff_logs.action
	Details   string    // staff_logs.details
	CreatedAt time.Time // staff_logs.created_at
}
