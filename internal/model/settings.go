package model

import "time"

// Settings stores per-staff UI preferences. Missing rows fall back
// to the defaults below on load.
type Settings struct {
	StaffID    uint64    // settings.staff_id
	DarkMode   bool      // settings.dark_mode
	Resolution string    // settings.resolution
	UpdatedAt  time.Time // settings.updated_at
}

// DefaultSettings returns the settings used before a staff member
// has saved anything.
func DefaultSettings(staffID uint64) Settings {
	return Settings{StaffID: staffID, DarkMode: false, Resolution: "1280x720"}
}
