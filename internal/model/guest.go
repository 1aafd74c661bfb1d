package model

import (
	"strings"
	"time"
)

// Guest represents a row in the `guests` table.
//
// Fields:
//  ID            - primary key identifier.
//  FirstName     - given name, required.
//  LastName      - family name, required.
//  MiddleName    - optional middle name.
//  ContactNumber - phone number used by the front desk.
//  Email         - optional email for notifications.
type Guest struct {
	ID            uint64    // guests.id
	FirstName     string    // guests.first_name
	LastName      string    // guests.last_name
	MiddleName    string    // guests.middle_name
	ContactNumber string    // guests.contact_number
	Email         *string   // guests.email (nullable)
	CreatedAt     time.Time // guests.created_at
	UpdatedAt     time.Time // guests.updated_at
}

// FullName joins the name parts, skipping an empty middle name.
func (g *Guest) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{g.FirstName, g.MiddleName, g.LastName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}
