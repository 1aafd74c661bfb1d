package model

import "time"

// StaffRole is the closed set of roles a staff account can hold.
// Role checks happen per route in middleware; there is no ambient
// "current staff" state anywhere in the service.
type StaffRole string

const (
	RoleAdmin        StaffRole = "ADMIN"
	RoleManager      StaffRole = "MANAGER"
	RoleReceptionist StaffRole = "RECEPTIONIST"
)

// ParseStaffRole validates a raw string against the closed enum.
func ParseStaffRole(s string) (StaffRole, bool) {
	switch StaffRole(s) {
	case RoleAdmin, RoleManager, RoleReceptionist:
		return StaffRole(s), true
	}
	return "", false
}

// Staff represents a row in the `staff` table. Passwords are stored
// only as bcrypt hashes.
//
// Fields:
//  ID           - primary key identifier.
//  Email        - unique login email.
//  FullName     - display name.
//  PasswordHash - bcrypt hashed password.
//  Role         - one of ADMIN, MANAGER, RECEPTIONIST.
//  IsActive     - whether the account can log in.
type Staff struct {
	ID           uint64    // staff.id
	Email        string    // staff.email
	FullName     string    // staff.full_name
	PasswordHash string    // staff.password_hash
	Role         StaffRole // staff.role
	IsActive     bool      // staff.is_active
	CreatedAt    time.Time // staff.created_at
	UpdatedAt    time.Time // staff.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only
// the SHA-256 hash of the raw token is persisted.
//
// Fields:
//  ID        - primary key identifier.
//  StaffID   - owner of the token.
//  TokenHash - SHA-256 hex digest of the token value.
//  ExpiresAt - expiration timestamp.
//  RevokedAt - when the token was revoked (null if still active).
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	StaffID   uint64     // refresh_tokens.staff_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
