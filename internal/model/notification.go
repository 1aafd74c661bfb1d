package model

import "time"

// Notification is a message visible to all staff. Rows are written
// either directly via the API or by the booking event consumer.
type Notification struct {
	ID        uint64    // notifications.id
	SenderID  *uint64   // notifications.sender_id (null for system messages)
	Message   string    // notifications.message
	Read      bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
