// Package repository holds the data access layer. Each repository owns one
// table and returns sentinel errors so handlers can map failures to HTTP
// statuses without string matching. Methods with a Tx suffix run inside a
// caller-owned transaction; the handler opens it, locks the room row first
// and commits booking and room writes together.
package repository

import "errors"

// ErrRoomNotFound is returned when a referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a referenced booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")
