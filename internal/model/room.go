package model

import "time"

// RoomStatus is the closed set of physical room states. Only the
// booking lifecycle flips a room between AVAILABLE and OCCUPIED;
// MAINTENANCE is set by the inventory endpoints. Free-form status
// strings are rejected at the API boundary via ParseRoomStatus.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// ParseRoomStatus validates a raw string against the closed enum.
// The boolean result is false for unknown values.
func ParseRoomStatus(s string) (RoomStatus, bool) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return RoomStatus(s), true
	}
	return "", false
}

// Room represents a row in the `rooms` table. The nightly rate is
// stored in integer cents to avoid floating point drift in totals.
//
// Fields:
//  ID         - primary key identifier.
//  RoomNumber - display number, unique across the hotel.
//  Type       - room category (Standard, Deluxe, ...).
//  RateCents  - nightly rate in cents, never negative.
//  Capacity   - maximum number of guests, always positive.
//  Status     - one of AVAILABLE, OCCUPIED, MAINTENANCE.
//  Floor      - floor the room is on.
//  Amenities  - free-text amenity summary.
type Room struct {
	ID          uint64     // rooms.id
	RoomNumber  string     // rooms.room_number
	Type        string     // rooms.type
	RateCents   uint32     // rooms.rate_cents
	Capacity    uint16     // rooms.capacity
	Status      RoomStatus // rooms.status
	Floor       int        // rooms.floor
	Description string     // rooms.description
	Amenities   string     // rooms.amenities
	CreatedAt   time.Time  // rooms.created_at
	UpdatedAt   time.Time  // rooms.updated_at
}
