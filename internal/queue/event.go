// Package queue defines booking lifecycle events and the background
// consumer that turns them into staff notifications.
package queue

// Queue name shared by the publisher and the consumer.
const BookingEventsQueue = "booking.events"

// Event kinds carried in BookingEvent.Kind.
const (
	EventBookingCreated    = "booking.created"
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
	EventBookingCancelled  = "booking.cancelled"
)

// BookingEvent is published after a booking lifecycle transition commits.
// It carries enough context for consumers to notify or log without querying
// the primary database.
type BookingEvent struct {
	Kind             string `json:"kind"`
	BookingID        uint64 `json:"booking_id"`
	GuestID          uint64 `json:"guest_id"`
	GuestName        string `json:"guest_name"`
	RoomID           uint64 `json:"room_id"`
	RoomNumber       string `json:"room_number"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	TotalAmountCents uint32 `json:"total_amount_cents"`
	StaffID          uint64 `json:"staff_id"`
	OccurredAt       string `json:"occurred_at"`
}
