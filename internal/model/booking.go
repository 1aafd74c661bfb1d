package model

import "time"

// BookingStatus is the closed set of booking lifecycle states.
// CONFIRMED is the initial state; CHECKED_OUT and CANCELLED are
// terminal. Transitions are restricted to the matrix encoded in
// CanTransition so an invalid state change can never be persisted.
type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// ParseBookingStatus validates a raw string against the closed enum.
// The boolean result is false for unknown values.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Active reports whether a booking in this state counts against room
// availability. Only CONFIRMED and CHECKED_IN bookings block a room.
func (s BookingStatus) Active() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// CanTransition reports whether the state machine permits moving from
// the receiver state to the target state:
//
//	CONFIRMED  -> CHECKED_IN | CANCELLED
//	CHECKED_IN -> CHECKED_OUT | CANCELLED
//
// Everything else, including self transitions and any move out of a
// terminal state, is rejected.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingConfirmed:
		return to == BookingCheckedIn || to == BookingCancelled
	case BookingCheckedIn:
		return to == BookingCheckedOut || to == BookingCancelled
	}
	return false
}

// Booking represents a row in the `bookings` table. Dates are UTC
// calendar dates and the stay is the half-open interval
// [CheckInDate, CheckOutDate): the check-out day itself is not
// occupied, which is what allows back-to-back bookings on the
// turnover day.
//
// Fields:
//  ID               - primary key identifier.
//  GuestID          - guest the stay belongs to.
//  RoomID           - room being occupied.
//  CheckInDate      - first occupied night (inclusive).
//  CheckOutDate     - departure date (exclusive), strictly after check-in.
//  Status           - lifecycle state, see BookingStatus.
//  TotalAmountCents - nights x nightly rate, in cents.
//  DiscountCents    - promo discount in cents, never exceeds the total.
//  PromoCode        - code the discount came from, if any.
//  Notes            - free-text note entered at the front desk.
type Booking struct {
	ID               uint64        // bookings.id
	GuestID          uint64        // bookings.guest_id
	RoomID           uint64        // bookings.room_id
	CheckInDate      time.Time     // bookings.check_in_date
	CheckOutDate     time.Time     // bookings.check_out_date
	Status           BookingStatus // bookings.status
	TotalAmountCents uint32        // bookings.total_amount_cents
	DiscountCents    uint32        // bookings.discount_cents
	PromoCode        *string       // bookings.promo_code (nullable)
	Notes            string        // bookings.notes
	CreatedAt        time.Time     // bookings.created_at
	UpdatedAt        time.Time     // bookings.updated_at
}

// Nights returns the length of the stay in nights. A valid booking
// always has at least one night.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// FinalAmountCents is the amount actually charged: the total minus
// the promo discount.
func (b *Booking) FinalAmountCents() uint32 {
	if b.DiscountCents > b.TotalAmountCents {
		return 0
	}
	return b.TotalAmountCents - b.DiscountCents
}

// IsCheckInOn reports whether the booking's check-in falls on the
// given UTC calendar date.
func (b *Booking) IsCheckInOn(day time.Time) bool {
	return SameDate(b.CheckInDate, day)
}

// ValidStayRange reports whether [checkIn, checkOut) is a legal stay,
// i.e. the check-out date is strictly after the check-in date.
// Zero-night stays are invalid.
func ValidStayRange(checkIn, checkOut time.Time) bool {
	return checkOut.After(checkIn)
}

// Overlaps implements the half-open interval overlap predicate: the
// ranges [aStart, aEnd) and [bStart, bEnd) conflict iff
// aStart < bEnd AND bStart < aEnd. Ranges that merely touch at a
// boundary, such as a check-out on another booking's check-in day,
// do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// SameDate reports whether two instants fall on the same UTC
// calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// BookingStats is the aggregate returned by the stats endpoint.
//
// Fields:
//  Total         - all bookings ever recorded.
//  Active        - bookings in CONFIRMED or CHECKED_IN state.
//  TodayCheckIns - bookings whose check-in date is today (UTC).
type BookingStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	TodayCheckIns int `json:"today_check_ins"`
}
