package queue

import (
	"strings"
	"testing"
)

func TestNotificationText(t *testing.T) {
	ev := BookingEvent{
		Kind:         EventBookingCreated,
		BookingID:    12,
		GuestName:    "Maria Cruz",
		RoomNumber:   "204",
		CheckInDate:  "2026-09-01",
		CheckOutDate: "2026-09-04",
	}

	msg := notificationText(ev)
	for _, want := range []string{"#12", "Maria Cruz", "204", "2026-09-01"} {
		if !strings.Contains(msg, want) {
			t.Errorf("created message %q missing %q", msg, want)
		}
	}

	ev.Kind = EventBookingCancelled
	if !strings.Contains(notificationText(ev), "Cancelled") {
		t.Error("cancel message should mention cancellation")
	}

	ev.Kind = "booking.unknown"
	if !strings.Contains(notificationText(ev), "#12") {
		t.Error("fallback message should still identify the booking")
	}
}
