package model

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		want                   bool
	}{
		{"identical ranges", "2026-01-01", "2026-01-05", "2026-01-01", "2026-01-05", true},
		{"contained range", "2026-01-01", "2026-01-10", "2026-01-03", "2026-01-05", true},
		{"partial overlap front", "2026-01-01", "2026-01-05", "2026-01-04", "2026-01-08", true},
		{"partial overlap back", "2026-01-04", "2026-01-08", "2026-01-01", "2026-01-05", true},
		{"single shared night", "2026-01-01", "2026-01-05", "2026-01-04", "2026-01-05", true},
		{"checkout equals checkin", "2026-01-01", "2026-01-05", "2026-01-05", "2026-01-08", false},
		{"checkin equals checkout", "2026-01-05", "2026-01-08", "2026-01-01", "2026-01-05", false},
		{"disjoint before", "2026-01-01", "2026-01-03", "2026-01-10", "2026-01-12", false},
		{"disjoint after", "2026-01-10", "2026-01-12", "2026-01-01", "2026-01-03", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aIn), day(tc.aOut), day(tc.bIn), day(tc.bOut))
			if got != tc.want {
				t.Errorf("Overlaps([%s,%s), [%s,%s)) = %v, want %v",
					tc.aIn, tc.aOut, tc.bIn, tc.bOut, got, tc.want)
			}
			// The predicate is symmetric.
			if Overlaps(day(tc.bIn), day(tc.bOut), day(tc.aIn), day(tc.aOut)) != got {
				t.Errorf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestValidStayRange(t *testing.T) {
	if !ValidStayRange(day("2026-01-01"), day("2026-01-02")) {
		t.Error("one-night stay should be valid")
	}
	if ValidStayRange(day("2026-01-01"), day("2026-01-01")) {
		t.Error("zero-night stay should be invalid")
	}
	if ValidStayRange(day("2026-01-05"), day("2026-01-01")) {
		t.Error("reversed range should be invalid")
	}
}

func TestCanTransition(t *testing.T) {
	all := []BookingStatus{BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled}
	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingConfirmed: {BookingCheckedIn: true, BookingCancelled: true},
		BookingCheckedIn: {BookingCheckedOut: true, BookingCancelled: true},
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransition(to); got != want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStatusActive(t *testing.T) {
	if !BookingConfirmed.Active() || !BookingCheckedIn.Active() {
		t.Error("CONFIRMED and CHECKED_IN must block availability")
	}
	if BookingCheckedOut.Active() || BookingCancelled.Active() {
		t.Error("terminal states must not block availability")
	}
}

func TestParseBookingStatus(t *testing.T) {
	if _, ok := ParseBookingStatus("CONFIRMED"); !ok {
		t.Error("CONFIRMED should parse")
	}
	if _, ok := ParseBookingStatus("confirmed"); ok {
		t.Error("lowercase should not parse")
	}
	if _, ok := ParseBookingStatus("PENDING"); ok {
		t.Error("unknown status should not parse")
	}
}

func TestNightsAndAmounts(t *testing.T) {
	b := Booking{
		CheckInDate:      day("2026-03-10"),
		CheckOutDate:     day("2026-03-12"),
		TotalAmountCents: 20000,
		DiscountCents:    2500,
	}
	if got := b.Nights(); got != 2 {
		t.Errorf("Nights() = %d, want 2", got)
	}
	if got := b.FinalAmountCents(); got != 17500 {
		t.Errorf("FinalAmountCents() = %d, want 17500", got)
	}

	b.DiscountCents = 30000
	if got := b.FinalAmountCents(); got != 0 {
		t.Errorf("FinalAmountCents() with oversized discount = %d, want 0", got)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 5, 1, 0, 1, 0, 0, time.UTC)
	if !SameDate(a, b) {
		t.Error("same UTC calendar day should match")
	}
	if SameDate(a, b.AddDate(0, 0, 1)) {
		t.Error("different days should not match")
	}
}

func TestIsCheckInOn(t *testing.T) {
	b := Booking{CheckInDate: day("2026-07-04"), CheckOutDate: day("2026-07-06")}
	if !b.IsCheckInOn(day("2026-07-04")) {
		t.Error("check-in day should match")
	}
	if b.IsCheckInOn(day("2026-07-05")) {
		t.Error("mid-stay day should not match")
	}
}
