package model

import "testing"

func TestPromoUsableOn(t *testing.T) {
	p := Promo{
		Code:          "SUMMER",
		DiscountCents: 1500,
		ValidFrom:     day("2026-06-01"),
		ValidTo:       day("2026-06-30"),
		Active:        true,
	}

	if !p.UsableOn(day("2026-06-01")) {
		t.Error("first day of window should be usable")
	}
	if !p.UsableOn(day("2026-06-30")) {
		t.Error("last day of window should be usable")
	}
	if p.UsableOn(day("2026-05-31")) {
		t.Error("day before window should not be usable")
	}
	if p.UsableOn(day("2026-07-01")) {
		t.Error("day after window should not be usable")
	}

	p.Active = false
	if p.UsableOn(day("2026-06-15")) {
		t.Error("inactive promo should never be usable")
	}
}
