package model

import "time"

// Promo represents a row in the `promos` table. A promo is usable
// when it is active and the current UTC date falls inside its
// validity window (both ends inclusive).
//
// Fields:
//  ID            - primary key identifier.
//  Code          - unique code entered at booking time.
//  Description   - human readable summary.
//  DiscountCents - flat discount in cents applied to the booking total.
//  ValidFrom     - first day the code works (inclusive).
//  ValidTo       - last day the code works (inclusive).
//  Active        - manual kill switch independent of the date window.
type Promo struct {
	ID            uint64    // promos.id
	Code          string    // promos.code
	Description   string    // promos.description
	DiscountCents uint32    // promos.discount_cents
	ValidFrom     time.Time // promos.valid_from
	ValidTo       time.Time // promos.valid_to
	Active        bool      // promos.active
	CreatedAt     time.Time // promos.created_at
	UpdatedAt     time.Time // promos.updated_at
}

// UsableOn reports whether the promo can be applied on the given UTC
// calendar date.
func (p *Promo) UsableOn(day time.Time) bool {
	if !p.Active {
		return false
	}
	d := day.UTC().Truncate(24 * time.Hour)
	return !d.Before(p.ValidFrom) && !d.After(p.ValidTo)
}
