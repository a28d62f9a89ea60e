package lifecycle

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// Day bands for temporal urgency. The bands do not overlap: day 30 is
// overdue, not near-due. Earlier revisions of these rules disagreed on the
// boundary (one screen used <= 30 for near-due); the non-overlapping form is
// the corrected one and is pinned by tests.
const (
	NearDueDays = 25
	OverdueDays = 30
)

// DaysElapsed returns whole days between openedAt and now, truncated. A zero
// openedAt degrades to 0 rather than erroring; missing open dates are
// tolerated by every consumer.
func DaysElapsed(openedAt, now time.Time) int {
	if openedAt.IsZero() || now.Before(openedAt) {
		return 0
	}
	return int(now.Sub(openedAt) / (24 * time.Hour))
}

// NearDue reports whether the ticket has been open long enough to warn the
// operator: 25 to 29 days. Completed tickets are never temporally urgent.
func NearDue(t domain.Ticket, now time.Time) bool {
	if t.Completed() {
		return false
	}
	d := DaysElapsed(t.OpenedAt, now)
	return d >= NearDueDays && d < OverdueDays
}

// Overdue reports whether the ticket has been open 30 days or more without
// completion.
func Overdue(t domain.Ticket, now time.Time) bool {
	if t.Completed() {
		return false
	}
	return DaysElapsed(t.OpenedAt, now) >= OverdueDays
}

// PickupReady reports whether the repaired unit is waiting for the customer.
// WarrantyStatus is the source of truth; the AWAITING_PICKUP main status is
// accepted as a legacy representation still present in stored rows, read
// here and written nowhere.
func PickupReady(t domain.Ticket) bool {
	if t.Completed() {
		return false
	}
	return t.WarrantyStatus == domain.WarrantyAwaitingPickup ||
		t.Status == domain.TicketStatusAwaitingPickup
}

// UnderWarranty reports whether the ticket is dispatched to an external
// vendor. AWAITING_RETURN counts the same as IN_WARRANTY for queue purposes.
func UnderWarranty(t domain.Ticket) bool {
	return t.WarrantyStatus == domain.WarrantyInWarranty ||
		t.WarrantyStatus == domain.WarrantyAwaitingReturn
}
