package lifecycle

import (
	"testing"
	"time"

	"github.com/filsox/store-api/internal/domain"
)

var baseNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func openTicket(daysAgo int) domain.Ticket {
	return domain.Ticket{
		Number:         "1001",
		Status:         domain.TicketStatusInProgress,
		WarrantyStatus: domain.WarrantyNone,
		OpenedAt:       baseNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestDaysElapsed(t *testing.T) {
	cases := []struct {
		name     string
		openedAt time.Time
		want     int
	}{
		{"same instant", baseNow, 0},
		{"under one day", baseNow.Add(-23 * time.Hour), 0},
		{"exactly one day", baseNow.Add(-24 * time.Hour), 1},
		{"partial day truncates", baseNow.Add(-29*24*time.Hour - 23*time.Hour), 29},
		{"zero time degrades to zero", time.Time{}, 0},
		{"future open date clamps to zero", baseNow.Add(24 * time.Hour), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysElapsed(tc.openedAt, baseNow); got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}

func TestDaysElapsed_MonotonicInNow(t *testing.T) {
	openedAt := baseNow.Add(-10 * 24 * time.Hour)
	prev := -1
	for hour := 0; hour < 24*40; hour += 7 {
		d := DaysElapsed(openedAt, baseNow.Add(time.Duration(hour)*time.Hour))
		if d < prev {
			t.Fatalf("days elapsed decreased from %d to %d at hour %d", prev, d, hour)
		}
		prev = d
	}
}

func TestNearDueOverdueBands(t *testing.T) {
	cases := []struct {
		daysAgo     int
		wantNearDue bool
		wantOverdue bool
	}{
		{0, false, false},
		{24, false, false},
		{25, true, false},
		{29, true, false},
		{30, false, true}, // boundary: day 30 is overdue only
		{31, false, true},
		{120, false, true},
	}
	for _, tc := range cases {
		ticket := openTicket(tc.daysAgo)
		if got := NearDue(ticket, baseNow); got != tc.wantNearDue {
			t.Fatalf("day %d: expected nearDue=%v, got %v", tc.daysAgo, tc.wantNearDue, got)
		}
		if got := Overdue(ticket, baseNow); got != tc.wantOverdue {
			t.Fatalf("day %d: expected overdue=%v, got %v", tc.daysAgo, tc.wantOverdue, got)
		}
	}
}

func TestNearDueOverdue_MutuallyExclusive(t *testing.T) {
	for days := 0; days <= 60; days++ {
		ticket := openTicket(days)
		if NearDue(ticket, baseNow) && Overdue(ticket, baseNow) {
			t.Fatalf("day %d: ticket is both near-due and overdue", days)
		}
	}
}

func TestCompletedNeverUrgent(t *testing.T) {
	for _, days := range []int{0, 25, 30, 365} {
		ticket := openTicket(days)
		ticket.Status = domain.TicketStatusCompleted
		completedAt := baseNow
		ticket.CompletedAt = &completedAt
		if NearDue(ticket, baseNow) {
			t.Fatalf("day %d: completed ticket reported near-due", days)
		}
		if Overdue(ticket, baseNow) {
			t.Fatalf("day %d: completed ticket reported overdue", days)
		}
	}
}

func TestPickupReady(t *testing.T) {
	cases := []struct {
		name     string
		status   domain.TicketStatus
		warranty domain.WarrantyStatus
		want     bool
	}{
		{"warranty pickup", domain.TicketStatusInProgress, domain.WarrantyAwaitingPickup, true},
		{"legacy status pickup", domain.TicketStatusAwaitingPickup, domain.WarrantyNone, true},
		{"both representations", domain.TicketStatusAwaitingPickup, domain.WarrantyAwaitingPickup, true},
		{"in progress", domain.TicketStatusInProgress, domain.WarrantyNone, false},
		{"dispatched", domain.TicketStatusInProgress, domain.WarrantyInWarranty, false},
		{"completed", domain.TicketStatusCompleted, domain.WarrantyNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := domain.Ticket{Status: tc.status, WarrantyStatus: tc.warranty}
			if got := PickupReady(ticket); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestUnknownStatusTolerated(t *testing.T) {
	ticket := openTicket(40)
	ticket.Status = domain.TicketStatus("SOMETHING_NEW")
	if !Overdue(ticket, baseNow) {
		t.Fatalf("unknown status should classify as non-completed, expected overdue")
	}
	if PickupReady(ticket) {
		t.Fatalf("unknown status should not be pickup-ready")
	}
}
