package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/filsox/store-api/internal/domain"
)

func TestComplete_PositiveValuePostsLedgerRequest(t *testing.T) {
	ticket := openTicket(5)
	ticket.CustomerName = "Maria Souza"

	updated, ledger, err := Complete(ticket, "Replaced screen", "1.250,00", baseNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Status != domain.TicketStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}
	if updated.WarrantyStatus != domain.WarrantyNone {
		t.Fatalf("expected warranty cleared, got %s", updated.WarrantyStatus)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(baseNow) {
		t.Fatalf("expected completedAt=%v, got %v", baseNow, updated.CompletedAt)
	}
	if updated.SolutionNotes != "Replaced screen" || updated.FinalValue != "1.250,00" {
		t.Fatalf("solution/value not persisted: %q %q", updated.SolutionNotes, updated.FinalValue)
	}
	if ledger == nil {
		t.Fatalf("expected ledger entry request")
	}
	if ledger.Amount != 1250.00 {
		t.Fatalf("expected amount 1250.00, got %v", ledger.Amount)
	}
	if ledger.TicketNumber != "1001" {
		t.Fatalf("expected ticket number carried, got %q", ledger.TicketNumber)
	}
}

func TestComplete_ZeroValuePostsNothing(t *testing.T) {
	for _, value := range []string{"0", "", "abc", "0,00"} {
		_, ledger, err := Complete(openTicket(5), "", value, baseNow)
		if err != nil {
			t.Fatalf("value %q: expected no error, got %v", value, err)
		}
		if ledger != nil {
			t.Fatalf("value %q: expected no ledger request, got %+v", value, ledger)
		}
	}
}

func TestComplete_AlreadyCompletedConflicts(t *testing.T) {
	ticket := openTicket(5)
	done, _, err := Complete(ticket, "fixed", "50,00", baseNow)
	require.NoError(t, err)

	again, ledger, err := Complete(done, "again", "99,00", baseNow.Add(time.Hour))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ledger != nil {
		t.Fatalf("conflicting complete must not request a ledger entry")
	}
	// no-op on failure
	require.Equal(t, done, again)
}

func TestComplete_ClearsInFlightWarranty(t *testing.T) {
	ticket := openTicket(10)
	ticket.WarrantyStatus = domain.WarrantyAwaitingReturn

	updated, _, err := Complete(ticket, "vendor fixed it", "", baseNow)
	require.NoError(t, err)
	require.Equal(t, domain.WarrantyNone, updated.WarrantyStatus)
}

func TestSendToWarranty(t *testing.T) {
	ticket := openTicket(3)

	updated, err := SendToWarranty(ticket, " Acme RMA ", "BR123", "NF-42")
	require.NoError(t, err)
	require.Equal(t, domain.WarrantyInWarranty, updated.WarrantyStatus)
	require.Equal(t, "Acme RMA", updated.RMACompany)
	require.Equal(t, "BR123", updated.TrackingCode)
	require.Equal(t, "NF-42", updated.InvoiceNumber)
	// main status untouched; the axes are independent
	require.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestSendToWarranty_EmptyCompanyRejected(t *testing.T) {
	ticket := openTicket(3)
	for _, company := range []string{"", "   "} {
		unchanged, err := SendToWarranty(ticket, company, "", "")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("company %q: expected ValidationError, got %v", company, err)
		}
		if unchanged.WarrantyStatus != domain.WarrantyNone {
			t.Fatalf("company %q: warrantyStatus mutated to %s", company, unchanged.WarrantyStatus)
		}
	}
}

func TestSendToWarranty_CompletedTicketRejected(t *testing.T) {
	ticket := openTicket(3)
	done, _, err := Complete(ticket, "", "", baseNow)
	require.NoError(t, err)

	_, err = SendToWarranty(done, "Acme", "", "")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestMarkArrivedFromWarranty(t *testing.T) {
	cases := []struct {
		warranty domain.WarrantyStatus
		wantErr  bool
	}{
		{domain.WarrantyInWarranty, false},
		{domain.WarrantyAwaitingReturn, false},
		{domain.WarrantyNone, true},
		{domain.WarrantyAwaitingPickup, true},
	}
	for _, tc := range cases {
		ticket := openTicket(3)
		ticket.WarrantyStatus = tc.warranty
		updated, err := MarkArrivedFromWarranty(ticket)
		if tc.wantErr {
			var conflict *ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("from %s: expected ConflictError, got %v", tc.warranty, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("from %s: expected no error, got %v", tc.warranty, err)
		}
		if updated.WarrantyStatus != domain.WarrantyAwaitingPickup {
			t.Fatalf("from %s: expected AWAITING_PICKUP, got %s", tc.warranty, updated.WarrantyStatus)
		}
	}
}

func TestDeliverAfterPickupReady(t *testing.T) {
	ticket := openTicket(3)
	ticket.WarrantyStatus = domain.WarrantyAwaitingPickup

	updated, err := DeliverAfterPickupReady(ticket, baseNow)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCompleted, updated.Status)
	require.Equal(t, domain.WarrantyNone, updated.WarrantyStatus)
	require.NotNil(t, updated.CompletedAt)
}

func TestDeliver_LegacyStatusRepresentation(t *testing.T) {
	ticket := openTicket(3)
	ticket.Status = domain.TicketStatusAwaitingPickup

	updated, err := DeliverAfterPickupReady(ticket, baseNow)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCompleted, updated.Status)
}

func TestDeliver_NotPickupReadyConflicts(t *testing.T) {
	ticket := openTicket(3)
	_, err := DeliverAfterPickupReady(ticket, baseNow)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestWarrantyRoundTrip(t *testing.T) {
	ticket := openTicket(3)

	dispatched, err := SendToWarranty(ticket, "Acme RMA", "BR123", "")
	require.NoError(t, err)

	arrived, err := MarkArrivedFromWarranty(dispatched)
	require.NoError(t, err)
	require.Equal(t, domain.WarrantyAwaitingPickup, arrived.WarrantyStatus)

	delivered, err := DeliverAfterPickupReady(arrived, baseNow)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCompleted, delivered.Status)
	require.Equal(t, domain.WarrantyNone, delivered.WarrantyStatus)

	// input snapshots were never mutated along the way
	require.Equal(t, domain.WarrantyNone, ticket.WarrantyStatus)
	require.Equal(t, domain.WarrantyInWarranty, dispatched.WarrantyStatus)
}
