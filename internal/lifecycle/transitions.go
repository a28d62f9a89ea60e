package lifecycle

import (
	"strings"
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// LedgerEntryRequest tells the caller to post a revenue entry for a
// completed ticket. The engine never writes the ledger itself; it only
// decides whether an entry is owed and for how much.
type LedgerEntryRequest struct {
	TicketNumber string
	CustomerName string
	Amount       float64
}

// Complete closes the ticket from any non-completed state. Any in-flight
// warranty dispatch is cleared; CompletedAt is set exactly once. The second
// return value is non-nil only when finalValue parses to a positive amount.
func Complete(t domain.Ticket, solutionNotes, finalValue string, now time.Time) (domain.Ticket, *LedgerEntryRequest, error) {
	if t.Completed() {
		return t, nil, &ConflictError{Op: "complete", Status: string(t.Status)}
	}

	updated := t
	updated.Status = domain.TicketStatusCompleted
	updated.WarrantyStatus = domain.WarrantyNone
	updated.SolutionNotes = solutionNotes
	updated.FinalValue = finalValue
	completedAt := now
	updated.CompletedAt = &completedAt

	amount := ParseCurrency(finalValue)
	if amount <= 0 {
		return updated, nil, nil
	}
	return updated, &LedgerEntryRequest{
		TicketNumber: t.Number,
		CustomerName: t.CustomerName,
		Amount:       amount,
	}, nil
}

// SendToWarranty dispatches the unit to an external vendor. Requires a
// non-empty RMA company; legal from any main status except COMPLETED.
func SendToWarranty(t domain.Ticket, rmaCompany, trackingCode, invoiceNumber string) (domain.Ticket, error) {
	if strings.TrimSpace(rmaCompany) == "" {
		return t, &ValidationError{Field: "rmaCompany", Reason: "is required"}
	}
	if t.Completed() {
		return t, &ConflictError{Op: "send to warranty", Status: string(t.Status)}
	}

	updated := t
	updated.WarrantyStatus = domain.WarrantyInWarranty
	updated.RMACompany = strings.TrimSpace(rmaCompany)
	updated.TrackingCode = trackingCode
	updated.InvoiceNumber = invoiceNumber
	return updated, nil
}

// MarkArrivedFromWarranty records the unit back from the vendor and moves it
// to the pickup queue. Legal only while dispatched.
func MarkArrivedFromWarranty(t domain.Ticket) (domain.Ticket, error) {
	if !UnderWarranty(t) {
		return t, &ConflictError{Op: "mark arrived", Status: string(t.WarrantyStatus)}
	}

	updated := t
	updated.WarrantyStatus = domain.WarrantyAwaitingPickup
	return updated, nil
}

// DeliverAfterPickupReady hands the unit to the customer and closes the
// ticket. Legal only from the pickup queue. Pickup-path completions never
// post a ledger entry; billing happened before dispatch, if at all.
func DeliverAfterPickupReady(t domain.Ticket, now time.Time) (domain.Ticket, error) {
	if !PickupReady(t) {
		return t, &ConflictError{Op: "deliver", Status: string(t.Status)}
	}

	updated := t
	updated.Status = domain.TicketStatusCompleted
	updated.WarrantyStatus = domain.WarrantyNone
	completedAt := now
	updated.CompletedAt = &completedAt
	return updated, nil
}
