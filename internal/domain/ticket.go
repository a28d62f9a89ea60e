package domain

import "time"

// TicketStatus is the main lifecycle axis. The persisted column is an open
// string: unknown values coming back from older rows are kept as-is rather
// than rejected.
type TicketStatus string

const (
	TicketStatusOpen           TicketStatus = "OPEN"
	TicketStatusInProgress     TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted      TicketStatus = "COMPLETED"
	TicketStatusAwaitingPickup TicketStatus = "AWAITING_PICKUP"
	TicketStatusCancelled      TicketStatus = "CANCELLED"
)

// WarrantyStatus tracks the RMA sub-lifecycle. Orthogonal to TicketStatus:
// a ticket can be IN_PROGRESS while AWAITING_RETURN from an external vendor.
type WarrantyStatus string

const (
	WarrantyNone           WarrantyStatus = "NONE"
	WarrantyInWarranty     WarrantyStatus = "IN_WARRANTY"
	WarrantyAwaitingReturn WarrantyStatus = "AWAITING_RETURN"
	WarrantyAwaitingPickup WarrantyStatus = "AWAITING_PICKUP"
)

// TicketKind distinguishes the two intake forms.
type TicketKind string

const (
	TicketKindPhone   TicketKind = "PHONE"
	TicketKindGeneral TicketKind = "GENERAL"
)

// Ticket is the service-order aggregate. Owned by exactly one store.
type Ticket struct {
	ID      int64
	StoreID int64
	Number  string

	CustomerName     string
	CustomerDocument string
	CustomerPhone    string
	CustomerCity     string

	Kind        TicketKind
	Equipment   string
	Brand       string
	Serial      string
	Accessories string

	ReportedProblem string
	ExtraInfo       string
	SolutionNotes   string
	Technician      string

	Status         TicketStatus
	WarrantyStatus WarrantyStatus

	// FinalValue is a locale-formatted amount ("1.250,00") as entered by the
	// operator. Parsed defensively at the point of use, never normalized in
	// storage.
	FinalValue string

	RMACompany    string
	InvoiceNumber string
	TrackingCode  string

	OpenedAt    time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Completed reports whether the ticket reached its terminal state.
func (t Ticket) Completed() bool {
	return t.Status == TicketStatusCompleted
}
