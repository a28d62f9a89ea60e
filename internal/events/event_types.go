package events

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketCompleted      EventType = "ticket_completed"
	EventTicketSentToWarranty EventType = "ticket_sent_to_warranty"
	EventTicketArrived        EventType = "ticket_arrived_from_warranty"
	EventTicketDelivered      EventType = "ticket_delivered"
	EventTicketOverdue        EventType = "ticket_overdue"
	EventLedgerEntryPosted    EventType = "ledger_entry_posted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	StoreID      int64       `json:"store_id"`
	TicketNumber string      `json:"ticket_number,omitempty"`
	ActorUserID  *int64      `json:"actor_user_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Kind         domain.TicketKind `json:"kind"`
	Equipment    string            `json:"equipment"`
	CustomerName string            `json:"customer_name"`
}

// TicketCompletedPayload payload.
type TicketCompletedPayload struct {
	SolutionNotes string  `json:"solution_notes"`
	Amount        float64 `json:"amount"`
	LedgerPosted  bool    `json:"ledger_posted"`
}

// TicketWarrantyPayload payload for dispatch/arrival/delivery events.
type TicketWarrantyPayload struct {
	WarrantyStatus domain.WarrantyStatus `json:"warranty_status"`
	RMACompany     string                `json:"rma_company,omitempty"`
	TrackingCode   string                `json:"tracking_code,omitempty"`
}

// TicketOverduePayload payload emitted by the due-date sweep.
type TicketOverduePayload struct {
	DaysElapsed int `json:"days_elapsed"`
}

// LedgerEntryPostedPayload payload.
type LedgerEntryPostedPayload struct {
	EntryID int64   `json:"entry_id"`
	Amount  float64 `json:"amount"`
	Origin  string  `json:"origin"`
}
