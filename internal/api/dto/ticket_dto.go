package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/lifecycle"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Number           string            `json:"number"`
	CustomerName     string            `json:"customer_name" validate:"required"`
	CustomerDocument string            `json:"customer_document"`
	CustomerPhone    string            `json:"customer_phone"`
	CustomerCity     string            `json:"customer_city"`
	Kind             domain.TicketKind `json:"kind"`
	Equipment        string            `json:"equipment" validate:"required"`
	Brand            string            `json:"brand"`
	Serial           string            `json:"serial"`
	Accessories      string            `json:"accessories"`
	ReportedProblem  string            `json:"reported_problem" validate:"required"`
	ExtraInfo        string            `json:"extra_info"`
	Technician       string            `json:"technician"`
}

// UpdateTicketRequest carries partial intake edits; absent fields keep their
// stored values.
type UpdateTicketRequest struct {
	CustomerName     *string `json:"customer_name"`
	CustomerDocument *string `json:"customer_document"`
	CustomerPhone    *string `json:"customer_phone"`
	CustomerCity     *string `json:"customer_city"`
	Equipment        *string `json:"equipment"`
	Brand            *string `json:"brand"`
	Serial           *string `json:"serial"`
	Accessories      *string `json:"accessories"`
	ReportedProblem  *string `json:"reported_problem"`
	ExtraInfo        *string `json:"extra_info"`
	SolutionNotes    *string `json:"solution_notes"`
	FinalValue       *string `json:"final_value"`
	Technician       *string `json:"technician"`
}

// CompleteTicketRequest payload for the completion action.
type CompleteTicketRequest struct {
	SolutionNotes string `json:"solution_notes" validate:"required"`
	FinalValue    string `json:"final_value"`
	PaymentMethod string `json:"payment_method"`
}

// WarrantyDispatchRequest payload for sending a unit to an external vendor.
type WarrantyDispatchRequest struct {
	RMACompany    string `json:"rma_company" validate:"required"`
	TrackingCode  string `json:"tracking_code"`
	InvoiceNumber string `json:"invoice_number"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID               int64                 `json:"id"`
	Number           string                `json:"number"`
	CustomerName     string                `json:"customer_name"`
	CustomerDocument string                `json:"customer_document,omitempty"`
	CustomerPhone    string                `json:"customer_phone,omitempty"`
	CustomerCity     string                `json:"customer_city,omitempty"`
	Kind             domain.TicketKind     `json:"kind"`
	Equipment        string                `json:"equipment"`
	Brand            string                `json:"brand,omitempty"`
	Serial           string                `json:"serial,omitempty"`
	Accessories      string                `json:"accessories,omitempty"`
	ReportedProblem  string                `json:"reported_problem"`
	ExtraInfo        string                `json:"extra_info,omitempty"`
	SolutionNotes    string                `json:"solution_notes,omitempty"`
	Technician       string                `json:"technician,omitempty"`
	Status           domain.TicketStatus   `json:"status"`
	WarrantyStatus   domain.WarrantyStatus `json:"warranty_status"`
	FinalValue       string                `json:"final_value,omitempty"`
	RMACompany       string                `json:"rma_company,omitempty"`
	InvoiceNumber    string                `json:"invoice_number,omitempty"`
	TrackingCode     string                `json:"tracking_code,omitempty"`
	DaysElapsed      int                   `json:"days_elapsed"`
	OpenedAt         time.Time             `json:"opened_at"`
	CompletedAt      *time.Time            `json:"completed_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// QueuesResponse groups tickets by operational urgency.
type QueuesResponse struct {
	InProgress     []TicketResponse `json:"in_progress"`
	NearDue        []TicketResponse `json:"near_due"`
	Overdue        []TicketResponse `json:"overdue"`
	UnderWarranty  []TicketResponse `json:"under_warranty"`
	AwaitingPickup []TicketResponse `json:"awaiting_pickup"`
	Completed      []TicketResponse `json:"completed"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket, now time.Time) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		Number:           t.Number,
		CustomerName:     t.CustomerName,
		CustomerDocument: t.CustomerDocument,
		CustomerPhone:    t.CustomerPhone,
		CustomerCity:     t.CustomerCity,
		Kind:             t.Kind,
		Equipment:        t.Equipment,
		Brand:            t.Brand,
		Serial:           t.Serial,
		Accessories:      t.Accessories,
		ReportedProblem:  t.ReportedProblem,
		ExtraInfo:        t.ExtraInfo,
		SolutionNotes:    t.SolutionNotes,
		Technician:       t.Technician,
		Status:           t.Status,
		WarrantyStatus:   t.WarrantyStatus,
		FinalValue:       t.FinalValue,
		RMACompany:       t.RMACompany,
		InvoiceNumber:    t.InvoiceNumber,
		TrackingCode:     t.TrackingCode,
		DaysElapsed:      lifecycle.DaysElapsed(t.OpenedAt, now),
		OpenedAt:         t.OpenedAt,
		CompletedAt:      t.CompletedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// NewTicketResponses maps a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket, now time.Time) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i], now))
	}
	return items
}

// NewQueuesResponse maps a classified queue set.
func NewQueuesResponse(queues lifecycle.QueueSet, now time.Time) QueuesResponse {
	return QueuesResponse{
		InProgress:     NewTicketResponses(queues.InProgress, now),
		NearDue:        NewTicketResponses(queues.NearDue, now),
		Overdue:        NewTicketResponses(queues.Overdue, now),
		UnderWarranty:  NewTicketResponses(queues.UnderWarranty, now),
		AwaitingPickup: NewTicketResponses(queues.AwaitingPickup, now),
		Completed:      NewTicketResponses(queues.Completed, now),
	}
}
