package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/service"
)

// CustomerRequest payload for create and update.
type CustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// CustomerResponse representation.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	City      string    `json:"city,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerDetailResponse joins the customer with their repair and purchase
// history.
type CustomerDetailResponse struct {
	Customer CustomerResponse `json:"customer"`
	Tickets  []TicketResponse `json:"tickets"`
	Sales    []SaleResponse   `json:"sales"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Phone:     c.Phone,
		Email:     c.Email,
		City:      c.City,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

// NewCustomerResponses maps a slice of customers.
func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, NewCustomerResponse(&customers[i]))
	}
	return items
}

// NewCustomerDetailResponse maps the joined view.
func NewCustomerDetailResponse(detail *service.CustomerDetail, now time.Time) CustomerDetailResponse {
	return CustomerDetailResponse{
		Customer: NewCustomerResponse(&detail.Customer),
		Tickets:  NewTicketResponses(detail.Tickets, now),
		Sales:    NewSaleResponses(detail.Sales),
	}
}
