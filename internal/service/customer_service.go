package service

import (
	"context"
	"strings"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// CustomerService manages the CRM records and their history views.
type CustomerService struct {
	customers repository.CustomerRepository
	tickets   repository.TicketRepository
	sales     repository.SaleRepository
}

// CustomerInput describes create/update payload.
type CustomerInput struct {
	Name     string
	Document string
	Phone    string
	Email    string
	City     string
	Address  string
	Notes    string
}

// CustomerDetail joins a customer with their ticket and purchase history.
type CustomerDetail struct {
	Customer domain.Customer `json:"customer"`
	Tickets  []domain.Ticket `json:"tickets"`
	Sales    []domain.Sale   `json:"sales"`
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, tickets repository.TicketRepository, sales repository.SaleRepository) *CustomerService {
	return &CustomerService{customers: customers, tickets: tickets, sales: sales}
}

// CreateCustomer registers a CRM record.
func (s *CustomerService) CreateCustomer(ctx context.Context, storeID int64, input CustomerInput) (*domain.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	customer := &domain.Customer{
		StoreID:  storeID,
		Name:     strings.TrimSpace(input.Name),
		Document: strings.TrimSpace(input.Document),
		Phone:    strings.TrimSpace(input.Phone),
		Email:    strings.TrimSpace(input.Email),
		City:     input.City,
		Address:  input.Address,
		Notes:    input.Notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer applies edits to a CRM record.
func (s *CustomerService) UpdateCustomer(ctx context.Context, storeID, id int64, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Document = strings.TrimSpace(input.Document)
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Email = strings.TrimSpace(input.Email)
	customer.City = input.City
	customer.Address = input.Address
	customer.Notes = input.Notes

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a CRM record.
func (s *CustomerService) DeleteCustomer(ctx context.Context, storeID, id int64) error {
	return s.customers.Delete(ctx, storeID, id)
}

// ListCustomers returns the store's CRM records.
func (s *CustomerService) ListCustomers(ctx context.Context, storeID int64) ([]domain.Customer, error) {
	return s.customers.ListByStore(ctx, storeID)
}

// GetCustomerDetail returns the customer with ticket and purchase history.
// Tickets link by document since older service orders predate the CRM.
func (s *CustomerService) GetCustomerDetail(ctx context.Context, storeID, id int64) (*CustomerDetail, error) {
	customer, err := s.customers.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	detail := &CustomerDetail{Customer: *customer}
	if customer.Document != "" {
		tickets, err := s.tickets.ListByCustomerDocument(ctx, storeID, customer.Document)
		if err != nil {
			return nil, err
		}
		detail.Tickets = tickets
	}
	sales, err := s.sales.ListByCustomer(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	detail.Sales = sales
	return detail, nil
}
