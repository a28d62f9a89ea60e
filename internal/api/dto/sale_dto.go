package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// SaleItemRequest is one cart line.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest payload for checkout.
type CreateSaleRequest struct {
	CustomerID    *int64            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse is one line of a recorded sale.
type SaleItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SaleResponse representation.
type SaleResponse struct {
	ID            int64              `json:"id"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewSaleResponse maps a domain sale.
func NewSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}

// NewSaleResponses maps a slice of sales.
func NewSaleResponses(sales []domain.Sale) []SaleResponse {
	items := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, NewSaleResponse(&sales[i]))
	}
	return items
}
