package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// ProductRequest payload for create and update.
type ProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	CostPrice       float64 `json:"cost_price" validate:"gte=0"`
	SalePrice       float64 `json:"sale_price" validate:"gte=0"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	MinimumQuantity int     `json:"minimum_quantity" validate:"gte=0"`
	Barcode         string  `json:"barcode"`
	Supplier        string  `json:"supplier"`
	Location        string  `json:"location"`
}

// ProductResponse representation.
type ProductResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand,omitempty"`
	Model           string    `json:"model,omitempty"`
	CostPrice       float64   `json:"cost_price"`
	SalePrice       float64   `json:"sale_price"`
	Quantity        int       `json:"quantity"`
	MinimumQuantity int       `json:"minimum_quantity"`
	AtRisk          bool      `json:"at_risk"`
	Barcode         string    `json:"barcode,omitempty"`
	Supplier        string    `json:"supplier,omitempty"`
	Location        string    `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Model:           p.Model,
		CostPrice:       p.CostPrice,
		SalePrice:       p.SalePrice,
		Quantity:        p.Quantity,
		MinimumQuantity: p.MinimumQuantity,
		AtRisk:          p.AtRisk(),
		Barcode:         p.Barcode,
		Supplier:        p.Supplier,
		Location:        p.Location,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewProductResponses maps a slice of products.
func NewProductResponses(products []domain.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}
	return items
}
