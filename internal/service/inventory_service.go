package service

import (
	"context"
	"strings"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/lifecycle"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// InventoryService manages stock items and their dashboard metrics.
type InventoryService struct {
	products repository.ProductRepository
}

// ProductInput describes product create/update payload.
type ProductInput struct {
	Name            string
	Brand           string
	Model           string
	CostPrice       float64
	SalePrice       float64
	Quantity        int
	MinimumQuantity int
	Barcode         string
	Supplier        string
	Location        string
}

// StockMetrics summarizes inventory health for the dashboard.
type StockMetrics struct {
	ProductCount  int     `json:"product_count"`
	AtRiskCount   int     `json:"at_risk_count"`
	CostValuation float64 `json:"cost_valuation"`
	SaleValuation float64 `json:"sale_valuation"`
}

// NewInventoryService constructs the service.
func NewInventoryService(products repository.ProductRepository) *InventoryService {
	return &InventoryService{products: products}
}

// CreateProduct registers a stock item.
func (s *InventoryService) CreateProduct(ctx context.Context, storeID int64, input ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Quantity < 0 || input.MinimumQuantity < 0 {
		return nil, apperrors.NewValidationError("quantities cannot be negative", nil)
	}

	product := &domain.Product{
		StoreID:         storeID,
		Name:            strings.TrimSpace(input.Name),
		Brand:           input.Brand,
		Model:           input.Model,
		CostPrice:       input.CostPrice,
		SalePrice:       input.SalePrice,
		Quantity:        input.Quantity,
		MinimumQuantity: input.MinimumQuantity,
		Barcode:         input.Barcode,
		Supplier:        input.Supplier,
		Location:        input.Location,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies edits to a stock item.
func (s *InventoryService) UpdateProduct(ctx context.Context, storeID, id int64, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Brand = input.Brand
	product.Model = input.Model
	product.CostPrice = input.CostPrice
	product.SalePrice = input.SalePrice
	product.Quantity = input.Quantity
	product.MinimumQuantity = input.MinimumQuantity
	product.Barcode = input.Barcode
	product.Supplier = input.Supplier
	product.Location = input.Location

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a stock item.
func (s *InventoryService) DeleteProduct(ctx context.Context, storeID, id int64) error {
	return s.products.Delete(ctx, storeID, id)
}

// ListProducts returns the store's stock.
func (s *InventoryService) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	return s.products.ListByStore(ctx, storeID)
}

// Metrics derives inventory health from a fresh stock snapshot.
func (s *InventoryService) Metrics(ctx context.Context, storeID int64) (StockMetrics, error) {
	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return StockMetrics{}, err
	}
	cost, sale := lifecycle.StockValuation(products)
	return StockMetrics{
		ProductCount:  len(products),
		AtRiskCount:   lifecycle.StockRiskCount(products),
		CostValuation: cost,
		SaleValuation: sale,
	}, nil
}
