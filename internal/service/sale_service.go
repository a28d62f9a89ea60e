package service

import (
	"context"
	"errors"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// SaleService handles point-of-sale checkouts.
type SaleService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
}

// SaleItemInput is one cart line.
type SaleItemInput struct {
	ProductID int64
	Quantity  int
}

// SaleInput describes a checkout.
type SaleInput struct {
	CustomerID    *int64
	PaymentMethod string
	Items         []SaleItemInput
}

// NewSaleService constructs the service.
func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository) *SaleService {
	return &SaleService{sales: sales, products: products}
}

// CreateSale prices the cart from current stock records and persists the
// sale with its stock decrements. Unit prices are captured at sale time.
func (s *SaleService) CreateSale(ctx context.Context, storeID int64, input SaleInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("sale requires at least one item", nil)
	}

	sale := &domain.Sale{
		StoreID:       storeID,
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("item quantity must be positive", nil)
		}
		product, err := s.products.GetByID(ctx, storeID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Quantity < line.Quantity {
			return nil, apperrors.NewConflict("insufficient stock", map[string]any{
				"product_id": product.ID,
				"available":  product.Quantity,
				"requested":  line.Quantity,
			})
		}
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.SalePrice,
		})
		sale.Total += product.SalePrice * float64(line.Quantity)
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperrors.NewConflict("insufficient stock", nil)
		}
		return nil, err
	}
	return sale, nil
}

// ListSales returns the store's sales, newest first.
func (s *SaleService) ListSales(ctx context.Context, storeID int64) ([]domain.Sale, error) {
	return s.sales.ListByStore(ctx, storeID)
}
