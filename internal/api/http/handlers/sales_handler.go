package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/service"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// SalesHandler manages counter-sale endpoints.
type SalesHandler struct {
	service *service.SaleService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(saleService *service.SaleService) *SalesHandler {
	return &SalesHandler{service: saleService}
}

// ListSales GET /sales.
func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	sales, err := h.service.ListSales(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSaleResponses(sales)})
}

// CreateSale POST /sales.
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	sale, err := h.service.CreateSale(c.Context(), storeID, service.SaleInput{
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSaleResponse(sale)})
}
