package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/service"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// ProductsHandler manages the stock module endpoints.
type ProductsHandler struct {
	service *service.InventoryService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(inventoryService *service.InventoryService) *ProductsHandler {
	return &ProductsHandler{service: inventoryService}
}

// ListProducts GET /products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	products, err := h.service.ListProducts(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponses(products)})
}

// CreateProduct POST /products.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(c.Context(), storeID, productInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// UpdateProduct PUT /products/:id.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(c.Context(), storeID, id, productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// DeleteProduct DELETE /products/:id.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.Context(), storeID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Metrics GET /products/metrics.
func (h *ProductsHandler) Metrics(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	metrics, err := h.service.Metrics(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": metrics})
}

func parseProductRequest(c *fiber.Ctx) (dto.ProductRequest, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:            req.Name,
		Brand:           req.Brand,
		Model:           req.Model,
		CostPrice:       req.CostPrice,
		SalePrice:       req.SalePrice,
		Quantity:        req.Quantity,
		MinimumQuantity: req.MinimumQuantity,
		Barcode:         req.Barcode,
		Supplier:        req.Supplier,
		Location:        req.Location,
	}
}
