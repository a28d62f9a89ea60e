package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/service"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// FinanceHandler manages the cash-ledger endpoints.
type FinanceHandler struct {
	service *service.FinanceService
}

// NewFinanceHandler constructs handler.
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: financeService}
}

// ListEntries GET /finance.
func (h *FinanceHandler) ListEntries(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListEntries(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFinanceEntryResponses(entries)})
}

// CreateEntry POST /finance.
func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	var req dto.CreateFinanceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.FinanceEntryInput{
		Type:          req.Type,
		Status:        req.Status,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if req.EntryDate != nil {
		input.EntryDate = *req.EntryDate
	} else {
		input.EntryDate = time.Now()
	}

	entry, err := h.service.CreateEntry(c.Context(), storeID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFinanceEntryResponse(entry)})
}

// SettleEntry PATCH /finance/:id/status.
func (h *FinanceHandler) SettleEntry(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SettleFinanceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.service.SettleEntry(c.Context(), storeID, id, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": req.Status}})
}

// DeleteEntry DELETE /finance/:id.
func (h *FinanceHandler) DeleteEntry(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteEntry(c.Context(), storeID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Summary GET /finance/summary.
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
