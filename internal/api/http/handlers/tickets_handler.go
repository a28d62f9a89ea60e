package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	"github.com/filsox/store-api/internal/service"
	"github.com/filsox/store-api/pkg/qr"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// TicketsHandler manages service-order endpoints.
type TicketsHandler struct {
	service  *service.TicketService
	tracking config.TrackingConfig
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, tracking config.TrackingConfig) *TicketsHandler {
	return &TicketsHandler{service: ticketService, tracking: tracking}
}

// CreateTicket POST /os.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.Context(), storeID, service.TicketCreateInput{
		Number:           req.Number,
		CustomerName:     req.CustomerName,
		CustomerDocument: req.CustomerDocument,
		CustomerPhone:    req.CustomerPhone,
		CustomerCity:     req.CustomerCity,
		Kind:             req.Kind,
		Equipment:        req.Equipment,
		Brand:            req.Brand,
		Serial:           req.Serial,
		Accessories:      req.Accessories,
		ReportedProblem:  req.ReportedProblem,
		ExtraInfo:        req.ExtraInfo,
		Technician:       req.Technician,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// ListTickets GET /os.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.Context(), storeID, parseTicketQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets, time.Now())})
}

// GetTicket GET /os/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.Context(), storeID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// UpdateTicket PATCH /os/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateTicket(c.Context(), storeID, id, service.TicketUpdateInput{
		CustomerName:     req.CustomerName,
		CustomerDocument: req.CustomerDocument,
		CustomerPhone:    req.CustomerPhone,
		CustomerCity:     req.CustomerCity,
		Equipment:        req.Equipment,
		Brand:            req.Brand,
		Serial:           req.Serial,
		Accessories:      req.Accessories,
		ReportedProblem:  req.ReportedProblem,
		ExtraInfo:        req.ExtraInfo,
		SolutionNotes:    req.SolutionNotes,
		FinalValue:       req.FinalValue,
		Technician:       req.Technician,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// DeleteTicket DELETE /os/:number.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	number := strings.TrimSpace(c.Params("number"))
	if number == "" {
		return apperrors.NewValidationError("number required", nil)
	}
	if err := h.service.DeleteTicket(c.Context(), storeID, number); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Queues GET /os/queues.
func (h *TicketsHandler) Queues(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	queues, err := h.service.Queues(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQueuesResponse(queues, time.Now())})
}

// QueueCounts GET /os/queues/counts.
func (h *TicketsHandler) QueueCounts(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	counts, err := h.service.QueueCounts(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// Complete POST /os/:id/complete.
func (h *TicketsHandler) Complete(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CompleteTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.Complete(c.Context(), storeID, id, req.SolutionNotes, req.FinalValue, req.PaymentMethod)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// SendToWarranty POST /os/:id/warranty.
func (h *TicketsHandler) SendToWarranty(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.WarrantyDispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.service.SendToWarranty(c.Context(), storeID, id, req.RMACompany, req.TrackingCode, req.InvoiceNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// MarkArrived POST /os/:id/warranty/arrived.
func (h *TicketsHandler) MarkArrived(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.MarkArrivedFromWarranty(c.Context(), storeID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// Deliver POST /os/:id/deliver.
func (h *TicketsHandler) Deliver(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.Deliver(c.Context(), storeID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, time.Now())})
}

// QRCode GET /os/:id/qrcode returns a PNG pointing at the public tracking
// page for the ticket.
func (h *TicketsHandler) QRCode(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.Context(), storeID, id)
	if err != nil {
		return err
	}

	size := 256
	if raw := c.Query("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}
	png, err := qr.GeneratePNG(fmt.Sprintf("%s/%s", h.tracking.BaseURL, ticket.Number), size)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				filter.Statuses = append(filter.Statuses, domain.TicketStatus(trimmed))
			}
		}
	}
	if raw := c.Query("warranty_status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				filter.WarrantyStatuses = append(filter.WarrantyStatuses, domain.WarrantyStatus(trimmed))
			}
		}
	}
	if raw := c.Query("kind"); raw != "" {
		kind := domain.TicketKind(raw)
		filter.Kind = &kind
	}
	if raw := c.Query("search"); raw != "" {
		term := raw
		filter.SearchTerm = &term
	}
	if raw := c.Query("opened_from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.OpenedFrom = &parsed
		}
	}
	if raw := c.Query("opened_to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.OpenedTo = &parsed
		}
	}
	filter.Limit = c.QueryInt("limit", 0)
	filter.Offset = c.QueryInt("offset", 0)
	return filter
}
