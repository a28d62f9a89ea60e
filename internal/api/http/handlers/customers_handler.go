package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/service"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// CustomersHandler manages the CRM endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// ListCustomers GET /customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	customers, err := h.service.ListCustomers(c.Context(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponses(customers)})
}

// CreateCustomer POST /customers.
func (h *CustomersHandler) CreateCustomer(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	req, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}
	customer, err := h.service.CreateCustomer(c.Context(), storeID, customerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// UpdateCustomer PUT /customers/:id.
func (h *CustomersHandler) UpdateCustomer(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req, err := parseCustomerRequest(c)
	if err != nil {
		return err
	}
	customer, err := h.service.UpdateCustomer(c.Context(), storeID, id, customerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// DeleteCustomer DELETE /customers/:id.
func (h *CustomersHandler) DeleteCustomer(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCustomer(c.Context(), storeID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetCustomerDetail GET /customers/:id/detail joins the customer with their
// repair and purchase history.
func (h *CustomersHandler) GetCustomerDetail(c *fiber.Ctx) error {
	storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.GetCustomerDetail(c.Context(), storeID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerDetailResponse(detail, time.Now())})
}

func parseCustomerRequest(c *fiber.Ctx) (dto.CustomerRequest, error) {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

func customerInput(req dto.CustomerRequest) service.CustomerInput {
	return service.CustomerInput{
		Name:     req.Name,
		Document: req.Document,
		Phone:    req.Phone,
		Email:    req.Email,
		City:     req.City,
		Address:  req.Address,
		Notes:    req.Notes,
	}
}
