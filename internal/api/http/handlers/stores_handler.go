package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/dto"
	"github.com/filsox/store-api/internal/service"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// StoresHandler manages the super-admin tenant plane.
type StoresHandler struct {
	stores *service.StoreService
	users  *service.AuthService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(storeService *service.StoreService, authService *service.AuthService) *StoresHandler {
	return &StoresHandler{stores: storeService, users: authService}
}

// ListStores GET /admin/stores.
func (h *StoresHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.stores.ListStores(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponses(stores)})
}

// GetStore GET /admin/stores/:id.
func (h *StoresHandler) GetStore(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	store, err := h.stores.GetStore(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// CreateStore POST /admin/stores.
func (h *StoresHandler) CreateStore(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	store, err := h.stores.CreateStore(c.Context(), service.StoreInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		ActiveModules: req.ActiveModules,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// UpdateStore PATCH /admin/stores/:id toggles modules, activation and
// contact data.
func (h *StoresHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	store, err := h.stores.UpdateStore(c.Context(), id, service.StoreInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Active:        req.Active,
		ActiveModules: req.ActiveModules,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStoreResponse(store)})
}

// CreateStoreUser POST /admin/stores/:id/users provisions the first operator
// accounts of a new tenant.
func (h *StoresHandler) CreateStoreUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.stores.GetStore(c.Context(), id); err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Context(), &id, service.UserInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
