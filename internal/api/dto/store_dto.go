package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// CreateStoreRequest payload for tenant provisioning.
type CreateStoreRequest struct {
	Name          string            `json:"name" validate:"required"`
	Address       string            `json:"address"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email" validate:"omitempty,email"`
	ActiveModules []domain.ModuleID `json:"active_modules"`
}

// UpdateStoreRequest payload. Empty fields keep stored values; ActiveModules
// replaces the whole set when present.
type UpdateStoreRequest struct {
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Active        *bool             `json:"active"`
	ActiveModules []domain.ModuleID `json:"active_modules"`
}

// StoreResponse representation.
type StoreResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Address       string            `json:"address,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Email         string            `json:"email,omitempty"`
	Active        bool              `json:"active"`
	ActiveModules []domain.ModuleID `json:"active_modules"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewStoreResponse maps a domain store.
func NewStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		Active:        s.Active,
		ActiveModules: s.ActiveModules,
		CreatedAt:     s.CreatedAt,
	}
}

// NewStoreResponses maps a slice of stores.
func NewStoreResponses(stores []domain.Store) []StoreResponse {
	items := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		items = append(items, NewStoreResponse(&stores[i]))
	}
	return items
}
