package service

import (
	"context"
	"strings"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// StoreService is the super-admin plane: tenant provisioning and feature
// module toggles.
type StoreService struct {
	stores repository.StoreRepository
}

// StoreInput describes tenant create/update payload.
type StoreInput struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	Active        *bool
	ActiveModules []domain.ModuleID
}

// NewStoreService constructs the service.
func NewStoreService(stores repository.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

// CreateStore provisions a tenant. New stores start active with every
// module enabled unless the payload narrows the list.
func (s *StoreService) CreateStore(ctx context.Context, input StoreInput) (*domain.Store, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	modules := input.ActiveModules
	if len(modules) == 0 {
		modules = append([]domain.ModuleID{}, domain.AllModules...)
	}
	if err := validateModules(modules); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	store := &domain.Store{
		Name:          strings.TrimSpace(input.Name),
		Address:       input.Address,
		Phone:         input.Phone,
		Email:         input.Email,
		Active:        active,
		ActiveModules: modules,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// UpdateStore edits a tenant, including its module grants.
func (s *StoreService) UpdateStore(ctx context.Context, id int64, input StoreInput) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) != "" {
		store.Name = strings.TrimSpace(input.Name)
	}
	store.Address = input.Address
	store.Phone = input.Phone
	store.Email = input.Email
	if input.Active != nil {
		store.Active = *input.Active
	}
	if input.ActiveModules != nil {
		if err := validateModules(input.ActiveModules); err != nil {
			return nil, err
		}
		store.ActiveModules = input.ActiveModules
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore fetches one tenant.
func (s *StoreService) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	return s.stores.GetByID(ctx, id)
}

// ListStores returns all tenants.
func (s *StoreService) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.stores.List(ctx)
}

func validateModules(modules []domain.ModuleID) error {
	for _, m := range modules {
		known := false
		for _, candidate := range domain.AllModules {
			if m == candidate {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewValidationError("unknown module", map[string]any{"module": string(m)})
		}
	}
	return nil
}
