package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/filsox/store-api/internal/auth"
	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// AuthService handles login, password management and operator accounts.
type AuthService struct {
	users      repository.UserRepository
	stores     repository.StoreRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles repositories for the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	StoreRepo repository.StoreRepository
}

// LoginResult carries the issued token and the caller's store context.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
	Store     *domain.Store
}

// UserInput describes operator account create/update payload.
type UserInput struct {
	Username    string
	DisplayName string
	Password    string
	Role        domain.UserRole
	Active      *bool
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		stores:     deps.StoreRepo,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login validates credentials and issues a JWT. Operators of deactivated
// stores cannot log in; super admins have no store.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	var store *domain.Store
	if user.StoreID != nil {
		store, err = s.stores.GetByID(ctx, *user.StoreID)
		if err != nil {
			return nil, err
		}
		if !store.Active {
			return nil, apperrors.NewForbidden("store deactivated")
		}
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.StoreID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user, Store: store}, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}
	if len(next) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	hashed, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	return s.users.Update(ctx, user)
}

// CreateUser registers an operator in the caller's store. Only the super
// admin plane may mint SUPER_ADMIN accounts, and those carry no store.
func (s *AuthService) CreateUser(ctx context.Context, storeID *int64, input UserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, apperrors.NewValidationError("username required", nil)
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleOperator
	}
	if role == domain.RoleSuperAdmin && storeID != nil {
		return nil, apperrors.NewValidationError("super admins do not belong to a store", nil)
	}
	if role != domain.RoleSuperAdmin && storeID == nil {
		return nil, apperrors.NewValidationError("store required for operator roles", nil)
	}

	hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		StoreID:      storeID,
		Username:     strings.TrimSpace(input.Username),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hashed,
		Role:         role,
		Active:       true,
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser edits an operator account within the caller's store.
func (s *AuthService) UpdateUser(ctx context.Context, storeID *int64, id int64, input UserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameStore(user.StoreID, storeID) {
		return nil, apperrors.NewForbidden("user belongs to another store")
	}

	if strings.TrimSpace(input.DisplayName) != "" {
		user.DisplayName = strings.TrimSpace(input.DisplayName)
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, apperrors.NewValidationError("password must be at least 6 characters", nil)
		}
		hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an operator account within the caller's store.
func (s *AuthService) DeleteUser(ctx context.Context, storeID *int64, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sameStore(user.StoreID, storeID) {
		return apperrors.NewForbidden("user belongs to another store")
	}
	return s.users.Delete(ctx, id)
}

// ListUsers returns the store's operator accounts.
func (s *AuthService) ListUsers(ctx context.Context, storeID int64) ([]domain.User, error) {
	return s.users.ListByStore(ctx, storeID)
}

func sameStore(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
