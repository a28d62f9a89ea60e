package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/filsox/store-api/internal/domain"
	"github.com/filsox/store-api/internal/repository"
	apperrors "github.com/filsox/store-api/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Store is nil for super
// admins, who operate across tenants.
type Principal struct {
	User  *domain.User
	Store *domain.Store
}

// StoreID returns the caller's store scope. Super admins have none.
func (p *Principal) StoreID() (int64, bool) {
	if p.User == nil || p.User.StoreID == nil {
		return 0, false
	}
	return *p.User.StoreID, true
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	stores repository.StoreRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, stores repository.StoreRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, stores: stores}
}

// Handle enforces authentication for protected routes. The user and their
// store are reloaded on every request so deactivation takes effect
// immediately, not at token expiry.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return apperrors.NewUnauthorized("invalid token subject")
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if !user.Active {
		return apperrors.NewUnauthorized("account disabled")
	}

	principal := &Principal{User: user}
	if user.StoreID != nil {
		store, err := m.stores.GetByID(c.Context(), *user.StoreID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("store not found")
			}
			return apperrors.MapError(err)
		}
		if !store.Active {
			return apperrors.NewForbidden("store deactivated")
		}
		principal.Store = store
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
