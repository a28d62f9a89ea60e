package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/domain"
)

// RequireRole ensures the principal holds one of the allowed roles. Super
// admins always pass.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.User.Role == domain.RoleSuperAdmin {
			return c.Next()
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireSuperAdmin guards the tenant-provisioning plane.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.User.Role != domain.RoleSuperAdmin {
			return fiber.NewError(http.StatusForbidden, "super admin required")
		}
		return c.Next()
	}
}

// RequireStore ensures the caller is scoped to a store. Routes behind this
// guard can rely on Principal.StoreID returning a value.
func RequireStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if _, scoped := principal.StoreID(); !scoped {
			return fiber.NewError(http.StatusForbidden, "store scope required")
		}
		return c.Next()
	}
}

// RequireModule rejects requests for stores whose plan does not include the
// module. Super admins bypass the toggle.
func RequireModule(module domain.ModuleID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.User.Role == domain.RoleSuperAdmin {
			return c.Next()
		}
		if principal.Store == nil || !principal.Store.HasModule(module) {
			return fiber.NewError(http.StatusForbidden, "module not enabled for this store")
		}
		return c.Next()
	}
}
