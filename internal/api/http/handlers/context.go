package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/auth"
	apperrors "github.com/filsox/store-api/pkg/util"
)

// storeScope resolves the caller's store from the request principal. Routes
// using it sit behind auth.RequireStore, so a missing scope here means a
// routing mistake rather than a client error.
func storeScope(c *fiber.Ctx) (int64, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return 0, apperrors.NewUnauthorized("authentication required")
	}
	storeID, scoped := principal.StoreID()
	if !scoped {
		return 0, apperrors.NewForbidden("store scope required")
	}
	return storeID, nil
}

// pathID parses a numeric path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
