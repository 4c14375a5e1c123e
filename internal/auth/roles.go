package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-cms/internal/domain"
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// RequireRole ensures the authenticated principal carries the required role.
// It must be chained after the authentication middleware.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authorization required")
		}
		if principal.Role != required {
			return apperrors.NewForbidden("Insufficient role")
		}
		return c.Next()
	}
}
