package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/models"
)

// RequireTier gates a route group on the caller's role tier. The tier
// is derived purely from the role id claim; there is no stored
// permission list to consult.
func RequireTier(required int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID := RoleID(c)
		if roleID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !models.TierAllows(roleID, required) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have access to this area.",
			})
		}
		return c.Next()
	}
}
