package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/selatcheck/dashboard/internal/config"
	"github.com/selatcheck/dashboard/internal/dto"

	jwtware "github.com/gofiber/contrib/jwt"
)

// Protected gates a route group on the dashboard JWT. A missing or
// expired token redirects the client to the login screen via 401; the
// front end shows its transient toast on that signal.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: please log in again.",
			})
		},
	})
}

// SessionID extracts the session id claim set at login. Empty when the
// route is not behind Protected.
func SessionID(c *fiber.Ctx) string {
	claims := tokenClaims(c)
	if claims == nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}

// RoleID extracts the role id claim; 0 when absent.
func RoleID(c *fiber.Ctx) int64 {
	claims := tokenClaims(c)
	if claims == nil {
		return 0
	}
	if v, ok := claims["role_id"].(float64); ok {
		return int64(v)
	}
	return 0
}

func tokenClaims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}
