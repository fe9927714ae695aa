package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/selatcheck/dashboard/internal/config"
)

// CORS admits the dashboard front end. Methods cover exactly what the
// route table registers; credentials stay off because auth travels in
// the Authorization header, not cookies.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	})
}
