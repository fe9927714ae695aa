package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/selatcheck/dashboard/internal/config"
	"github.com/selatcheck/dashboard/internal/handlers"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/models"
)

// Setup lays out the public and protected areas. Everything behind
// Protected requires the dashboard JWT; the admin panel additionally
// requires the Admin tier and the file screens the Operator tier.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	fileHandler *handlers.FileHandler,
	overviewHandler *handlers.OverviewHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)

	// Protected area
	protected := api.Group("", middleware.Protected(cfg))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/profile", authHandler.Profile)
	protected.Get("/overview", overviewHandler.Get)

	// Admin panel, Admin tier only
	admin := protected.Group("/admin", middleware.RequireTier(models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Post("/admins", adminHandler.CreateAdmin)
	admin.Put("/admins/:id", adminHandler.UpdateAdmin)
	admin.Delete("/admins/:id", adminHandler.DeleteAdmin)

	admin.Get("/roles", adminHandler.ListRoles)
	admin.Put("/roles/:id", adminHandler.RenameRole)

	admin.Get("/tags", adminHandler.ListTags)
	admin.Post("/tags", adminHandler.CreateTag)
	admin.Put("/tags/:id", adminHandler.UpdateTag)
	admin.Delete("/tags/:id", adminHandler.DeleteTag)

	admin.Get("/projects", adminHandler.ListProjects)
	admin.Post("/projects", adminHandler.CreateProject)
	admin.Put("/projects/:id", adminHandler.UpdateProject)
	admin.Delete("/projects/:id", adminHandler.DeleteProject)

	admin.Get("/patient-types", adminHandler.ListPatientTypes)
	admin.Post("/patient-types", adminHandler.CreatePatientType)
	admin.Put("/patient-types/:id", adminHandler.UpdatePatientType)
	admin.Delete("/patient-types/:id", adminHandler.DeletePatientType)

	// File screens, Operator tier and up
	files := protected.Group("/file", middleware.RequireTier(models.RoleOperator))
	files.Get("/", fileHandler.ListFiles)
	files.Post("/upload", fileHandler.Upload)
	files.Post("/refresh", fileHandler.Refresh)
}
