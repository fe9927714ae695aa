package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/selatcheck/dashboard/internal/config"
	"github.com/selatcheck/dashboard/internal/database"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/filestatus"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/handlers"
	"github.com/selatcheck/dashboard/internal/logging"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/provider"
	"github.com/selatcheck/dashboard/internal/routes"
	"github.com/selatcheck/dashboard/internal/session"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.BackendBaseURL == "" {
		slog.Error("BACKEND_BASE_URL environment variable is required")
		os.Exit(1)
	}

	// Database (durable session scope + error log sink)
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	// Log + session cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Remote data gateway to the Selat Check backend
	gw := gateway.New(cfg.BackendBaseURL)

	// Session scopes
	sessions := session.NewManager(
		session.NewDurableStore(database.DB, cfg.JWTExpiry),
		session.NewMemoryStore(),
		cfg.JWTSecret,
		cfg.JWTExpiry,
	)
	registry := provider.NewRegistry()

	// File status push channel: fan every update out across live sessions
	statusHub := filestatus.NewHub()
	statusHub.Subscribe(func(ev filestatus.Event) {
		registry.Each(func(p *provider.Provider) {
			p.ApplyFileStatus(ev.FileID, ev.FileStatus, ev.DownloadLink)
		})
	})

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	if cfg.StatusHubURL != "" {
		consumer := filestatus.NewConsumer(cfg.StatusHubURL, statusHub, cfg.StatusReconnectDelay)
		go consumer.Run(consumerCtx)
	} else {
		slog.Warn("STATUS_HUB_URL not set; file status updates require manual refresh")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(gw, sessions, registry)
	adminHandler := handlers.NewAdminHandler(registry)
	fileHandler := handlers.NewFileHandler(registry, sessions)
	overviewHandler := handlers.NewOverviewHandler(registry)
	healthHandler := handlers.NewHealthHandler(registry)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authHandler, adminHandler, fileHandler, overviewHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	stopConsumer()
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
