package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/provider"
	"github.com/selatcheck/dashboard/internal/session"
	"github.com/selatcheck/dashboard/internal/validate"
)

type AuthHandler struct {
	gw       *gateway.Client
	sessions *session.Manager
	registry *provider.Registry
}

func NewAuthHandler(gw *gateway.Client, sessions *session.Manager, registry *provider.Registry) *AuthHandler {
	return &AuthHandler{gw: gw, sessions: sessions, registry: registry}
}

// Login runs the LoggedOut → LoggingIn → LoggedIn transition. A failed
// credential check drops back to LoggedOut and the session stores stay
// untouched.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	fields := validate.FieldErrors{}
	fields.RequireEmail("email", req.Email)
	fields.Require("password", req.Password)
	if !fields.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Please correct the highlighted fields.", Fields: fields,
		})
	}

	state := session.LoggingIn

	res := h.gw.Login(c.UserContext(), req.Email, req.Password)
	if !res.Success {
		state = session.LoggedOut
		slog.Info("login rejected", "email", req.Email, "state", state.String())
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: res.Message,
		})
	}

	ident := session.Identity{
		Token:  res.Data.Token,
		Email:  res.Data.Email,
		Name:   res.Data.UserName,
		RoleID: res.Data.RoleID,
		UserID: res.Data.UserID,
	}

	sessionID, signed, err := h.sessions.Establish(ident, req.RememberMe)
	if err != nil {
		slog.Error("session establish failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	p := provider.New(h.gw, ident.Token)
	p.Prime(c.UserContext())
	h.registry.Attach(sessionID, p)

	state = session.LoggedIn
	slog.Info("login succeeded", "user_id", ident.UserID, "state", state.String())

	return c.JSON(dto.LoginResponse{
		Token:    signed,
		UserID:   ident.UserID,
		UserName: ident.Name,
		Email:    ident.Email,
		RoleID:   ident.RoleID,
	})
}

// Logout clears both storage scopes and drops the session's provider.
// It always reports success: whatever storage or the backend did, the
// user is logged out of the dashboard.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)

	if ident, ok := h.sessions.Resolve(sessionID); ok {
		// Best-effort server-side invalidation; the outcome does not
		// change the response.
		go func(token string) {
			if res := h.gw.Logout(context.Background(), token); !res.Success {
				slog.Warn("backend logout failed", "message", res.Message)
			}
		}(ident.Token)
	}

	h.sessions.Logout(sessionID)
	h.registry.Detach(sessionID)

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	fields := validate.FieldErrors{}
	fields.RequireEmail("email", req.Email)
	if !fields.OK() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Please correct the highlighted fields.", Fields: fields,
		})
	}

	res := h.gw.ForgotPassword(c.UserContext(), req.Email)
	if !res.Success {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: res.Message,
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Password reset instructions sent."})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	ident, ok := h.sessions.Resolve(middleware.SessionID(c))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Session expired, please log in again.",
		})
	}
	return c.JSON(dto.ProfileResponse{
		UserID:   ident.UserID,
		UserName: ident.Name,
		Email:    ident.Email,
		RoleID:   ident.RoleID,
	})
}
