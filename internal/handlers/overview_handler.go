package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/provider"
)

// OverviewHandler serves the dashboard index analytics. All counts and
// percentages are backend-computed; this side only caches and renders.
type OverviewHandler struct {
	registry *provider.Registry
}

func NewOverviewHandler(registry *provider.Registry) *OverviewHandler {
	return &OverviewHandler{registry: registry}
}

func (h *OverviewHandler) Get(c *fiber.Ctx) error {
	p, ok := h.registry.Lookup(middleware.SessionID(c))
	if !ok {
		return sessionGone(c)
	}

	// Read-through: try for fresh aggregates, fall back to the cached
	// copy when the backend is unreachable.
	p.RefreshOverview(c.UserContext())
	return c.JSON(p.Overview())
}
