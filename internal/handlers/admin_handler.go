package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/listview"
	"github.com/selatcheck/dashboard/internal/middleware"
	"github.com/selatcheck/dashboard/internal/models"
	"github.com/selatcheck/dashboard/internal/provider"
	"github.com/selatcheck/dashboard/internal/validate"
)

// AdminHandler serves every management screen of the admin panel. Each
// list endpoint pages the session's cached collection; each mutation
// goes through the provider so cache coherence rules apply uniformly.
type AdminHandler struct {
	registry *provider.Registry
}

func NewAdminHandler(registry *provider.Registry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

func (h *AdminHandler) provider(c *fiber.Ctx) (*provider.Provider, bool) {
	p, ok := h.registry.Lookup(middleware.SessionID(c))
	return p, ok
}

func sessionGone(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Session expired, please log in again.",
	})
}

func mutationFailed(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func invalidFields(c *fiber.Ctx, fields validate.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Error: true, Message: "Please correct the highlighted fields.", Fields: fields,
	})
}

// --- Users ---

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Users(), listview.MatchFields(
		func(u models.User) string { return u.Username },
		func(u models.User) string { return u.Email },
	)))
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("username", req.Username)
	fields.RequireEmail("email", req.Email)
	fields.RequirePassword("password", req.Password)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.CreateUser(c.UserContext(), gateway.UserPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
		Tags:     req.Tags,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("username", req.Username)
	fields.RequireEmail("email", req.Email)
	// Password is optional on edit; complexity applies only when set.
	if strings.TrimSpace(req.Password) != "" {
		fields.RequirePassword("password", req.Password)
	}
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.UpdateUser(c.UserContext(), int64(id), gateway.UserPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
		Tags:     req.Tags,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	done, message := p.DeleteUser(c.UserContext(), int64(id))
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// --- Admins ---

func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Admins(), listview.MatchFields(
		func(a models.Admin) string { return a.Username },
		func(a models.Admin) string { return a.Email },
	)))
}

func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	var req dto.AdminRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("username", req.Username)
	fields.RequireEmail("email", req.Email)
	fields.RequirePassword("password", req.Password)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.CreateAdmin(c.UserContext(), gateway.AdminPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.AdminRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("username", req.Username)
	fields.RequireEmail("email", req.Email)
	if strings.TrimSpace(req.Password) != "" {
		fields.RequirePassword("password", req.Password)
	}
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.UpdateAdmin(c.UserContext(), int64(id), gateway.AdminPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	done, message := p.DeleteAdmin(c.UserContext(), int64(id))
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// --- Roles ---

func (h *AdminHandler) ListRoles(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Roles(), listview.MatchFields(
		func(r models.Role) string { return r.Name },
	)))
}

func (h *AdminHandler) RenameRole(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.RenameRole(c.UserContext(), int64(id), req.Name)
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// --- Tags ---

func (h *AdminHandler) ListTags(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Tags(), listview.MatchFields(
		func(t models.Tag) string { return t.Name },
	)))
}

func (h *AdminHandler) CreateTag(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	var req dto.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.CreateTag(c.UserContext(), gateway.TagPayload{
		Name:    req.Name,
		Values:  req.Values,
		UserIDs: req.UserIDs,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) UpdateTag(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.UpdateTag(c.UserContext(), int64(id), gateway.TagPayload{
		Name:    req.Name,
		Values:  req.Values,
		UserIDs: req.UserIDs,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) DeleteTag(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	done, message := p.DeleteTag(c.UserContext(), int64(id))
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// --- Projects ---

func (h *AdminHandler) ListProjects(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.Projects(), listview.MatchFields(
		func(pr models.Project) string { return pr.Name },
	)))
}

func (h *AdminHandler) CreateProject(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.CreateProject(c.UserContext(), gateway.ProjectPayload{
		Name:    req.Name,
		UserIDs: req.UserIDs,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) UpdateProject(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.UpdateProject(c.UserContext(), int64(id), gateway.ProjectPayload{
		Name:    req.Name,
		UserIDs: req.UserIDs,
	})
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) DeleteProject(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	done, message := p.DeleteProject(c.UserContext(), int64(id))
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// --- Patient types ---

func (h *AdminHandler) ListPatientTypes(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	return c.JSON(listPage(c, p.PatientTypes(), listview.MatchFields(
		func(pt models.PatientType) string { return pt.Name },
	)))
}

func (h *AdminHandler) CreatePatientType(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.CreatePatientType(c.UserContext(), req.Name)
	if !done {
		return mutationFailed(c, message)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) UpdatePatientType(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	var req dto.NameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	fields := validate.FieldErrors{}
	fields.Require("name", req.Name)
	if !fields.OK() {
		return invalidFields(c, fields)
	}

	done, message := p.UpdatePatientType(c.UserContext(), int64(id), req.Name)
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *AdminHandler) DeletePatientType(c *fiber.Ctx) error {
	p, ok := h.provider(c)
	if !ok {
		return sessionGone(c)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidBody(c)
	}
	done, message := p.DeletePatientType(c.UserContext(), int64(id))
	if !done {
		return mutationFailed(c, message)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}
