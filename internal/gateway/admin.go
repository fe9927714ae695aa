package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/selatcheck/dashboard/internal/models"
)

// Write payloads mirror the modal forms: only mutable fields travel.

type TagPayload struct {
	Name    string   `json:"name"`
	Values  []string `json:"values"`
	UserIDs []int64  `json:"user_ids"`
}

type UserPayload struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	RoleID   int64    `json:"role_id"`
	Tags     []string `json:"tags"`
}

type AdminPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type ProjectPayload struct {
	Name    string  `json:"name"`
	UserIDs []int64 `json:"user_ids"`
}

type PatientTypePayload struct {
	Name string `json:"name"`
}

type RolePayload struct {
	Name string `json:"name"`
}

func (c *Client) FetchRoles(ctx context.Context, token string) Result[[]models.Role] {
	return request[[]models.Role](ctx, c, http.MethodGet, "/api/admin/roles", token, nil)
}

// RenameRole is the only role mutation the product exposes.
func (c *Client) RenameRole(ctx context.Context, token string, id int64, payload RolePayload) Result[models.Role] {
	return request[models.Role](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/roles/%d", id), token, payload)
}

func (c *Client) FetchTags(ctx context.Context, token string) Result[[]models.Tag] {
	return request[[]models.Tag](ctx, c, http.MethodGet, "/api/admin/tags", token, nil)
}

func (c *Client) CreateTag(ctx context.Context, token string, payload TagPayload) Result[models.Tag] {
	return request[models.Tag](ctx, c, http.MethodPost, "/api/admin/tags", token, payload)
}

func (c *Client) UpdateTag(ctx context.Context, token string, id int64, payload TagPayload) Result[models.Tag] {
	return request[models.Tag](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/tags/%d", id), token, payload)
}

func (c *Client) DeleteTag(ctx context.Context, token string, id int64) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/tags/%d", id), token, nil)
}

func (c *Client) FetchUsers(ctx context.Context, token string) Result[[]models.User] {
	return request[[]models.User](ctx, c, http.MethodGet, "/api/admin/users", token, nil)
}

func (c *Client) CreateUser(ctx context.Context, token string, payload UserPayload) Result[models.User] {
	return request[models.User](ctx, c, http.MethodPost, "/api/admin/users", token, payload)
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, payload UserPayload) Result[models.User] {
	return request[models.User](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id), token, payload)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), token, nil)
}

func (c *Client) FetchAdmins(ctx context.Context, token string) Result[[]models.Admin] {
	return request[[]models.Admin](ctx, c, http.MethodGet, "/api/admin/admins", token, nil)
}

func (c *Client) CreateAdmin(ctx context.Context, token string, payload AdminPayload) Result[models.Admin] {
	return request[models.Admin](ctx, c, http.MethodPost, "/api/admin/admins", token, payload)
}

func (c *Client) UpdateAdmin(ctx context.Context, token string, id int64, payload AdminPayload) Result[models.Admin] {
	return request[models.Admin](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/admins/%d", id), token, payload)
}

func (c *Client) DeleteAdmin(ctx context.Context, token string, id int64) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/admins/%d", id), token, nil)
}

func (c *Client) FetchProjects(ctx context.Context, token string) Result[[]models.Project] {
	return request[[]models.Project](ctx, c, http.MethodGet, "/api/admin/projects", token, nil)
}

func (c *Client) CreateProject(ctx context.Context, token string, payload ProjectPayload) Result[models.Project] {
	return request[models.Project](ctx, c, http.MethodPost, "/api/admin/projects", token, payload)
}

func (c *Client) UpdateProject(ctx context.Context, token string, id int64, payload ProjectPayload) Result[models.Project] {
	return request[models.Project](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/projects/%d", id), token, payload)
}

func (c *Client) DeleteProject(ctx context.Context, token string, id int64) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/projects/%d", id), token, nil)
}

func (c *Client) FetchPatientTypes(ctx context.Context, token string) Result[[]models.PatientType] {
	return request[[]models.PatientType](ctx, c, http.MethodGet, "/api/admin/patient-types", token, nil)
}

func (c *Client) CreatePatientType(ctx context.Context, token string, payload PatientTypePayload) Result[models.PatientType] {
	return request[models.PatientType](ctx, c, http.MethodPost, "/api/admin/patient-types", token, payload)
}

func (c *Client) UpdatePatientType(ctx context.Context, token string, id int64, payload PatientTypePayload) Result[models.PatientType] {
	return request[models.PatientType](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/patient-types/%d", id), token, payload)
}

func (c *Client) DeletePatientType(ctx context.Context, token string, id int64) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/admin/patient-types/%d", id), token, nil)
}

// FetchOverview returns backend-computed aggregates. Percentages arrive
// precomputed and are never recalculated on this side.
func (c *Client) FetchOverview(ctx context.Context, token string) Result[models.OverviewAnalytics] {
	return request[models.OverviewAnalytics](ctx, c, http.MethodGet, "/api/admin/overview", token, nil)
}
