package provider

import (
	"context"

	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/models"
)

// Every mutation follows one discipline: claim the entity's in-flight
// slot, make the gateway call, patch the owning collection from the
// response, re-fetch coupled collections, release. On failure nothing
// changes. The (ok, message) pair tells the caller whether to close its
// modal and what to show in the toast.

func (p *Provider) CreateUser(ctx context.Context, payload gateway.UserPayload) (bool, string) {
	release, err := p.begin("user", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.CreateUser(ctx, p.token, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.users = append(p.users, res.Data)
	p.mu.Unlock()

	p.refetchTags(ctx)
	return true, successMessage(res.Message, "User created.")
}

func (p *Provider) UpdateUser(ctx context.Context, id int64, payload gateway.UserPayload) (bool, string) {
	release, err := p.begin("user", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UpdateUser(ctx, p.token, id, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.users {
		if p.users[i].ID == id {
			p.users[i] = res.Data
			break
		}
	}
	p.mu.Unlock()

	p.refetchTags(ctx)
	return true, successMessage(res.Message, "User updated.")
}

func (p *Provider) DeleteUser(ctx context.Context, id int64) (bool, string) {
	release, err := p.begin("user", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.DeleteUser(ctx, p.token, id)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.users = removeByID(p.users, id, func(u models.User) int64 { return u.ID })
	p.mu.Unlock()

	p.refetchTags(ctx)
	return true, successMessage(res.Message, "User deleted.")
}

func (p *Provider) CreateTag(ctx context.Context, payload gateway.TagPayload) (bool, string) {
	release, err := p.begin("tag", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.CreateTag(ctx, p.token, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.tags = append(p.tags, res.Data)
	p.mu.Unlock()

	p.refetchUsers(ctx)
	return true, successMessage(res.Message, "Tag created.")
}

func (p *Provider) UpdateTag(ctx context.Context, id int64, payload gateway.TagPayload) (bool, string) {
	release, err := p.begin("tag", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UpdateTag(ctx, p.token, id, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.tags {
		if p.tags[i].ID == id {
			p.tags[i] = res.Data
			break
		}
	}
	p.mu.Unlock()

	p.refetchUsers(ctx)
	return true, successMessage(res.Message, "Tag updated.")
}

func (p *Provider) DeleteTag(ctx context.Context, id int64) (bool, string) {
	release, err := p.begin("tag", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.DeleteTag(ctx, p.token, id)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.tags = removeByID(p.tags, id, func(t models.Tag) int64 { return t.ID })
	p.mu.Unlock()

	p.refetchUsers(ctx)
	return true, successMessage(res.Message, "Tag deleted.")
}

func (p *Provider) CreateAdmin(ctx context.Context, payload gateway.AdminPayload) (bool, string) {
	release, err := p.begin("admin", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.CreateAdmin(ctx, p.token, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.admins = append(p.admins, res.Data)
	p.mu.Unlock()
	return true, successMessage(res.Message, "Admin created.")
}

func (p *Provider) UpdateAdmin(ctx context.Context, id int64, payload gateway.AdminPayload) (bool, string) {
	release, err := p.begin("admin", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UpdateAdmin(ctx, p.token, id, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.admins {
		if p.admins[i].ID == id {
			p.admins[i] = res.Data
			break
		}
	}
	p.mu.Unlock()
	return true, successMessage(res.Message, "Admin updated.")
}

func (p *Provider) DeleteAdmin(ctx context.Context, id int64) (bool, string) {
	release, err := p.begin("admin", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.DeleteAdmin(ctx, p.token, id)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.admins = removeByID(p.admins, id, func(a models.Admin) int64 { return a.ID })
	p.mu.Unlock()
	return true, successMessage(res.Message, "Admin deleted.")
}

// RenameRole is the only role mutation; roles are never created or
// deleted through the dashboard.
func (p *Provider) RenameRole(ctx context.Context, id int64, name string) (bool, string) {
	release, err := p.begin("role", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.RenameRole(ctx, p.token, id, gateway.RolePayload{Name: name})
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.roles {
		if p.roles[i].ID == id {
			p.roles[i] = res.Data
			break
		}
	}
	p.mu.Unlock()
	return true, successMessage(res.Message, "Role renamed.")
}

func (p *Provider) CreateProject(ctx context.Context, payload gateway.ProjectPayload) (bool, string) {
	release, err := p.begin("project", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.CreateProject(ctx, p.token, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.projects = append(p.projects, res.Data)
	p.mu.Unlock()
	return true, successMessage(res.Message, "Project created.")
}

func (p *Provider) UpdateProject(ctx context.Context, id int64, payload gateway.ProjectPayload) (bool, string) {
	release, err := p.begin("project", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UpdateProject(ctx, p.token, id, payload)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.projects {
		if p.projects[i].ID == id {
			p.projects[i] = res.Data
			break
		}
	}
	p.mu.Unlock()
	return true, successMessage(res.Message, "Project updated.")
}

func (p *Provider) DeleteProject(ctx context.Context, id int64) (bool, string) {
	release, err := p.begin("project", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.DeleteProject(ctx, p.token, id)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.projects = removeByID(p.projects, id, func(pr models.Project) int64 { return pr.ID })
	p.mu.Unlock()
	return true, successMessage(res.Message, "Project deleted.")
}

func (p *Provider) CreatePatientType(ctx context.Context, name string) (bool, string) {
	release, err := p.begin("patient-type", 0)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.CreatePatientType(ctx, p.token, gateway.PatientTypePayload{Name: name})
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.patientTypes = append(p.patientTypes, res.Data)
	p.mu.Unlock()
	return true, successMessage(res.Message, "Patient type created.")
}

func (p *Provider) UpdatePatientType(ctx context.Context, id int64, name string) (bool, string) {
	release, err := p.begin("patient-type", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.UpdatePatientType(ctx, p.token, id, gateway.PatientTypePayload{Name: name})
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	for i := range p.patientTypes {
		if p.patientTypes[i].ID == id {
			p.patientTypes[i] = res.Data
			break
		}
	}
	p.mu.Unlock()
	return true, successMessage(res.Message, "Patient type updated.")
}

func (p *Provider) DeletePatientType(ctx context.Context, id int64) (bool, string) {
	release, err := p.begin("patient-type", id)
	if err != nil {
		return false, err.Error()
	}
	defer release()

	res := p.gw.DeletePatientType(ctx, p.token, id)
	if !res.Success {
		return false, res.Message
	}

	p.mu.Lock()
	p.patientTypes = removeByID(p.patientTypes, id, func(pt models.PatientType) int64 { return pt.ID })
	p.mu.Unlock()
	return true, successMessage(res.Message, "Patient type deleted.")
}

func removeByID[T any](rows []T, id int64, idOf func(T) int64) []T {
	out := rows[:0]
	for _, row := range rows {
		if idOf(row) != id {
			out = append(out, row)
		}
	}
	return out
}

func successMessage(server, fallback string) string {
	if server != "" {
		return server
	}
	return fallback
}
