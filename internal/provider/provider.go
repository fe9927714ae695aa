// Package provider owns the in-session copies of every domain
// collection. Collections are caches over the backend, never the source
// of truth: each successful mutation patches the owning collection from
// the server's response and re-fetches any coupled collection.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/selatcheck/dashboard/internal/gateway"
	"github.com/selatcheck/dashboard/internal/models"
)

// ErrMutationInFlight is returned when a second mutation targets an
// entity whose previous mutation has not resolved yet.
var ErrMutationInFlight = errors.New("a change to this record is already in progress")

// Provider caches one session's view of the domain. All access is
// guarded; a Provider may be touched concurrently by request handlers
// and the file-status consumer.
type Provider struct {
	gw    *gateway.Client
	token string

	mu           sync.RWMutex
	roles        []models.Role
	tags         []models.Tag
	users        []models.User
	admins       []models.Admin
	projects     []models.Project
	patientTypes []models.PatientType
	files        []models.FileUploadRecord
	overview     models.OverviewAnalytics

	inflightMu sync.Mutex
	inflight   map[string]uuid.UUID
}

func New(gw *gateway.Client, token string) *Provider {
	return &Provider{
		gw:       gw,
		token:    token,
		inflight: make(map[string]uuid.UUID),
	}
}

// Prime loads every collection once. A failed fetch is logged and the
// collection degrades silently to empty; the user is not interrupted.
func (p *Provider) Prime(ctx context.Context) {
	if res := p.gw.FetchRoles(ctx, p.token); res.Success {
		p.setRoles(res.Data)
	} else {
		slog.Warn("priming roles failed", "message", res.Message)
	}
	if res := p.gw.FetchTags(ctx, p.token); res.Success {
		p.setTags(res.Data)
	} else {
		slog.Warn("priming tags failed", "message", res.Message)
	}
	if res := p.gw.FetchUsers(ctx, p.token); res.Success {
		p.setUsers(res.Data)
	} else {
		slog.Warn("priming users failed", "message", res.Message)
	}
	if res := p.gw.FetchAdmins(ctx, p.token); res.Success {
		p.setAdmins(res.Data)
	} else {
		slog.Warn("priming admins failed", "message", res.Message)
	}
	if res := p.gw.FetchProjects(ctx, p.token); res.Success {
		p.setProjects(res.Data)
	} else {
		slog.Warn("priming projects failed", "message", res.Message)
	}
	if res := p.gw.FetchPatientTypes(ctx, p.token); res.Success {
		p.setPatientTypes(res.Data)
	} else {
		slog.Warn("priming patient types failed", "message", res.Message)
	}
	if res := p.gw.FetchFiles(ctx, p.token); res.Success {
		p.setFiles(res.Data)
	} else {
		slog.Warn("priming files failed", "message", res.Message)
	}
	if res := p.gw.FetchOverview(ctx, p.token); res.Success {
		p.setOverview(res.Data)
	} else {
		slog.Warn("priming overview failed", "message", res.Message)
	}
}

// begin claims the in-flight slot for one entity, tagging it with a
// request id. The returned release must be called once the mutation's
// round trip resolves, success or not.
func (p *Provider) begin(kind string, id int64) (func(), error) {
	key := fmt.Sprintf("%s/%d", kind, id)

	p.inflightMu.Lock()
	defer p.inflightMu.Unlock()
	if _, busy := p.inflight[key]; busy {
		return nil, ErrMutationInFlight
	}
	requestID := uuid.New()
	p.inflight[key] = requestID

	return func() {
		p.inflightMu.Lock()
		defer p.inflightMu.Unlock()
		if p.inflight[key] == requestID {
			delete(p.inflight, key)
		}
	}, nil
}

// Read accessors return copies so callers can page and filter without
// holding the provider lock.

func (p *Provider) Roles() []models.Role {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Role(nil), p.roles...)
}

func (p *Provider) Tags() []models.Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Tag(nil), p.tags...)
}

func (p *Provider) Users() []models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.User(nil), p.users...)
}

func (p *Provider) Admins() []models.Admin {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Admin(nil), p.admins...)
}

func (p *Provider) Projects() []models.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Project(nil), p.projects...)
}

func (p *Provider) PatientTypes() []models.PatientType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.PatientType(nil), p.patientTypes...)
}

func (p *Provider) Files() []models.FileUploadRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.FileUploadRecord(nil), p.files...)
}

func (p *Provider) Overview() models.OverviewAnalytics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.overview
}

func (p *Provider) setRoles(v []models.Role) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roles = v
}

func (p *Provider) setTags(v []models.Tag) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = v
}

func (p *Provider) setUsers(v []models.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = v
}

func (p *Provider) setAdmins(v []models.Admin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.admins = v
}

func (p *Provider) setProjects(v []models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.projects = v
}

func (p *Provider) setPatientTypes(v []models.PatientType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.patientTypes = v
}

func (p *Provider) setFiles(v []models.FileUploadRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files = v
}

func (p *Provider) setOverview(v models.OverviewAnalytics) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overview = v
}

// refetchTags refreshes the tag collection after a user mutation; tag
// assignment display depends on usernames. Failure keeps the stale copy.
func (p *Provider) refetchTags(ctx context.Context) {
	if res := p.gw.FetchTags(ctx, p.token); res.Success {
		p.setTags(res.Data)
	} else {
		slog.Warn("tag refetch failed", "message", res.Message)
	}
}

// refetchUsers is the mirror image for tag mutations.
func (p *Provider) refetchUsers(ctx context.Context) {
	if res := p.gw.FetchUsers(ctx, p.token); res.Success {
		p.setUsers(res.Data)
	} else {
		slog.Warn("user refetch failed", "message", res.Message)
	}
}

// RefreshOverview re-reads the analytics aggregates on demand.
func (p *Provider) RefreshOverview(ctx context.Context) (bool, string) {
	res := p.gw.FetchOverview(ctx, p.token)
	if !res.Success {
		return false, res.Message
	}
	p.setOverview(res.Data)
	return true, res.Message
}

// RefreshFiles re-reads the file registry on demand.
func (p *Provider) RefreshFiles(ctx context.Context) (bool, string) {
	res := p.gw.FetchFiles(ctx, p.token)
	if !res.Success {
		return false, res.Message
	}
	p.setFiles(res.Data)
	return true, res.Message
}
