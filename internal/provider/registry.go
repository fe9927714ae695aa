package provider

import "sync"

// Registry maps live session ids to their providers. The file-status
// consumer fans incoming events out across every entry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Provider
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Provider)}
}

func (r *Registry) Attach(sessionID string, p *Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = p
}

func (r *Registry) Lookup(sessionID string) (*Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.sessions[sessionID]
	return p, ok
}

func (r *Registry) Detach(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Each calls fn for every live provider.
func (r *Registry) Each(fn func(*Provider)) {
	r.mu.RLock()
	providers := make([]*Provider, 0, len(r.sessions))
	for _, p := range r.sessions {
		providers = append(providers, p)
	}
	r.mu.RUnlock()

	for _, p := range providers {
		fn(p)
	}
}
