// Package filestatus consumes the backend's push channel for file
// processing updates and fans them out to every live session, so the
// file-status table moves without polling.
package filestatus

import "sync"

// EventFileStatusUpdated is the only event the dashboard subscribes to.
const EventFileStatusUpdated = "FileStatusUpdated"

// Event is one status notification. Field names follow the hub's wire
// contract.
type Event struct {
	Type         string `json:"type"`
	FileID       int64  `json:"fileId"`
	DownloadLink string `json:"downloadLink"`
	FileStatus   string `json:"fileStatus"`
}

// Hub dispatches applied events to registered listeners. Delivery is
// at-least-once upstream, so listeners must be idempotent.
type Hub struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(Event)
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[int]func(Event))}
}

// Subscribe registers a listener and returns a handle for Unsubscribe.
func (h *Hub) Subscribe(fn func(Event)) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.listeners[h.nextID] = fn
	return h.nextID
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
}

// Broadcast delivers the event to every listener on the caller's
// goroutine.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	listeners := make([]func(Event), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
