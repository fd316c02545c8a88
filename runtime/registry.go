package runtime

import (
	"sync"

	"courier/contract"
)

// Registry is the process-local directory of live connections. The presence
// store resolves a user to a connection id; the registry resolves that id to
// the actual sink. Connections are managed in a single place even when the
// same user reconnects with a fresh id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // connection id -> sink
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
	}
}

// Bind registers a connection's sink under its id.
func (r *Registry) Bind(connectionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[connectionID] = sink
}

// Unbind removes a connection. Removing an unknown id is a no-op so that
// disconnect handling stays idempotent.
func (r *Registry) Unbind(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, connectionID)
}

// Sink resolves a connection id to its sink.
func (r *Registry) Sink(connectionID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sessions[connectionID]
	return sink, ok
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
