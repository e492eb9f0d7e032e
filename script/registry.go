package script

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cbegin/cyclepattern/perr"
)

// Registry tracks the Callables an embedding script layer has registered,
// keyed by their stable uuid.UUID handle. It exists so a long-lived host
// process (a REPL, a live-coding session) can replace or evict a callback
// by identity across reloads instead of leaking one entry per edit-reload
// cycle — mirrors the lifecycle a magda-api-style request-scoped handle
// registry manages, adapted here to script callback identity instead of
// request identity.
type Registry struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]Callable
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uuid.UUID]Callable)}
}

// Register adds c to the registry, returning its handle. Re-registering a
// Callable that already carries an ID (e.g. a reload that reuses the
// handle) overwrites the prior entry under the same key.
func (r *Registry) Register(c Callable) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return c.ID
}

// Lookup returns the Callable registered under id, or an error if no such
// handle is known — a stale handle from an evicted or never-registered
// callback is always a caller mistake, never silently tolerated.
func (r *Registry) Lookup(id uuid.UUID) (Callable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return Callable{}, perr.Newf(perr.InvalidArgument, "script.Registry.Lookup", "no callable registered under %s", id)
	}
	return c, nil
}

// Evict removes id from the registry. Evicting an unknown handle is a
// no-op, not an error, since the caller's intent ("make sure this handle
// is gone") is already satisfied.
func (r *Registry) Evict(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Len reports how many Callables are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
