package cart

import (
	"context"
	"sync"
)

// Registry hands out one Store per shopping session. The store is created on
// first use and hydrated from the snapshot repository; subsequent requests
// for the same session get the same instance, so all handlers mutate the
// same in-memory cart.
type Registry struct {
	mu        sync.Mutex
	snapshots Snapshots
	stores    map[string]*Store
}

func NewRegistry(snapshots Snapshots) *Registry {
	return &Registry{
		snapshots: snapshots,
		stores:    make(map[string]*Store),
	}
}

func (r *Registry) ForSession(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[sessionID]; ok {
		return store
	}
	store := NewStore(ctx, sessionID, r.snapshots)
	r.stores[sessionID] = store
	return store
}
