package cart

import "sync"

// Registry maps cart session ids to their stores. Carts are created on first
// use and live for the browsing session; there is no persistence behind the
// registry.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Store
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: map[string]*Store{}}
}

// Session returns the store for the given session id, creating it when the
// session has no cart yet.
func (r *Registry) Session(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.carts[sessionID]
	if !ok {
		store = NewStore()
		r.carts[sessionID] = store
	}
	return store
}

// Drop forgets the cart for the given session id.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}

// Len reports how many sessions currently hold a cart.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
