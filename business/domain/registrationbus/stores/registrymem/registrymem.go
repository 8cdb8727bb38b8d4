// Package registrymem provides an in-memory registry of in-flight
// registrations for single-instance deployments.
package registrymem

import (
	"sync"
)

// Registry tracks in-flight dedup keys behind a mutex.
type Registry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// New constructs a registry for tracking in-flight registrations.
func New() *Registry {
	return &Registry{
		keys: make(map[string]struct{}),
	}
}

// TryAdmit inserts the key if absent and reports whether this call
// performed the insertion.
func (r *Registry) TryAdmit(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[key]; exists {
		return false
	}

	r.keys[key] = struct{}{}

	return true
}

// Release removes the key. Releasing an absent key is a no-op.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keys, key)
}

// Snapshot returns the keys currently held.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.keys))
	for key := range r.keys {
		keys = append(keys, key)
	}

	return keys
}

// Clear removes every key and returns how many were removed.
func (r *Registry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.keys)
	r.keys = make(map[string]struct{})

	return n
}
