// Package registry maps manager identifiers to factories. It is the
// contract the plugin-discovery machinery reduces to: callers register
// factories under unique identifiers and instantiate fresh,
// uninitialized manager instances by identifier.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mediaforge/manifold/pkg/types"
)

// Factory builds a fresh, uninitialized manager instance.
type Factory func() types.ManagerInterface

// Registry is a concurrency-safe identifier→factory mapping.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given identifier. Empty
// identifiers, nil factories and duplicate identifiers are rejected.
func (r *Registry) Register(identifier string, factory Factory) error {
	if identifier == "" {
		return fmt.Errorf("%w: manager identifier must not be empty", types.ErrInvalidInput)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory for %q must not be nil", types.ErrInvalidInput, identifier)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[identifier]; ok {
		return fmt.Errorf("%w: manager %q is already registered", types.ErrInvalidInput, identifier)
	}
	r.factories[identifier] = factory
	return nil
}

// Identifiers returns the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identifiers := make([]string, 0, len(r.factories))
	for identifier := range r.factories {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)
	return identifiers
}

// Instantiate builds a fresh manager instance for the identifier. The
// returned instance is not initialized.
func (r *Registry) Instantiate(identifier string) (types.ManagerInterface, error) {
	r.mu.RLock()
	factory, ok := r.factories[identifier]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown manager %q", types.ErrInvalidInput, identifier)
	}
	return factory(), nil
}
