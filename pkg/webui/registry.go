package webui

import (
	"fmt"
	"sort"
	"sync"
)

// FactoryFunc creates a UI module from its raw options.
type FactoryFunc func(options map[string]any) (UI, error)

// Registry holds UI module types and their factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FactoryFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FactoryFunc),
	}
}

// NewDefaultRegistry creates a Registry with the Graphite module registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	// cannot fail on an empty registry
	_ = r.Register(TypeName, Factory)
	return r
}

// Register adds a module factory under the given type name.
// Returns an error if the name is already registered.
func (r *Registry) Register(name string, factory FactoryFunc) error {
	if factory == nil {
		return fmt.Errorf("module type %q: factory must not be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("module type %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates a module of the given type with the provided options.
// Returns an error if the type is not registered or the factory fails.
func (r *Registry) Create(name string, options map[string]any) (UI, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown module type %q", name)
	}
	return factory(options)
}

// Types returns the registered module type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
