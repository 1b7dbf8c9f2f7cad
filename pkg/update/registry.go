package update

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// Registry stores updaters keyed by the element kinds they handle, providing
// discovery and duplication safeguards. Callers can embed or wrap this for
// dependency injection.
type Registry struct {
	mu       sync.RWMutex
	updaters map[dom.ElementKind]Updater
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		updaters: make(map[dom.ElementKind]Updater),
	}
}

// Register adds an updater under every kind it declares. Claiming an already
// registered kind returns an error.
func (r *Registry) Register(updater Updater) error {
	if updater == nil {
		return fmt.Errorf("update: updater is required")
	}
	if updater.Name() == "" {
		return fmt.Errorf("update: updater name is required")
	}
	kinds := updater.Kinds()
	if len(kinds) == 0 {
		return fmt.Errorf("update: updater %q declares no kinds", updater.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, kind := range kinds {
		if existing, exists := r.updaters[kind]; exists {
			return fmt.Errorf("update: kind %s already handled by %q", kind, existing.Name())
		}
	}
	for _, kind := range kinds {
		r.updaters[kind] = updater
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(updater Updater) {
	if err := r.Register(updater); err != nil {
		panic(err)
	}
}

// Get retrieves the updater handling a kind.
func (r *Registry) Get(kind dom.ElementKind) (Updater, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	updater, ok := r.updaters[kind]
	if !ok {
		return nil, fmt.Errorf("update: no updater for kind %s", kind)
	}
	return updater, nil
}

// Has reports whether a kind is handled.
func (r *Registry) Has(kind dom.ElementKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.updaters[kind]
	return ok
}

// List returns the distinct registered strategy names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	names := make([]string, 0, len(r.updaters))
	for _, updater := range r.updaters {
		if _, dup := seen[updater.Name()]; dup {
			continue
		}
		seen[updater.Name()] = struct{}{}
		names = append(names, updater.Name())
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry wires every built-in strategy.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(&textUpdater{})
	r.MustRegister(&contentEditableUpdater{})
	r.MustRegister(&checkboxUpdater{})
	r.MustRegister(&radioUpdater{})
	r.MustRegister(&selectUpdater{})
	r.MustRegister(&fileUpdater{})
	r.MustRegister(&buttonUpdater{})
	return r
}
