package export

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores handlers by format name and guards against duplicates.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Format]Handler
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Format]Handler),
	}
}

// Register adds a handler by its Name(). Duplicate names return an error.
func (r *Registry) Register(handler Handler) error {
	if handler == nil {
		return fmt.Errorf("export: handler is required")
	}
	name := Format(strings.TrimSpace(string(handler.Name())))
	if name == "" {
		return fmt.Errorf("export: handler name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("export: handler %q already registered", name)
	}

	r.handlers[name] = handler
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(handler Handler) {
	if err := r.Register(handler); err != nil {
		panic(err)
	}
}

// Get retrieves a handler by format. Unknown formats wrap
// ErrInvalidExportType.
func (r *Registry) Get(name Format) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportType, name)
	}
	return handler, nil
}

// MustGet panics if the handler is missing.
func (r *Registry) MustGet(name Format) Handler {
	handler, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return handler
}

// List returns a sorted list of format names.
func (r *Registry) List() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Format, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Has reports whether a handler is registered.
func (r *Registry) Has(name Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handlers[name]
	return ok
}
