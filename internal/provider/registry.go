// Package provider tracks custom configuration providers, the
// extensions that can supply IntelliSense settings per file instead of
// the properties document.
package provider

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/thoreinstein/ccprops/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrProviderAlreadyRegistered is returned when an id or alias is
	// already in use.
	ErrProviderAlreadyRegistered = errors.New("provider already registered")

	// ErrInvalidProviderID is returned for an empty id.
	ErrInvalidProviderID = errors.New("invalid provider id")
)

// Well known provider ids.
const (
	CMakeTools    = "ms-vscode.cmake-tools"
	MakefileTools = "ms-vscode.makefile-tools"
)

// Registry maps provider ids and their aliases to a canonical id.
// Lookups ignore case. It is safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ids map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]string)}
}

// DefaultRegistry returns a registry with the well known providers,
// including the id cmake-tools was published under before it moved.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(CMakeTools, "vector-of-bool.cmake-tools")
	_ = r.Register(MakefileTools)
	return r
}

// Register adds a canonical id and the aliases that resolve to it.
func (r *Registry) Register(id string, aliases ...string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidProviderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{id}, aliases...)
	for _, k := range keys {
		if _, exists := r.ids[strings.ToLower(k)]; exists {
			return errors.Wrapf(ErrProviderAlreadyRegistered, "%s", k)
		}
	}
	for _, k := range keys {
		r.ids[strings.ToLower(k)] = id
	}
	return nil
}

// Normalize returns the canonical spelling of id and whether it is
// known. Unknown ids come back unchanged.
func (r *Registry) Normalize(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.ids[strings.ToLower(strings.TrimSpace(id))]; ok {
		return canonical, true
	}
	return id, false
}

// All returns the canonical ids in sorted order.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := map[string]struct{}{}
	for _, id := range r.ids {
		set[id] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
