// Package render provides the Canvas shared by fireworks.Surface
// implementations, the tcell terminal surface and a registry the controller
// resolves surfaces from. The ebiten surface lives in render/ebitensurface.
package render

import (
	"errors"
	"fmt"

	"github.com/decker502/heartworks/pkg/fireworks"
)

// ErrSurfaceExists is returned when registering an id twice.
var ErrSurfaceExists = errors.New("surface already registered")

// Registry maps host ids to surfaces. It implements fireworks.SurfaceResolver.
type Registry struct {
	surfaces map[string]fireworks.Surface
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]fireworks.Surface)}
}

// Register adds s under id.
func (r *Registry) Register(id string, s fireworks.Surface) error {
	if s == nil {
		return fmt.Errorf("register %q: nil surface", id)
	}
	if _, ok := r.surfaces[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrSurfaceExists)
	}
	r.surfaces[id] = s
	return nil
}

// Unregister removes the surface registered under id, if any.
func (r *Registry) Unregister(id string) {
	delete(r.surfaces, id)
}

// LookupSurface returns the surface registered under id.
func (r *Registry) LookupSurface(id string) (fireworks.Surface, bool) {
	s, ok := r.surfaces[id]
	return s, ok
}
