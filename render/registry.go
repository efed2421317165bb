// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"sort"
	"sync"
)

// SurfaceFactory creates an offscreen surface from a descriptor.
// The descriptor passed in is validated and has its formats filled in.
type SurfaceFactory func(desc SurfaceDescriptor) (RenderTarget, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	//   - 100: GPU texture backends
	//   - 10: CPU pixmap backend
	Priority int

	// Factory creates surfaces.
	Factory SurfaceFactory

	// Available reports if the backend can be used right now.
	Available func() bool
}

// Built-in backend names.
const (
	BackendPixmap  = "pixmap"
	BackendTexture = "texture"
)

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages named surface backends.
//
// A capture session asks the registry for its offscreen surfaces, so hosts
// with a GPU can register a texture backend without touching the session:
//
//	render.Register(render.BackendTexture, 100, render.TextureFactory(handle), nil)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a registry holding only the pixmap backend.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*RegistryEntry)}
	r.Register(BackendPixmap, 10, PixmapFactory, nil)
	return r
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a backend to the global registry.
func Register(name string, priority int, factory SurfaceFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// PixmapFactory creates CPU-backed surfaces.
func PixmapFactory(desc SurfaceDescriptor) (RenderTarget, error) {
	t := NewPixmapTarget(desc.Width, desc.Height)
	t.depth = desc.DepthFormat
	t.label = desc.Label
	return t, nil
}

// TextureFactory returns a factory creating GPU texture surfaces on handle.
func TextureFactory(handle DeviceHandle) SurfaceFactory {
	return func(desc SurfaceDescriptor) (RenderTarget, error) {
		t, err := NewTextureTarget(handle, desc)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Register adds a backend to this registry.
// Registering a name that already exists replaces the previous entry.
// If available is nil, the backend is assumed always available.
func (r *Registry) Register(name string, priority int, factory SurfaceFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// NewSurface creates a surface using the best available backend.
func (r *Registry) NewSurface(desc SurfaceDescriptor) (RenderTarget, error) {
	available := r.Available()
	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		t, err := r.NewSurfaceByName(name, desc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, desc SurfaceDescriptor) (RenderTarget, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	desc = desc.withDefaults()
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return entry.Factory(desc)
}

// sortedNames returns available backend names, highest priority first.
// Must be called with lock held.
func (r *Registry) sortedNames() []string {
	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority == entries[j].priority {
			return entries[i].name < entries[j].name
		}
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// ErrNoBackendAvailable is returned when no surface backend is available.
var ErrNoBackendAvailable = errors.New("render: no surface backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "render: surface backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "render: surface backend unavailable: " + e.Name
}
