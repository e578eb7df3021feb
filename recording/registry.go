package recording

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/grob"
)

// BackendFactory creates a backend for a canvas of the given size.
// Factories are registered via Register() and called by NewBackend().
type BackendFactory func(width, height int) grob.Backend

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

func init() {
	Register("recording", func(int, int) grob.Backend { return NewRecorder() })
}

// Register registers a backend factory with the given name.
// This function is typically called from init() in backend packages:
//
//	func init() {
//	    recording.Register("raster", func(w, h int) grob.Backend {
//	        return New(w, h)
//	    })
//	}
//
// Register panics if factory is nil or a backend with the same name is
// already registered.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a new backend instance by name.
// Returns an error if the backend is not registered; the message includes
// a hint about forgotten imports.
func NewBackend(name string, width, height int) (grob.Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown backend %q (forgotten import?)", name)
	}
	grob.Logger().Debug("recording: backend created", "name", name, "width", width, "height", height)
	return factory(width, height), nil
}

// Backends returns a sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
