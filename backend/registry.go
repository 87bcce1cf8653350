package backend

import (
	"sort"

	"github.com/gogpu/glkit"
	"github.com/gogpu/gpucontext"
)

// DocumentFactory returns the document of a backend.
type DocumentFactory func() glkit.Document

// Priority order for backend selection (first registered wins).
var backendPriority = []string{BackendWebGL, BackendOpenGL, BackendHeadless}

var documents = gpucontext.NewRegistry[glkit.Document](
	gpucontext.WithPriority(backendPriority...),
)

// Register registers a document factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory DocumentFactory) {
	documents.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	documents.Unregister(name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	names := documents.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return documents.Has(name)
}

// Get returns the document of the named backend.
func Get(name string) (glkit.Document, error) {
	if !documents.Has(name) {
		return nil, &NotFoundError{Name: name, Available: Available()}
	}
	doc := documents.Get(name)
	if doc == nil {
		return nil, ErrBackendNotAvailable
	}
	return doc, nil
}

// Default returns the document of the best available backend and its name.
// Backends are tried in priority order; one whose factory yields no
// document is skipped.
func Default() (glkit.Document, string, error) {
	for _, name := range backendPriority {
		if doc, err := Get(name); err == nil {
			return doc, name, nil
		}
	}
	for _, name := range Available() {
		if doc, err := Get(name); err == nil {
			return doc, name, nil
		}
	}
	return nil, "", ErrBackendNotAvailable
}

// Acquire resolves selector in the default backend's document and returns
// its rendering context. See glkit.Acquire.
func Acquire(selector string, opts ...glkit.AcquireOption) (glkit.Host, error) {
	doc, name, err := Default()
	if err != nil {
		return nil, err
	}
	glkit.Logger().Debug("backend: selected", "backend", name)
	return glkit.Acquire(doc, selector, opts...)
}

// AcquireFrom is like Acquire but uses the named backend.
func AcquireFrom(name, selector string, opts ...glkit.AcquireOption) (glkit.Host, error) {
	doc, err := Get(name)
	if err != nil {
		return nil, err
	}
	return glkit.Acquire(doc, selector, opts...)
}
