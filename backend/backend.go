package backend

import (
	"errors"
	"fmt"
)

// Backend names.
const (
	// BackendWebGL is the browser backend (js/wasm builds only).
	BackendWebGL = "webgl"
	// BackendOpenGL is the desktop OpenGL backend (cgo builds only).
	BackendOpenGL = "opengl"
	// BackendHeadless is the pure Go reference backend.
	BackendHeadless = "headless"
)

// ErrBackendNotAvailable is returned when no backend is registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// NotFoundError is returned when a backend is requested by a name that is
// not registered.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("backend: %q not registered (available: %v)", e.Name, e.Available)
}
