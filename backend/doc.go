// Package backend selects the host environment glkit runs against.
//
// A backend supplies a glkit.Document: the element tree that canvas
// selectors are resolved in. Backends register themselves from init()
// functions and are picked by name or by priority:
//
//	import _ "github.com/gogpu/glkit/backend/headless"
//
//	host, err := backend.Acquire("#glcanvas")
//
// # Available Backends
//
//   - "webgl": the browser DOM via syscall/js (GOOS=js GOARCH=wasm)
//   - "opengl": GLFW windows with an OpenGL 4.1 core context (cgo)
//   - "headless": in-memory canvases with WGSL shaders (always available)
//
// Priority order is webgl > opengl > headless.
package backend
