// Package glkit is a thin convenience layer over a GPU rendering context.
//
// # Overview
//
// glkit covers the program setup and binding lifecycle of a WebGL-style
// rendering context: compiling shader source into program objects, binding
// vertex attribute data and uniform values to a linked program, and keeping
// the canvas and viewport sizes in step.
//
// The rendering context itself is a [Host]. Hosts are provided by the
// backend packages:
//   - backend/webgl: the browser's WebGL context (js/wasm)
//   - backend/opengl: a desktop OpenGL 4.1 context in a GLFW window
//   - backend/headless: a pure Go reference host that compiles WGSL with
//     gogpu/naga and exposes its full state for inspection
//
// # Quick Start
//
//	h, err := glkit.Acquire(doc, "#scene")
//	if err != nil {
//	    return err
//	}
//	prog, err := glkit.NewProgram(h, vertexSource, fragmentSource)
//	if err != nil {
//	    return err
//	}
//	buf, err := glkit.SetAttribute(h, prog, "a_position", positions, 3)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//	if err := glkit.SetUniform(h, prog, "u_mvp", glkit.Mat4(mvp[:])); err != nil {
//	    return err
//	}
//	glkit.ResizeCanvas(h, 800, 600)
//
// # Errors
//
// Every failure is returned immediately and is never retried. Compile,
// link and binding failures are static configuration mistakes; callers
// normally treat them as fatal at startup. Use errors.Is with the sentinel
// errors and errors.As with the typed errors such as *ShaderCompileError.
//
// # Concurrency
//
// A Host is used synchronously from one control flow. glkit keeps no state
// between calls; every operation takes the host and program explicitly.
package glkit
