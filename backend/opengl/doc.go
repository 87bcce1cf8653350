// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl provides a desktop glkit host on an OpenGL 4.1 core
// context created with GLFW.
//
// A Display plays the role of the document: windows opened on it are
// addressed by name and report the CANVAS tag. Shaders are GLSL 410 core
// source. GLFW and OpenGL calls must come from the main thread:
//
//	func init() { runtime.LockOSThread() }
//
//	func main() {
//		d, err := opengl.NewDisplay()
//		...
//		defer d.Close()
//		d.Open("main", 800, 600)
//		host, err := glkit.Acquire(d, "main", glkit.WithContextTypes("opengl"))
//	}
//
// The package needs cgo. Importing it registers the "opengl" backend.
package opengl
