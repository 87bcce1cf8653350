// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package webgl provides the browser glkit host.
//
// The package is only built for GOOS=js GOARCH=wasm. Selectors are resolved
// with document.querySelector and contexts come from canvas.getContext.
// Shaders are GLSL ES source handed to the browser compiler unchanged.
//
// Importing the package registers the "webgl" backend:
//
//	import _ "github.com/gogpu/glkit/backend/webgl"
//
//	host, err := backend.Acquire("#glcanvas")
package webgl
