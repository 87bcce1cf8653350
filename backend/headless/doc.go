// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a pure Go glkit host.
//
// A headless Document holds canvases addressed by selector. A canvas hands
// out a Context that behaves like a WebGL 1 context without a GPU: shaders
// are WGSL stages that are parsed, validated and reflected with naga,
// programs are linked by matching stage interfaces, and every buffer,
// attribute and uniform write is stored and can be read back.
//
// Invalid calls do not panic. They record a GL error that Err returns:
//
//	doc := headless.NewDocument()
//	doc.AddCanvas("#glcanvas", 640, 480)
//
//	host, err := glkit.Acquire(doc, "#glcanvas")
//	...
//	if code := host.(*headless.Context).Err(); code != headless.NoError {
//		log.Printf("gl error: %v", code)
//	}
//
// Importing the package registers the "headless" backend.
package headless
