// Package shaders holds the WGSL programs bundled with glkit.
package shaders

import (
	_ "embed"
)

// Embedded WGSL shader sources.

// ColorVertex transforms a_position by u_mvp scaled by u_scale and passes
// a_color through.
//
//go:embed color.vert.wgsl
var ColorVertex string

// ColorFragment multiplies the vertex color by u_tint; u_invert = 1
// inverts the result.
//
//go:embed color.frag.wgsl
var ColorFragment string
