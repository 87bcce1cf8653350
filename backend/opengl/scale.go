// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import "math"

// screenSize converts a framebuffer size in pixels to the window size in
// screen coordinates that produces it, given the current framebuffer and
// window sizes. On displays where the two units agree it returns the input.
func screenSize(width, height, fbW, fbH, winW, winH int) (int, int) {
	if fbW <= 0 || fbH <= 0 || winW <= 0 || winH <= 0 {
		return width, height
	}
	sx := float64(fbW) / float64(winW)
	sy := float64(fbH) / float64(winH)
	return int(math.Round(float64(width) / sx)), int(math.Round(float64(height) / sy))
}
