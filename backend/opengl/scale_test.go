// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import "testing"

func TestScreenSize(t *testing.T) {
	tests := []struct {
		name                 string
		w, h                 int
		fbW, fbH, winW, winH int
		wantW, wantH         int
	}{
		{"unscaled", 800, 600, 640, 480, 640, 480, 800, 600},
		{"retina", 800, 600, 1280, 960, 640, 480, 400, 300},
		{"fractional", 300, 150, 960, 720, 640, 480, 200, 100},
		{"minimized", 800, 600, 0, 0, 640, 480, 800, 600},
		{"no window", 800, 600, 640, 480, 0, 0, 800, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := screenSize(tt.w, tt.h, tt.fbW, tt.fbH, tt.winW, tt.winH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("screenSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
