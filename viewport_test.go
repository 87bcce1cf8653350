package glkit

import (
	"reflect"
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestResizeCanvas(t *testing.T) {
	h := newFakeHost()
	ResizeCanvas(h, 800, 600)

	if h.surfaceW != 800 || h.surfaceH != 600 {
		t.Errorf("surface = %dx%d, want 800x600", h.surfaceW, h.surfaceH)
	}
	if want := (Rect{Width: 800, Height: 600}); h.viewport != want {
		t.Errorf("viewport = %+v, want %+v", h.viewport, want)
	}
	if want := []string{"SetSurfaceSize", "Viewport"}; !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

func TestResizeCanvasIdempotent(t *testing.T) {
	h := newFakeHost()
	ResizeCanvas(h, 640, 480)
	w, ht, vp := h.surfaceW, h.surfaceH, h.viewport
	ResizeCanvas(h, 640, 480)
	if h.surfaceW != w || h.surfaceH != ht || h.viewport != vp {
		t.Errorf("second resize changed state: %dx%d %+v", h.surfaceW, h.surfaceH, h.viewport)
	}
}

func TestResizeCanvasNoValidation(t *testing.T) {
	h := newFakeHost()
	ResizeCanvas(h, 0, -1)
	if h.surfaceW != 0 || h.surfaceH != -1 || h.viewport.Height != -1 {
		t.Errorf("values not forwarded as-is: %dx%d %+v", h.surfaceW, h.surfaceH, h.viewport)
	}
}

func TestFitWindow(t *testing.T) {
	h := newFakeHost()
	w, ht := FitWindow(h, gpucontext.NullWindowProvider{W: 400, H: 300, SF: 1.5})
	if w != 600 || ht != 450 {
		t.Errorf("FitWindow() = %dx%d, want 600x450", w, ht)
	}
	if h.surfaceW != 600 || h.viewport.Width != 600 {
		t.Errorf("surface/viewport not resized: %d %+v", h.surfaceW, h.viewport)
	}
}
