package glkit

import (
	"math"

	"github.com/gogpu/gpucontext"
)

// ResizeCanvas sets the surface to width x height pixels and matches the
// viewport to (0, 0, width, height). Values are forwarded to the host
// without validation.
func ResizeCanvas(h Host, width, height int) {
	h.SetSurfaceSize(width, height)
	h.Viewport(0, 0, width, height)
	Logger().Debug("glkit: canvas resized", "width", width, "height", height)
}

// FitWindow resizes the canvas to the physical pixel size of wp, its
// logical size multiplied by the scale factor, and returns that size.
func FitWindow(h Host, wp gpucontext.WindowProvider) (width, height int) {
	w, ht := wp.Size()
	scale := wp.ScaleFactor()
	width = int(math.Round(float64(w) * scale))
	height = int(math.Round(float64(ht) * scale))
	ResizeCanvas(h, width, height)
	return width, height
}
