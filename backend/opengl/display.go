// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !js && cgo

package opengl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend"
	"github.com/gogpu/gpucontext"
)

// ContextTypes lists the context types a window provides.
var ContextTypes = []string{"opengl", "webgl"}

// ErrDisplayClosed is returned by Open after Close.
var ErrDisplayClosed = errors.New("opengl: display closed")

// WindowOption configures a window.
type WindowOption func(*windowOptions)

type windowOptions struct {
	title   string
	visible bool
}

// WithTitle sets the window title. It defaults to the window name.
func WithTitle(title string) WindowOption {
	return func(o *windowOptions) {
		o.title = title
	}
}

// WithVisible controls whether the window is shown. Windows are hidden by
// default.
func WithVisible(visible bool) WindowOption {
	return func(o *windowOptions) {
		o.visible = visible
	}
}

// Display owns the GLFW library and a set of named windows.
type Display struct {
	mu      sync.Mutex
	windows map[string]*Window
	closed  bool
}

// NewDisplay initializes GLFW.
func NewDisplay() (*Display, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("opengl: glfw init: %w", err)
	}
	return &Display{windows: make(map[string]*Window)}, nil
}

// Open creates a window of width x height pixels addressed by name.
func (d *Display) Open(name string, width, height int, opts ...WindowOption) (*Window, error) {
	o := windowOptions{title: name}
	for _, opt := range opts {
		opt(&o)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDisplayClosed
	}
	if _, ok := d.windows[name]; ok {
		return nil, fmt.Errorf("opengl: window %q already open", name)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	visible := glfw.False
	if o.visible {
		visible = glfw.True
	}
	glfw.WindowHint(glfw.Visible, visible)

	win, err := glfw.CreateWindow(width, height, o.title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("opengl: create window %q: %w", name, err)
	}
	w := &Window{name: name, win: win}
	d.windows[name] = w
	glkit.Logger().Debug("opengl: window opened", "name", name, "width", width, "height", height)
	return w, nil
}

// QuerySelector implements glkit.Document. The selector is a window name.
func (d *Display) QuerySelector(selector string) (glkit.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[selector]
	if !ok {
		return nil, false
	}
	return w, true
}

// Close destroys every window and terminates GLFW.
func (d *Display) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	for name, w := range d.windows {
		w.destroy()
		delete(d.windows, name)
	}
	glfw.Terminate()
	d.closed = true
}

// Window is a GLFW window acting as a canvas.
type Window struct {
	name string
	win  *glfw.Window
	ctx  *Context
}

// TagName returns "CANVAS".
func (w *Window) TagName() string { return glkit.CanvasTagName }

// Context makes the window's GL context current and returns it.
func (w *Window) Context(contextType string) (glkit.Host, bool) {
	if w.win == nil || !supportedType(contextType) {
		return nil, false
	}
	w.win.MakeContextCurrent()
	if w.ctx == nil {
		if err := gl.Init(); err != nil {
			glkit.Logger().Warn("opengl: gl init failed", "err", err)
			return nil, false
		}
		w.ctx = newContext(w)
	}
	return w.ctx, true
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) {
	return w.win.GetSize()
}

// ScaleFactor returns the horizontal content scale of the window.
func (w *Window) ScaleFactor() float64 {
	sx, _ := w.win.GetContentScale()
	if sx <= 0 {
		return 1.0
	}
	return float64(sx)
}

// RequestRedraw wakes the event loop.
func (w *Window) RequestRedraw() {
	glfw.PostEmptyEvent()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) destroy() {
	if w.ctx != nil {
		w.win.MakeContextCurrent()
		w.ctx.release()
		w.ctx = nil
	}
	w.win.Destroy()
	w.win = nil
}

func supportedType(contextType string) bool {
	for _, t := range ContextTypes {
		if t == contextType {
			return true
		}
	}
	return false
}

var (
	sharedOnce    sync.Once
	sharedDisplay *Display
)

// Shared returns the process-wide display served by the "opengl" backend,
// or nil when GLFW cannot be initialized. It must first be called from the
// main thread.
func Shared() *Display {
	sharedOnce.Do(func() {
		d, err := NewDisplay()
		if err != nil {
			glkit.Logger().Warn("opengl: display unavailable", "err", err)
			return
		}
		sharedDisplay = d
	})
	return sharedDisplay
}

func init() {
	backend.Register(backend.BackendOpenGL, func() glkit.Document {
		if d := Shared(); d != nil {
			return d
		}
		return nil
	})
}

var (
	_ glkit.Document            = (*Display)(nil)
	_ glkit.Element             = (*Window)(nil)
	_ gpucontext.WindowProvider = (*Window)(nil)
)
