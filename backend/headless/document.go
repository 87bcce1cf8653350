// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"sync"

	"github.com/gogpu/glkit"
	"github.com/gogpu/gpucontext"
)

// Default canvas dimensions, matching an HTML <canvas> without attributes.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// ContextTypes lists the context types a headless canvas provides.
var ContextTypes = []string{"webgl", "webgl2", "experimental-webgl"}

// Document is an in-memory element tree addressed by exact selectors.
//
// Document is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements map[string]glkit.Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{elements: make(map[string]glkit.Element)}
}

// QuerySelector returns the element registered under selector.
func (d *Document) QuerySelector(selector string) (glkit.Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[selector]
	return el, ok
}

// AddCanvas registers a width x height canvas under selector and returns
// it. Non-positive sizes fall back to the HTML defaults.
func (d *Document) AddCanvas(selector string, width, height int, opts ...CanvasOption) *Canvas {
	c := newCanvas(width, height, opts...)
	d.mu.Lock()
	d.elements[selector] = c
	d.mu.Unlock()
	return c
}

// AddElement registers a non-canvas element with the given tag.
func (d *Document) AddElement(selector, tag string) {
	d.mu.Lock()
	d.elements[selector] = element{tag: tag}
	d.mu.Unlock()
}

// Remove drops the element registered under selector.
func (d *Document) Remove(selector string) {
	d.mu.Lock()
	delete(d.elements, selector)
	d.mu.Unlock()
}

// element is a plain element that cannot provide rendering contexts.
type element struct {
	tag string
}

func (e element) TagName() string                  { return e.tag }
func (e element) Context(string) (glkit.Host, bool) { return nil, false }

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithScale sets the device pixel ratio reported by the canvas.
func WithScale(scale float64) CanvasOption {
	return func(c *Canvas) {
		c.scale = scale
	}
}

// WithClientSize sets the logical (CSS) size of the canvas. It defaults to
// the initial pixel size.
func WithClientSize(width, height int) CanvasOption {
	return func(c *Canvas) {
		c.clientWidth = width
		c.clientHeight = height
	}
}

// Unsupported makes every context request on the canvas fail.
func Unsupported() CanvasOption {
	return func(c *Canvas) {
		c.unsupported = true
	}
}

// Canvas is a headless drawable surface.
type Canvas struct {
	mu           sync.Mutex
	width        int
	height       int
	clientWidth  int
	clientHeight int
	scale        float64
	unsupported  bool
	redraws      int

	ctx         *Context
	contextType string
}

func newCanvas(width, height int, opts ...CanvasOption) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	c := &Canvas{
		width:        width,
		height:       height,
		clientWidth:  width,
		clientHeight: height,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TagName returns "CANVAS".
func (c *Canvas) TagName() string { return glkit.CanvasTagName }

// Context returns the canvas rendering context of contextType.
//
// As in a browser, the first successful request fixes the context type:
// later requests for the same type return the same context, requests for
// another type fail.
func (c *Canvas) Context(contextType string) (glkit.Host, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx != nil {
		if contextType == c.contextType {
			return c.ctx, true
		}
		return nil, false
	}
	if c.unsupported || !supportedType(contextType) {
		return nil, false
	}
	c.ctx = newContext(c)
	c.contextType = contextType
	glkit.Logger().Debug("headless: context created", "type", contextType)
	return c.ctx, true
}

// PixelSize returns the canvas width and height in pixels.
func (c *Canvas) PixelSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// setPixelSize applies a width/height assignment. Negative values reset to
// the HTML defaults, as browsers do for invalid canvas attributes.
func (c *Canvas) setPixelSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width < 0 {
		width = DefaultWidth
	}
	if height < 0 {
		height = DefaultHeight
	}
	c.width = width
	c.height = height
}

// SetClientSize changes the logical size, as a CSS layout change would.
func (c *Canvas) SetClientSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clientWidth = width
	c.clientHeight = height
}

// Size returns the logical (CSS) size of the canvas.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientWidth, c.clientHeight
}

// ScaleFactor returns the device pixel ratio, 1.0 when unset.
func (c *Canvas) ScaleFactor() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scale == 0 {
		return 1.0
	}
	return c.scale
}

// RequestRedraw records a redraw request.
func (c *Canvas) RequestRedraw() {
	c.mu.Lock()
	c.redraws++
	c.mu.Unlock()
}

// Redraws returns the number of redraw requests.
func (c *Canvas) Redraws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
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
	_ glkit.Document            = (*Document)(nil)
	_ glkit.Element             = (*Canvas)(nil)
	_ gpucontext.WindowProvider = (*Canvas)(nil)
)
