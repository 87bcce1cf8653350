// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package webgl

import (
	"syscall/js"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend"
	"github.com/gogpu/gpucontext"
)

// RedrawEvent is the event type dispatched on a canvas by RequestRedraw.
const RedrawEvent = "glkit:redraw"

// Document wraps a DOM document.
type Document struct {
	doc js.Value
}

// NewDocument wraps the global document object.
func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// QuerySelector implements glkit.Document.
func (d *Document) QuerySelector(selector string) (glkit.Element, bool) {
	if !d.doc.Truthy() {
		return nil, false
	}
	el := d.doc.Call("querySelector", selector)
	if !el.Truthy() {
		return nil, false
	}
	return &Element{el: el}, true
}

// Element wraps a DOM element. Canvas elements also serve as
// gpucontext.WindowProvider.
type Element struct {
	el js.Value
}

// TagName implements glkit.Element.
func (e *Element) TagName() string {
	return e.el.Get("tagName").String()
}

// Context implements glkit.Element.
func (e *Element) Context(contextType string) (glkit.Host, bool) {
	if e.el.Get("getContext").Type() != js.TypeFunction {
		return nil, false
	}
	gl := e.el.Call("getContext", contextType)
	if !gl.Truthy() {
		return nil, false
	}
	return newContext(e.el, gl), true
}

// Size returns the CSS size of the element.
func (e *Element) Size() (width, height int) {
	return e.el.Get("clientWidth").Int(), e.el.Get("clientHeight").Int()
}

// ScaleFactor returns window.devicePixelRatio.
func (e *Element) ScaleFactor() float64 {
	ratio := js.Global().Get("devicePixelRatio")
	if ratio.Type() != js.TypeNumber || ratio.Float() <= 0 {
		return 1.0
	}
	return ratio.Float()
}

// RequestRedraw dispatches a RedrawEvent on the element.
func (e *Element) RequestRedraw() {
	e.el.Call("dispatchEvent", js.Global().Get("Event").New(RedrawEvent))
}

func init() {
	backend.Register(backend.BackendWebGL, func() glkit.Document {
		return NewDocument()
	})
}

var (
	_ glkit.Document            = (*Document)(nil)
	_ glkit.Element             = (*Element)(nil)
	_ gpucontext.WindowProvider = (*Element)(nil)
)
