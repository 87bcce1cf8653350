package glkit

import (
	"strings"
)

// CanvasTagName is the element tag a drawable surface must carry.
const CanvasTagName = "CANVAS"

// Element is a UI element located by a Document.
type Element interface {
	// TagName returns the element's tag, e.g. "CANVAS" or "div".
	TagName() string
	// Context returns a rendering context of the given type, or false when
	// the element cannot provide one.
	Context(contextType string) (Host, bool)
}

// Document resolves selectors to elements.
type Document interface {
	// QuerySelector returns the single element matching selector.
	QuerySelector(selector string) (Element, bool)
}

// Acquire locates the canvas matching selector in doc and returns a
// rendering context for it.
//
// Acquire fails with ErrElementNotFound when nothing matches or the match
// is not a canvas, and with ErrContextUnavailable when none of the
// configured context types can be obtained.
func Acquire(doc Document, selector string, opts ...AcquireOption) (Host, error) {
	o := defaultAcquireOptions()
	for _, opt := range opts {
		opt(&o)
	}

	el, ok := doc.QuerySelector(selector)
	if !ok || el == nil || !strings.EqualFold(el.TagName(), CanvasTagName) {
		return nil, ErrElementNotFound
	}

	for _, contextType := range o.contextTypes {
		if h, ok := el.Context(contextType); ok && h != nil {
			Logger().Info("glkit: context acquired", "selector", selector, "type", contextType)
			return h, nil
		}
	}
	return nil, ErrContextUnavailable
}
