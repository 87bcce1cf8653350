// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"sync"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend"
)

// DefaultSelector is the selector of the canvas in the default document.
const DefaultSelector = "#glcanvas"

var (
	defaultOnce sync.Once
	defaultDoc  *Document
)

// Default returns the process-wide document served by the "headless"
// backend. It holds one DefaultWidth x DefaultHeight canvas under
// DefaultSelector.
func Default() *Document {
	defaultOnce.Do(func() {
		defaultDoc = NewDocument()
		defaultDoc.AddCanvas(DefaultSelector, DefaultWidth, DefaultHeight)
	})
	return defaultDoc
}

func init() {
	backend.Register(backend.BackendHeadless, func() glkit.Document {
		return Default()
	})
}
