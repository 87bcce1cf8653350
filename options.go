package glkit

// AcquireOption configures context acquisition.
//
// Example:
//
//	// Prefer WebGL 2, fall back to WebGL 1.
//	h, err := glkit.Acquire(doc, "#scene", glkit.WithContextTypes("webgl2", "webgl"))
type AcquireOption func(*acquireOptions)

// acquireOptions holds optional configuration for Acquire.
type acquireOptions struct {
	contextTypes []string
}

// DefaultContextType is the context type requested when none is configured.
const DefaultContextType = "webgl"

// defaultAcquireOptions returns the default acquisition options.
func defaultAcquireOptions() acquireOptions {
	return acquireOptions{
		contextTypes: []string{DefaultContextType},
	}
}

// WithContextTypes sets the context types requested from the canvas, in
// order. The first type the canvas can provide wins. Empty names are
// ignored; an empty list keeps the default.
func WithContextTypes(types ...string) AcquireOption {
	return func(o *acquireOptions) {
		kept := make([]string, 0, len(types))
		for _, t := range types {
			if t != "" {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			o.contextTypes = kept
		}
	}
}
