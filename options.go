package grob

// Default canvas dimensions.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx := grob.NewContext(
//	    grob.WithCanvasSize(800, 600),
//	    grob.WithPlotStyle(grob.PlotLive),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	width, height int
	plotStyle     PlotStyle
	cacheLimit    int
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		width:     DefaultWidth,
		height:    DefaultHeight,
		plotStyle: PlotCopy,
	}
}

// WithCanvasSize sets the canvas dimensions. Non-positive values keep
// the defaults.
func WithCanvasSize(width, height int) ContextOption {
	return func(o *contextOptions) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithPlotStyle sets the plot style the context starts with and returns to
// on Reset. Invalid styles are ignored.
func WithPlotStyle(s PlotStyle) ContextOption {
	return func(o *contextOptions) {
		if s.Valid() {
			o.plotStyle = s
		}
	}
}

// WithCacheLimit sets the soft limit of the image decode cache.
// 0 (the default) means unlimited.
func WithCacheLimit(n int) ContextOption {
	return func(o *contextOptions) {
		if n >= 0 {
			o.cacheLimit = n
		}
	}
}
