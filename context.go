package grob

import (
	"fmt"
	"math"
)

// PlotStyle is the commit policy of Context.Draw.
type PlotStyle int

const (
	// PlotCopy commits a deep copy of the grob.
	PlotCopy PlotStyle = iota
	// PlotLive commits the grob itself.
	PlotLive
	// PlotOff commits nothing.
	PlotOff
)

func (s PlotStyle) String() string {
	switch s {
	case PlotCopy:
		return "copy"
	case PlotLive:
		return "live"
	case PlotOff:
		return "off"
	}
	return fmt.Sprintf("PlotStyle(%d)", int(s))
}

// Valid reports whether s is one of the defined plot styles.
func (s PlotStyle) Valid() bool {
	return s >= PlotCopy && s <= PlotOff
}

// ParsePlotStyle parses "copy", "live" or "off".
func ParsePlotStyle(s string) (PlotStyle, error) {
	for _, ps := range []PlotStyle{PlotCopy, PlotLive, PlotOff} {
		if ps.String() == s {
			return ps, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown plot style %q", ErrInvalidArgument, s)
}

// drawState is the inheritable part of the context.
type drawState struct {
	fill        Color
	stroke      Color
	transform   Matrix
	mode        TransformMode
	effects     Effect
	strokeWidth float64
	capStyle    LineCap
	joinStyle   LineJoin
	dash        []int
}

func defaultDrawState() drawState {
	return drawState{
		fill:        Black,
		stroke:      NoColor,
		transform:   Identity(),
		mode:        TransformCenter,
		effects:     DefaultEffect(),
		strokeWidth: 1.0,
		capStyle:    LineCapButt,
		joinStyle:   LineJoinMiter,
	}
}

// Context is the drawing state of one script execution together with its
// canvas. Grobs inherit unset attributes from it when drawn.
//
// The image decode cache outlives Reset so that repeated runs of a script
// reuse decoded images.
//
// A Context is not safe for concurrent use.
type Context struct {
	width, height int
	opts          contextOptions

	plotStyle PlotStyle
	state     drawState
	stack     []Matrix
	canvas    Canvas

	images *imageCache
}

// Ensure Context implements StateProvider.
var _ StateProvider = (*Context)(nil)

// NewContext creates a drawing context with default state.
func NewContext(opts ...ContextOption) *Context {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	c := &Context{
		opts:   options,
		images: newImageCache(options.cacheLimit),
	}
	c.reset()
	return c
}

// Reset restores the context to its initial state at the start of a run:
// attributes back to defaults, canvas cleared, plot style and canvas size
// back to their configured values. The image cache is kept.
func (c *Context) Reset() {
	c.reset()
	Logger().Debug("grob: context reset",
		"width", c.width, "height", c.height, "plotstyle", c.plotStyle.String())
}

func (c *Context) reset() {
	c.width = c.opts.width
	c.height = c.opts.height
	c.plotStyle = c.opts.plotStyle
	c.state = defaultDrawState()
	c.stack = c.stack[:0]
	c.canvas.clear()
}

// Size returns the canvas dimensions.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// SetSize changes the canvas dimensions for the current run.
func (c *Context) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	c.width, c.height = width, height
	return nil
}

// PlotStyle returns the current commit policy.
func (c *Context) PlotStyle() PlotStyle {
	return c.plotStyle
}

// SetPlotStyle changes the commit policy for subsequent Draw calls.
func (c *Context) SetPlotStyle(s PlotStyle) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown plot style %v", ErrInvalidArgument, s)
	}
	c.plotStyle = s
	return nil
}

// ImageCacheStats reports the state of the image decode cache.
func (c *Context) ImageCacheStats() ImageCacheStats {
	return c.images.stats()
}

// ClearImageCache drops every decoded image. The next NewImage of a path
// decodes the file again.
func (c *Context) ClearImageCache() {
	c.images.entries.Clear()
	Logger().Debug("grob: image cache cleared")
}

// Canvas returns the grobs committed so far in this pass.
func (c *Context) Canvas() *Canvas {
	return &c.canvas
}

// Draw commits g to the canvas according to the plot style. Under PlotCopy
// a deep copy is committed, under PlotLive g itself, under PlotOff nothing.
// The committed grob inherits the context's current values for its unset
// attributes; those values are frozen from then on.
func (c *Context) Draw(g Grob) error {
	if g == nil {
		return fmt.Errorf("%w: nil grob", ErrInvalidArgument)
	}
	switch c.plotStyle {
	case PlotOff:
		return nil
	case PlotCopy:
		cp, err := g.Copy()
		if err != nil {
			return err
		}
		g = cp
	}
	g.Inherit(c)
	c.canvas.append(g)
	return nil
}

// Render hands the canvas to b in commit order and then clears it.
func (c *Context) Render(b Backend) error {
	if b == nil {
		return fmt.Errorf("%w: nil backend", ErrInvalidArgument)
	}
	st := c.images.entries.Stats()
	Logger().Debug("grob: render pass", "grobs", c.canvas.Len(),
		"cached_images", st.Len, "cache_hits", st.Hits, "cache_misses", st.Misses)
	for _, g := range c.canvas.grobs {
		g.Render(b)
	}
	c.canvas.clear()
	return nil
}

// StateProvider implementation.

// Effects returns the current effect.
func (c *Context) Effects() Effect { return c.state.effects }

// Fill returns the current fill color.
func (c *Context) Fill() Color { return c.state.fill }

// Stroke returns the current stroke color.
func (c *Context) Stroke() Color { return c.state.stroke }

// Transform returns the current transform.
func (c *Context) Transform() Matrix { return c.state.transform }

// TransformMode returns the current pivot mode.
func (c *Context) TransformMode() TransformMode { return c.state.mode }

// StrokeWidth returns the current stroke width.
func (c *Context) StrokeWidth() float64 { return c.state.strokeWidth }

// CapStyle returns the current line cap.
func (c *Context) CapStyle() LineCap { return c.state.capStyle }

// JoinStyle returns the current line join.
func (c *Context) JoinStyle() LineJoin { return c.state.joinStyle }

// DashStyle returns a copy of the current dash pattern.
func (c *Context) DashStyle() []int { return cloneDash(c.state.dash) }

// State setters.

// SetFill sets the current fill color.
func (c *Context) SetFill(col Color) { c.state.fill = col }

// SetStroke sets the current stroke color.
func (c *Context) SetStroke(col Color) { c.state.stroke = col }

// SetStrokeWidth sets the current stroke width, clamped to MinStrokeWidth.
func (c *Context) SetStrokeWidth(w float64) { c.state.strokeWidth = clampStrokeWidth(w) }

// SetCapStyle sets the current line cap.
func (c *Context) SetCapStyle(style LineCap) error {
	if err := checkCap(style); err != nil {
		return err
	}
	c.state.capStyle = style
	return nil
}

// SetJoinStyle sets the current line join.
func (c *Context) SetJoinStyle(style LineJoin) error {
	if err := checkJoin(style); err != nil {
		return err
	}
	c.state.joinStyle = style
	return nil
}

// SetDashStyle sets the current dash pattern; see NormalizeDash.
func (c *Context) SetDashStyle(segments ...float64) {
	c.state.dash = NormalizeDash(segments...)
}

// SetAlpha sets the current alpha, clamped to [0, 1].
func (c *Context) SetAlpha(a float64) { c.state.effects.Alpha = clampAlpha(a) }

// SetBlend sets the current blend mode.
func (c *Context) SetBlend(mode BlendMode) error {
	if err := checkBlend(mode); err != nil {
		return err
	}
	c.state.effects.Blend = mode
	return nil
}

// SetShadow sets the current shadow.
func (c *Context) SetShadow(s Shadow) { c.state.effects.Shadow = s }

// SetTransformMode sets the current pivot mode.
func (c *Context) SetTransformMode(m TransformMode) error {
	if err := checkTransformMode(m); err != nil {
		return err
	}
	c.state.mode = m
	return nil
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(m Matrix) { c.state.transform = m }

// Translate moves the current coordinate space.
func (c *Context) Translate(x, y float64) {
	c.state.transform = c.state.transform.Multiply(Translate(x, y))
}

// Rotate turns the current coordinate space by degrees, counter-clockwise
// on screen.
func (c *Context) Rotate(degrees float64) {
	c.RotateRadians(degrees * math.Pi / 180)
}

// RotateRadians turns the current coordinate space by radians.
func (c *Context) RotateRadians(radians float64) {
	c.state.transform = c.state.transform.Multiply(Rotate(-radians))
}

// Scale scales the current coordinate space.
func (c *Context) Scale(x, y float64) {
	c.state.transform = c.state.transform.Multiply(Scale(x, y))
}

// Skew shears the current coordinate space by angles in degrees.
func (c *Context) Skew(xDeg, yDeg float64) {
	c.state.transform = c.state.transform.Multiply(Skew(xDeg, yDeg))
}

// ResetTransform replaces the current transform with the identity.
func (c *Context) ResetTransform() {
	c.state.transform = Identity()
}

// Push saves the current transform onto a stack.
func (c *Context) Push() {
	c.stack = append(c.stack, c.state.transform)
}

// Pop restores the transform saved by the matching Push.
// If the stack is empty, this is a no-op.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.state.transform = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}
