package grob

// ColorCap gives a grob independently inheritable fill and stroke colors.
type ColorCap struct {
	state  StateProvider
	fill   Attr[Color]
	stroke Attr[Color]
}

func newColorCap(state StateProvider) ColorCap {
	return ColorCap{state: state}
}

// Fill returns the local fill color or the context's current one.
func (c *ColorCap) Fill() Color {
	return c.fill.Or(c.state.Fill())
}

// SetFill sets the local fill color. Use NoColor to disable filling.
func (c *ColorCap) SetFill(col Color) {
	c.fill = Local(col)
}

// Stroke returns the local stroke color or the context's current one.
func (c *ColorCap) Stroke() Color {
	return c.stroke.Or(c.state.Stroke())
}

// SetStroke sets the local stroke color. Use NoColor to disable stroking.
func (c *ColorCap) SetStroke(col Color) {
	c.stroke = Local(col)
}

func (c *ColorCap) inherit(p StateProvider) {
	c.fill.resolve(p.Fill())
	c.stroke.resolve(p.Stroke())
}
