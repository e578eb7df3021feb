package grob

// PenCap gives a grob stroke width, cap, join and dash attributes.
type PenCap struct {
	state       StateProvider
	strokeWidth Attr[float64]
	capStyle    Attr[LineCap]
	joinStyle   Attr[LineJoin]
	dashStyle   Attr[[]int]
}

func newPenCap(state StateProvider) PenCap {
	return PenCap{state: state}
}

// StrokeWidth returns the local stroke width or the context's current one.
func (c *PenCap) StrokeWidth() float64 {
	return c.strokeWidth.Or(c.state.StrokeWidth())
}

// SetStrokeWidth sets the local stroke width, clamped to MinStrokeWidth.
func (c *PenCap) SetStrokeWidth(w float64) {
	c.strokeWidth = Local(clampStrokeWidth(w))
}

// CapStyle returns the local line cap or the context's current one.
func (c *PenCap) CapStyle() LineCap {
	return c.capStyle.Or(c.state.CapStyle())
}

// SetCapStyle sets the local line cap.
func (c *PenCap) SetCapStyle(style LineCap) error {
	if err := checkCap(style); err != nil {
		return err
	}
	c.capStyle = Local(style)
	return nil
}

// JoinStyle returns the local line join or the context's current one.
func (c *PenCap) JoinStyle() LineJoin {
	return c.joinStyle.Or(c.state.JoinStyle())
}

// SetJoinStyle sets the local line join.
func (c *PenCap) SetJoinStyle(style LineJoin) error {
	if err := checkJoin(style); err != nil {
		return err
	}
	c.joinStyle = Local(style)
	return nil
}

// DashStyle returns a copy of the local dash pattern or of the context's
// current one. Nil means a solid line.
func (c *PenCap) DashStyle() []int {
	if d, ok := c.dashStyle.Get(); ok {
		return cloneDash(d)
	}
	return c.state.DashStyle()
}

// SetDashStyle sets the local dash pattern; see NormalizeDash. Calling it
// without segments sets a solid line.
func (c *PenCap) SetDashStyle(segments ...float64) {
	c.dashStyle = Local(NormalizeDash(segments...))
}

// Pen returns the effective stroke settings.
func (c *PenCap) Pen() Stroke {
	return Stroke{
		Width: c.StrokeWidth(),
		Cap:   c.CapStyle(),
		Join:  c.JoinStyle(),
		Dash:  c.DashStyle(),
	}
}

func (c *PenCap) inherit(p StateProvider) {
	c.strokeWidth.resolve(p.StrokeWidth())
	c.capStyle.resolve(p.CapStyle())
	c.joinStyle.resolve(p.JoinStyle())
	c.dashStyle.resolve(p.DashStyle())
}

// clone duplicates the dash slice so copies never share it.
func (c PenCap) clone() PenCap {
	if d, ok := c.dashStyle.Get(); ok {
		c.dashStyle = Local(cloneDash(d))
	}
	return c
}
