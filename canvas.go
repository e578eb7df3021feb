package grob

// Canvas is the ordered list of grobs committed during one render pass.
// It only grows until the pass ends.
type Canvas struct {
	grobs []Grob
}

// Len returns the number of committed grobs.
func (c *Canvas) Len() int {
	return len(c.grobs)
}

// At returns the i-th committed grob.
func (c *Canvas) At(i int) Grob {
	return c.grobs[i]
}

// Grobs returns the committed grobs in commit order. The slice is a copy;
// the grobs are not.
func (c *Canvas) Grobs() []Grob {
	out := make([]Grob, len(c.grobs))
	copy(out, c.grobs)
	return out
}

func (c *Canvas) append(g Grob) {
	c.grobs = append(c.grobs, g)
}

func (c *Canvas) clear() {
	clear(c.grobs)
	c.grobs = c.grobs[:0]
}
