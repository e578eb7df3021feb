package grob

// EffectsCap gives a grob alpha, blend and shadow attributes.
//
// The effects attribute itself is inherited as a whole from the context;
// alpha, blend and shadow set on the grob override the matching field of
// the inherited Effect.
type EffectsCap struct {
	state   StateProvider
	effects Attr[Effect]

	alpha  Attr[float64]
	blend  Attr[BlendMode]
	shadow Attr[Shadow]
}

func newEffectsCap(state StateProvider) EffectsCap {
	return EffectsCap{state: state}
}

// base is the effect the local overrides apply to: the resolved effect
// once committed, the context's live effect before that.
func (c *EffectsCap) base() Effect {
	return c.effects.Or(c.state.Effects())
}

// Effects returns the inherited effect (or DefaultEffect while not yet
// resolved) with locally set fields applied on top.
func (c *EffectsCap) Effects() Effect {
	merged := c.effects.Or(DefaultEffect())
	if a, ok := c.alpha.Get(); ok {
		merged.Alpha = a
	}
	if b, ok := c.blend.Get(); ok {
		merged.Blend = b
	}
	if s, ok := c.shadow.Get(); ok {
		merged.Shadow = s
	}
	return merged
}

// Alpha returns the local alpha or the inherited one.
func (c *EffectsCap) Alpha() float64 {
	return c.alpha.Or(c.base().Alpha)
}

// SetAlpha sets the local alpha, clamped to [0, 1].
func (c *EffectsCap) SetAlpha(a float64) {
	c.alpha = Local(clampAlpha(a))
}

// Blend returns the local blend mode or the inherited one.
func (c *EffectsCap) Blend() BlendMode {
	return c.blend.Or(c.base().Blend)
}

// SetBlend sets the local blend mode.
func (c *EffectsCap) SetBlend(mode BlendMode) error {
	if err := checkBlend(mode); err != nil {
		return err
	}
	c.blend = Local(mode)
	return nil
}

// Shadow returns the local shadow or the inherited one.
func (c *EffectsCap) Shadow() Shadow {
	return c.shadow.Or(c.base().Shadow)
}

// SetShadow sets the local shadow. Pass the zero Shadow to disable it.
func (c *EffectsCap) SetShadow(s Shadow) {
	c.shadow = Local(s)
}

func (c *EffectsCap) inherit(p StateProvider) {
	c.effects.resolve(p.Effects())
}
