package grob

// BoxKind is the kind name of Box.
const BoxKind = "box"

var boxAttrs = RegisterKind(BoxKind, EffectsAttrs, ColorAttrs, TransformAttrs, PenAttrs)

// BoxKwargs are the keywords accepted by NewBoxKwargs.
var BoxKwargs = joinKwargs(
	[]string{"x", "y", "width", "height"},
	EffectsKwargs, ColorKwargs, TransformKwargs, PenKwargs,
)

// Box is a filled and stroked axis-aligned rectangle. It composes every
// capability, so a Box is itself a StateProvider.
type Box struct {
	Base
	EffectsCap
	ColorCap
	TransformCap
	PenCap

	bounds Rect
}

// Ensure Box implements Grob and StateProvider.
var (
	_ Grob          = (*Box)(nil)
	_ StateProvider = (*Box)(nil)
)

// NewBox creates a box with every attribute inherited from ctx.
func NewBox(ctx *Context, x, y, width, height float64) *Box {
	return &Box{
		Base:         NewBase(BoxKind),
		EffectsCap:   newEffectsCap(ctx),
		ColorCap:     newColorCap(ctx),
		TransformCap: newTransformCap(ctx),
		PenCap:       newPenCap(ctx),
		bounds:       Rect{X: x, Y: y, W: width, H: height},
	}
}

// Bounds returns the untransformed rectangle.
func (b *Box) Bounds() Rect { return b.bounds }

// SetBounds replaces the untransformed rectangle.
func (b *Box) SetBounds(r Rect) { b.bounds = r }

// Copy returns a deep copy.
func (b *Box) Copy() (Grob, error) {
	cp := *b
	cp.PenCap = b.PenCap.clone()
	return &cp, nil
}

// Inherit resolves every inherited attribute against p.
func (b *Box) Inherit(p StateProvider) {
	b.EffectsCap.inherit(p)
	b.ColorCap.inherit(p)
	b.TransformCap.inherit(p)
	b.PenCap.inherit(p)
}

// Render fills and strokes the box. In center mode the transform pivots
// on the middle of the box.
func (b *Box) Render(be Backend) {
	be.Save()
	defer be.Restore()

	t := b.Transform()
	if b.TransformMode() == TransformCenter {
		c := b.bounds.Center()
		be.Concat(Translate(c.X, c.Y))
		be.Concat(t)
		be.Concat(Translate(-c.X, -c.Y))
	} else {
		be.Concat(t)
	}

	if fx := b.Effects(); !fx.IsDefault() {
		be.SetEffect(fx)
	}
	if fill := b.Fill(); fill.Visible() {
		be.FillRect(b.bounds, fill)
	}
	if stroke := b.Stroke(); stroke.Visible() {
		be.StrokeRect(b.bounds, stroke, b.Pen())
	}
}
