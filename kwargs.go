package grob

import (
	"fmt"
	"strings"
)

// NewBoxKwargs creates a Box from keyword arguments. See BoxKwargs for
// the accepted keys; unknown keys fail with an *ArgumentError.
func NewBoxKwargs(ctx *Context, kw Kwargs) (*Box, error) {
	if err := Validate(kw, BoxKwargs); err != nil {
		return nil, err
	}
	var r Rect
	var err error
	for key, dst := range map[string]*float64{"x": &r.X, "y": &r.Y, "width": &r.W, "height": &r.H} {
		if *dst, _, err = kw.Float(key); err != nil {
			return nil, err
		}
	}

	b := NewBox(ctx, r.X, r.Y, r.W, r.H)
	if err := ApplyEffectsKwargs(&b.EffectsCap, kw); err != nil {
		return nil, err
	}
	if err := ApplyColorKwargs(&b.ColorCap, kw); err != nil {
		return nil, err
	}
	if err := ApplyTransformKwargs(&b.TransformCap, kw); err != nil {
		return nil, err
	}
	if err := ApplyPenKwargs(&b.PenCap, kw); err != nil {
		return nil, err
	}
	return b, nil
}

// NewImageKwargs creates an Image from keyword arguments. The source is
// the "path" keyword. See ImageKwargs for the accepted keys.
func NewImageKwargs(ctx *Context, kw Kwargs) (*Image, error) {
	if err := Validate(kw, ImageKwargs); err != nil {
		return nil, err
	}
	path, ok, err := kw.Text("path")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: image needs a path", ErrInvalidArgument)
	}
	x, _, err := kw.Float("x")
	if err != nil {
		return nil, err
	}
	y, _, err := kw.Float("y")
	if err != nil {
		return nil, err
	}

	var opts []ImageOption
	if w, ok, err := kw.Float("width"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithWidth(w))
	}
	if h, ok, err := kw.Float("height"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithHeight(h))
	}
	if a, ok, err := kw.Float("alpha"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithAlpha(a))
	}
	if d, ok, err := kw.Bool("debug"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, WithDebug(d))
	}

	img, err := NewImage(ctx, ImageSource{Path: path}, x, y, opts...)
	if err != nil {
		return nil, err
	}
	if err := ApplyTransformKwargs(&img.TransformCap, kw); err != nil {
		return nil, err
	}
	return img, nil
}

// EffectsSetter is implemented by Context and EffectsCap.
type EffectsSetter interface {
	SetAlpha(a float64)
	SetBlend(mode BlendMode) error
	SetShadow(s Shadow)
}

// ColorSetter is implemented by Context and ColorCap.
type ColorSetter interface {
	SetFill(col Color)
	SetStroke(col Color)
}

// TransformSetter is implemented by Context and TransformCap.
type TransformSetter interface {
	SetTransformMode(m TransformMode) error
	Translate(x, y float64)
	Rotate(degrees float64)
	Scale(x, y float64)
	Skew(xDeg, yDeg float64)
}

// PenSetter is implemented by Context and PenCap.
type PenSetter interface {
	SetStrokeWidth(w float64)
	SetCapStyle(style LineCap) error
	SetJoinStyle(style LineJoin) error
	SetDashStyle(segments ...float64)
}

var (
	_ EffectsSetter   = (*Context)(nil)
	_ EffectsSetter   = (*EffectsCap)(nil)
	_ ColorSetter     = (*Context)(nil)
	_ ColorSetter     = (*ColorCap)(nil)
	_ TransformSetter = (*Context)(nil)
	_ TransformSetter = (*TransformCap)(nil)
	_ PenSetter       = (*Context)(nil)
	_ PenSetter       = (*PenCap)(nil)
)

// ApplyEffectsKwargs applies the alpha, blend and shadow keywords to c.
func ApplyEffectsKwargs(c EffectsSetter, kw Kwargs) error {
	if a, ok, err := kw.Float("alpha"); err != nil {
		return err
	} else if ok {
		c.SetAlpha(a)
	}
	if s, ok, err := kw.Text("blend"); err != nil {
		return err
	} else if ok {
		mode, err := ParseBlendMode(s)
		if err != nil {
			return err
		}
		if err := c.SetBlend(mode); err != nil {
			return err
		}
	}
	if s, ok, err := kw.Shadow("shadow"); err != nil {
		return err
	} else if ok {
		c.SetShadow(s)
	}
	return nil
}

// ApplyColorKwargs applies the fill and stroke keywords to c.
func ApplyColorKwargs(c ColorSetter, kw Kwargs) error {
	if col, ok, err := kw.Color("fill"); err != nil {
		return err
	} else if ok {
		c.SetFill(col)
	}
	if col, ok, err := kw.Color("stroke"); err != nil {
		return err
	} else if ok {
		c.SetStroke(col)
	}
	return nil
}

// ApplyTransformKwargs applies the mode keyword, then translate, rotate,
// scale and skew in that order, whatever order the keys were given in.
func ApplyTransformKwargs(c TransformSetter, kw Kwargs) error {
	if s, ok, err := kw.Text("mode"); err != nil {
		return err
	} else if ok {
		m, err := ParseTransformMode(s)
		if err != nil {
			return err
		}
		if err := c.SetTransformMode(m); err != nil {
			return err
		}
	}
	if x, y, ok, err := kw.Pair("translate", 0); err != nil {
		return err
	} else if ok {
		c.Translate(x, y)
	}
	if deg, ok, err := kw.Float("rotate"); err != nil {
		return err
	} else if ok {
		c.Rotate(deg)
	}
	if x, y, ok, err := kw.Pair("scale", -1); err != nil {
		return err
	} else if ok {
		c.Scale(x, y)
	}
	if x, y, ok, err := kw.Pair("skew", 0); err != nil {
		return err
	} else if ok {
		c.Skew(x, y)
	}
	return nil
}

// ApplyPenKwargs applies the pen keywords to c. The short keyword wins
// when both forms are given.
func ApplyPenKwargs(c PenSetter, kw Kwargs) error {
	if w, ok, err := kw.Float(kw.Alias("nib", "strokewidth")); err != nil {
		return err
	} else if ok {
		c.SetStrokeWidth(w)
	}
	if s, ok, err := kw.Text(kw.Alias("cap", "capstyle")); err != nil {
		return err
	} else if ok {
		style, err := ParseLineCap(s)
		if err != nil {
			return err
		}
		if err := c.SetCapStyle(style); err != nil {
			return err
		}
	}
	if s, ok, err := kw.Text(kw.Alias("join", "joinstyle")); err != nil {
		return err
	} else if ok {
		style, err := ParseLineJoin(s)
		if err != nil {
			return err
		}
		if err := c.SetJoinStyle(style); err != nil {
			return err
		}
	}
	if d, ok, err := kw.Floats(kw.Alias("dash", "dashstyle")); err != nil {
		return err
	} else if ok {
		c.SetDashStyle(d...)
	}
	return nil
}

// Alias returns short if it is present, long otherwise.
func (kw Kwargs) Alias(short, long string) string {
	if _, ok := kw[short]; ok {
		return short
	}
	return long
}

func badKwarg(key string, v any, want string) error {
	return fmt.Errorf("%w: %s should be %s, got %T", ErrInvalidArgument, key, want, v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// Float returns the number stored under key.
func (kw Kwargs) Float(key string) (float64, bool, error) {
	v, ok := kw[key]
	if !ok {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false, badKwarg(key, v, "a number")
	}
	return f, true, nil
}

// Text returns the string stored under key.
func (kw Kwargs) Text(key string) (string, bool, error) {
	v, ok := kw[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, badKwarg(key, v, "a string")
	}
	return s, true, nil
}

// Bool returns the boolean stored under key.
func (kw Kwargs) Bool(key string) (bool, bool, error) {
	v, ok := kw[key]
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, badKwarg(key, v, "a boolean")
	}
	return b, true, nil
}

// Floats returns the list of numbers stored under key. A single number
// is a one-element list.
func (kw Kwargs) Floats(key string) ([]float64, bool, error) {
	v, ok := kw[key]
	if !ok {
		return nil, false, nil
	}
	if f, ok := toFloat(v); ok {
		return []float64{f}, true, nil
	}
	var items []any
	switch l := v.(type) {
	case []any:
		items = l
	case []float64:
		return append([]float64(nil), l...), true, nil
	case []int:
		out := make([]float64, len(l))
		for i, n := range l {
			out[i] = float64(n)
		}
		return out, true, nil
	default:
		return nil, false, badKwarg(key, v, "a list of numbers")
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, false, badKwarg(key, v, "a list of numbers")
		}
		out[i] = f
	}
	return out, true, nil
}

// Pair returns an [x, y] pair stored under key. A single number n is
// read as [n, n]; if fillY is not negative, as [n, fillY] instead.
func (kw Kwargs) Pair(key string, fillY float64) (x, y float64, ok bool, err error) {
	fs, ok, err := kw.Floats(key)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	switch len(fs) {
	case 1:
		if fillY < 0 {
			return fs[0], fs[0], true, nil
		}
		return fs[0], fillY, true, nil
	case 2:
		return fs[0], fs[1], true, nil
	}
	return 0, 0, false, badKwarg(key, kw[key], "a number or an [x, y] pair")
}

// Color returns the color stored under key: a hex string, a gray level,
// or a list of 3 or 4 components.
func (kw Kwargs) Color(key string) (Color, bool, error) {
	v, ok := kw[key]
	if !ok {
		return Color{}, false, nil
	}
	col, err := parseColorValue(key, v)
	if err != nil {
		return Color{}, false, err
	}
	return col, true, nil
}

func parseColorValue(key string, v any) (Color, error) {
	if s, ok := v.(string); ok {
		if strings.EqualFold(s, "none") {
			return NoColor, nil
		}
		col, ok := Hex(s)
		if !ok {
			return Color{}, fmt.Errorf("%w: %s: bad color %q", ErrInvalidArgument, key, s)
		}
		return col, nil
	}
	fs, _, err := Kwargs{key: v}.Floats(key)
	if err != nil {
		return Color{}, badKwarg(key, v, "a color")
	}
	switch len(fs) {
	case 1:
		return Gray(fs[0]), nil
	case 3:
		return RGB(fs[0], fs[1], fs[2]), nil
	case 4:
		return RGBA(fs[0], fs[1], fs[2], fs[3]), nil
	}
	return Color{}, badKwarg(key, v, "a color")
}

// Shadow returns the shadow stored under key as a table with the keys
// color, dx, dy and blur.
func (kw Kwargs) Shadow(key string) (Shadow, bool, error) {
	v, ok := kw[key]
	if !ok {
		return Shadow{}, false, nil
	}
	var table Kwargs
	switch t := v.(type) {
	case map[string]any:
		table = t
	case Kwargs:
		table = t
	default:
		return Shadow{}, false, badKwarg(key, v, "a table")
	}
	if err := Validate(table, []string{"color", "dx", "dy", "blur"}); err != nil {
		return Shadow{}, false, err
	}

	s := Shadow{Color: RGBA(0, 0, 0, 0.75), DX: 10, DY: 10, Blur: 10}
	if col, ok, err := table.Color("color"); err != nil {
		return Shadow{}, false, err
	} else if ok {
		s.Color = col
	}
	for name, dst := range map[string]*float64{"dx": &s.DX, "dy": &s.DY, "blur": &s.Blur} {
		if f, ok, err := table.Float(name); err != nil {
			return Shadow{}, false, err
		} else if ok {
			*dst = f
		}
	}
	return s, true, nil
}
