package grob

import (
	"fmt"
	"math"
	"strings"
)

// BlendMode defines how source pixels are composited over the canvas.
type BlendMode int

// Blend modes.
const (
	// BlendNormal performs standard alpha blending (source over destination).
	BlendNormal BlendMode = iota
	// BlendMultiply multiplies source and destination colors.
	BlendMultiply
	// BlendScreen performs inverse multiply for lighter results.
	BlendScreen
	// BlendOverlay combines multiply and screen based on destination brightness.
	BlendOverlay
	// BlendDarken keeps the darker of source and destination.
	BlendDarken
	// BlendLighten keeps the lighter of source and destination.
	BlendLighten
)

var blendNames = [...]string{"normal", "multiply", "screen", "overlay", "darken", "lighten"}

func (b BlendMode) String() string {
	if b >= 0 && int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// Valid reports whether b is one of the defined blend modes.
func (b BlendMode) Valid() bool {
	return b >= BlendNormal && b <= BlendLighten
}

// ParseBlendMode parses a blend mode name (case-insensitive).
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendNames {
		if strings.EqualFold(s, name) {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown blend mode %q", ErrInvalidStyle, s)
}

// Shadow describes a drop shadow. The zero value casts no shadow.
type Shadow struct {
	Color  Color
	DX, DY float64
	Blur   float64
}

// Visible reports whether the shadow has any effect.
func (s Shadow) Visible() bool {
	return s.Color.Visible()
}

// Effect is the merged alpha, blend and shadow state applied to a grob.
type Effect struct {
	Alpha  float64
	Blend  BlendMode
	Shadow Shadow
}

// DefaultEffect returns an opaque, normally blended effect without shadow.
func DefaultEffect() Effect {
	return Effect{Alpha: 1, Blend: BlendNormal}
}

// IsDefault reports whether e changes nothing about how a grob is drawn.
func (e Effect) IsDefault() bool {
	return e == DefaultEffect()
}

func clampAlpha(a float64) float64 {
	if a != a {
		return 1
	}
	return math.Max(0, math.Min(1, a))
}

func checkBlend(b BlendMode) error {
	if !b.Valid() {
		return fmt.Errorf("%w: unknown blend mode %v", ErrInvalidStyle, b)
	}
	return nil
}
