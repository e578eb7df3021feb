package grob

import (
	"fmt"
	"sort"
)

// StateProvider supplies current values for inheritable attributes.
// The Context implements it; so does any grob composing every
// capability, such as a resolved Box.
type StateProvider interface {
	Effects() Effect
	Fill() Color
	Stroke() Color
	Transform() Matrix
	TransformMode() TransformMode
	StrokeWidth() float64
	CapStyle() LineCap
	JoinStyle() LineJoin
	// DashStyle returns a copy the caller may keep; nil means solid.
	DashStyle() []int
}

// Grob is a drawable graphic object.
type Grob interface {
	// Kind returns the registered kind name.
	Kind() string

	// StateAttrs returns the inheritable attributes of this kind.
	StateAttrs() StateAttr

	// Inherit replaces every attribute that is still inherited with the
	// provider's current value. Attributes already set are left alone.
	Inherit(p StateProvider)

	// Copy returns a value-independent duplicate. Mutable state is deep
	// copied; immutable leaves such as decoded pixels may be shared.
	Copy() (Grob, error)

	// Render sequences the backend calls that draw the grob.
	Render(b Backend)
}

// Base carries the kind bookkeeping every grob shares. Kinds embed it and
// override Copy; the Base implementation reports ErrNotImplemented.
type Base struct {
	kind  string
	attrs StateAttr
}

// NewBase returns a Base for a kind registered with RegisterKind.
// It panics if the kind is unknown.
func NewBase(kind string) Base {
	attrs, ok := KindAttrs(kind)
	if !ok {
		panic("grob: unregistered kind " + kind)
	}
	return Base{kind: kind, attrs: attrs}
}

// Kind returns the registered kind name.
func (b Base) Kind() string { return b.kind }

// StateAttrs returns the inheritable attributes of the kind.
func (b Base) StateAttrs() StateAttr { return b.attrs }

// Copy reports that the kind cannot be copied.
func (b Base) Copy() (Grob, error) {
	return nil, fmt.Errorf("%w on %s", ErrNotImplemented, b.kind)
}

// Kwargs holds constructor keyword arguments, as decoded from a scene
// file or passed by a script binding.
type Kwargs map[string]any

// Keyword sets accepted by each capability.
var (
	EffectsKwargs   = []string{"alpha", "blend", "shadow"}
	ColorKwargs     = []string{"fill", "stroke"}
	TransformKwargs = []string{"mode", "rotate", "scale", "skew", "translate"}
	PenKwargs       = []string{"nib", "strokewidth", "cap", "capstyle", "join", "joinstyle", "dash", "dashstyle"}
)

// Validate checks kwargs against the accepted keyword set. It returns an
// *ArgumentError naming every rejected key, sorted, or nil.
func Validate(kwargs Kwargs, accepted []string) error {
	ok := make(map[string]struct{}, len(accepted))
	for _, k := range accepted {
		ok[k] = struct{}{}
	}
	var unknown []string
	for k := range kwargs {
		if _, found := ok[k]; !found {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ArgumentError{Unknown: unknown}
}

func joinKwargs(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
