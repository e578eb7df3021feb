package grob

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"sync"
)

// StateAttr is a bit mask of inheritable attribute names.
type StateAttr uint16

// Inheritable attributes. Each belongs to exactly one capability.
const (
	AttrEffects StateAttr = 1 << iota
	AttrFillColor
	AttrStrokeColor
	AttrTransform
	AttrTransformMode
	AttrStrokeWidth
	AttrCapStyle
	AttrJoinStyle
	AttrDashStyle

	firstUnusedAttr
	AllAttrs = firstUnusedAttr - 1
)

var attrNames = [...]string{
	"effects",
	"fill",
	"stroke",
	"transform",
	"transformmode",
	"strokewidth",
	"capstyle",
	"joinstyle",
	"dashstyle",
}

// Names returns the attribute names in the mask, in declaration order.
func (a StateAttr) Names() []string {
	names := make([]string, 0, bits.OnesCount16(uint16(a)))
	for i := range attrNames {
		if a&(1<<i) != 0 {
			names = append(names, attrNames[i])
		}
	}
	return names
}

// Has reports whether every attribute of other is in a.
func (a StateAttr) Has(other StateAttr) bool {
	return a&other == other
}

func (a StateAttr) String() string {
	return strings.Join(a.Names(), "|")
}

// Attribute sets owned by each capability.
const (
	EffectsAttrs   = AttrEffects
	ColorAttrs     = AttrFillColor | AttrStrokeColor
	TransformAttrs = AttrTransform | AttrTransformMode
	PenAttrs       = AttrStrokeWidth | AttrCapStyle | AttrJoinStyle | AttrDashStyle
)

// Kind registry state, guarded for registration from init functions.
var (
	kindsMu sync.RWMutex
	kinds   = make(map[string]StateAttr)
)

// RegisterKind records the inheritable attributes of a grob kind as the
// union of its capability sets. It panics if two capability sets share an
// attribute or if the kind is already registered, following the
// database/sql driver pattern of failing loudly during initialization.
func RegisterKind(name string, caps ...StateAttr) StateAttr {
	var union StateAttr
	for _, c := range caps {
		if union&c != 0 {
			panic(fmt.Sprintf("grob: kind %s: attribute collision on %s", name, union&c))
		}
		union |= c
	}

	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, dup := kinds[name]; dup {
		panic("grob: RegisterKind called twice for " + name)
	}
	kinds[name] = union
	return union
}

// KindAttrs returns the inheritable attributes registered for a kind.
func KindAttrs(name string) (StateAttr, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	a, ok := kinds[name]
	return a, ok
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
