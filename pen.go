package grob

import (
	"fmt"
	"math"
	"strings"
)

// MinStrokeWidth is the floor stroke widths are clamped to. A stroke is
// never exactly zero wide.
const MinStrokeWidth = 0.0001

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

var lineCapNames = [...]string{"butt", "round", "square"}

func (c LineCap) String() string {
	if c >= 0 && int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return fmt.Sprintf("LineCap(%d)", int(c))
}

// Valid reports whether c is one of the defined caps.
func (c LineCap) Valid() bool {
	return c >= LineCapButt && c <= LineCapSquare
}

// ParseLineCap parses "butt", "round" or "square" (case-insensitive).
func ParseLineCap(s string) (LineCap, error) {
	for i, name := range lineCapNames {
		if strings.EqualFold(s, name) {
			return LineCap(i), nil
		}
	}
	return 0, fmt.Errorf("%w: line cap style should be BUTT, ROUND or SQUARE, got %q", ErrInvalidStyle, s)
}

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{"miter", "round", "bevel"}

func (j LineJoin) String() string {
	if j >= 0 && int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return fmt.Sprintf("LineJoin(%d)", int(j))
}

// Valid reports whether j is one of the defined joins.
func (j LineJoin) Valid() bool {
	return j >= LineJoinMiter && j <= LineJoinBevel
}

// ParseLineJoin parses "miter", "round" or "bevel" (case-insensitive).
func ParseLineJoin(s string) (LineJoin, error) {
	for i, name := range lineJoinNames {
		if strings.EqualFold(s, name) {
			return LineJoin(i), nil
		}
	}
	return 0, fmt.Errorf("%w: line join style should be MITER, ROUND or BEVEL, got %q", ErrInvalidStyle, s)
}

func checkCap(c LineCap) error {
	if !c.Valid() {
		return fmt.Errorf("%w: line cap style should be BUTT, ROUND or SQUARE, got %v", ErrInvalidStyle, c)
	}
	return nil
}

func checkJoin(j LineJoin) error {
	if !j.Valid() {
		return fmt.Errorf("%w: line join style should be MITER, ROUND or BEVEL, got %v", ErrInvalidStyle, j)
	}
	return nil
}

// clampStrokeWidth keeps widths strictly positive.
func clampStrokeWidth(w float64) float64 {
	if w < MinStrokeWidth || w != w {
		return MinStrokeWidth
	}
	return w
}

// maxDashStep caps a single dash length.
const maxDashStep = math.MaxInt32

// NormalizeDash converts a dash pattern to whole, non-negative on/off
// lengths. NaN counts as 0 and lengths are capped at math.MaxInt32.
// An odd-length pattern is extended by repeating its last
// element, assuming the omitted gap matches it. Nil or empty input
// means a solid line and yields nil.
func NormalizeDash(segments ...float64) []int {
	if len(segments) == 0 {
		return nil
	}
	steps := make([]int, len(segments), len(segments)+1)
	for i, s := range segments {
		switch {
		case math.IsNaN(s):
			s = 0
		case s < 0:
			s = -s
		}
		steps[i] = int(min(s, maxDashStep))
	}
	if len(steps)%2 != 0 {
		steps = append(steps, steps[len(steps)-1])
	}
	return steps
}

func cloneDash(d []int) []int {
	if d == nil {
		return nil
	}
	out := make([]int, len(d))
	copy(out, d)
	return out
}

// Stroke is a fully resolved pen, passed to a [Backend] when stroking.
type Stroke struct {
	Width float64
	Cap   LineCap
	Join  LineJoin
	// Dash holds alternating on/off lengths; nil means a solid line.
	Dash []int
}

// DefaultStroke returns a solid 1-unit stroke with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width: 1.0,
		Cap:   LineCapButt,
		Join:  LineJoinMiter,
	}
}

// Clone creates a deep copy of the Stroke.
func (s Stroke) Clone() Stroke {
	s.Dash = cloneDash(s.Dash)
	return s
}
