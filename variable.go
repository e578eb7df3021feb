package grob

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
)

// VarType is the declared type of a Variable.
type VarType int

// Variable types. The zero value is not a type; NewVariable maps it to
// VarNumber.
const (
	VarNumber VarType = iota + 1
	VarText
	VarBoolean
	VarButton
)

func (t VarType) String() string {
	switch t {
	case VarNumber:
		return "number"
	case VarText:
		return "text"
	case VarBoolean:
		return "boolean"
	case VarButton:
		return "button"
	}
	return fmt.Sprintf("VarType(%d)", int(t))
}

// ParseVarType parses "number", "text", "boolean" or "button".
func ParseVarType(s string) (VarType, error) {
	for _, t := range []VarType{VarNumber, VarText, VarBoolean, VarButton} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown variable type %q", ErrInvalidArgument, s)
}

// Variable is a typed script parameter bound to a host UI control. Its
// type and bounds are fixed at declaration; the UI updates Value.
//
// Value and Default hold a float64 for VarNumber, a string for VarText
// and VarButton, and a bool for VarBoolean.
type Variable struct {
	Name     string
	Type     VarType
	Default  any
	Min, Max float64
	Value    any
}

// VarOption configures a Variable during declaration.
type VarOption func(*varOptions)

type varOptions struct {
	def, value         any
	min, max           float64
	hasRange, hasValue bool
}

// WithDefault sets the default value; it is sanitized to the type.
func WithDefault(v any) VarOption {
	return func(o *varOptions) { o.def = v }
}

// WithRange sets the bounds of a VarNumber.
func WithRange(min, max float64) VarOption {
	return func(o *varOptions) { o.min, o.max, o.hasRange = min, max, true }
}

// WithValue sets the current value; it is sanitized to the type.
func WithValue(v any) VarOption {
	return func(o *varOptions) { o.value, o.hasValue = v, true }
}

// NewVariable declares a variable. Without options a VarNumber defaults
// to 50 in [0, 100], a VarText to "hello", a VarBoolean to true and a
// VarButton to its name. The value starts at the default.
func NewVariable(name string, typ VarType, opts ...VarOption) *Variable {
	if typ == 0 {
		typ = VarNumber
	}
	o := varOptions{min: 0, max: 100}
	for _, opt := range opts {
		opt(&o)
	}

	v := &Variable{Name: name, Type: typ}
	switch typ {
	case VarNumber:
		v.Default = 50.0
		v.Min, v.Max = o.min, o.max
	case VarText:
		v.Default = "hello"
	case VarBoolean:
		v.Default = true
	case VarButton:
		v.Default = name
	}
	if o.def != nil && typ != VarButton {
		v.Default = v.Sanitize(o.def)
	}
	v.Value = v.Default
	if o.hasValue && typ != VarButton {
		v.Value = v.Sanitize(o.value)
	}
	return v
}

// Sanitize coerces val to the variable's type. It never fails:
// VarNumber reads booleans as 1 and 0 and falls back to 0.0 on parse
// errors. VarText replaces invalid UTF-8. VarBoolean is true only for
// "true", "1" and "yes" in any case, with no surrounding space.
// VarButton carries no value and yields nil.
func (v *Variable) Sanitize(val any) any {
	switch v.Type {
	case VarNumber:
		if f, ok := toFloat(val); ok {
			return f
		}
		if b, ok := val.(bool); ok {
			if b {
				return 1.0
			}
			return 0.0
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(val)), 64)
		if err != nil {
			return 0.0
		}
		return f
	case VarText:
		return toText(val)
	case VarBoolean:
		if b, ok := val.(bool); ok {
			return b
		}
		switch cases.Fold().String(toText(val)) {
		case "true", "1", "yes":
			return true
		}
		return false
	}
	return nil
}

// toText formats val and decodes it as UTF-8, replacing invalid bytes.
func toText(val any) string {
	var raw string
	switch s := val.(type) {
	case string:
		raw = s
	case []byte:
		raw = string(s)
	default:
		raw = fmt.Sprint(val)
	}
	out, err := unicode.UTF8.NewDecoder().String(raw)
	if err != nil {
		return strings.ToValidUTF8(raw, "�")
	}
	return out
}

// Number returns the value of a VarNumber, or 0.
func (v *Variable) Number() float64 {
	f, _ := v.Value.(float64)
	return f
}

// Text returns the value of a VarText or VarButton, or "".
func (v *Variable) Text() string {
	s, _ := v.Value.(string)
	return s
}

// Bool returns the value of a VarBoolean, or false.
func (v *Variable) Bool() bool {
	b, _ := v.Value.(bool)
	return b
}

// Set sanitizes val and stores it as the current value.
func (v *Variable) Set(val any) {
	if v.Type == VarButton {
		return
	}
	v.Value = v.Sanitize(val)
}

// CompliesTo reports whether v's value is acceptable to other: both have
// the same type and, for VarNumber, v's value lies within other's bounds.
// Hosts use it to keep a value across re-runs that redeclare a variable.
func (v *Variable) CompliesTo(other *Variable) bool {
	if other == nil || v.Type != other.Type {
		return false
	}
	if v.Type == VarNumber {
		n := v.Number()
		return n >= other.Min && n <= other.Max
	}
	return true
}

func (v *Variable) String() string {
	if v.Type == VarNumber {
		return fmt.Sprintf("Variable(name=%s, type=%s, default=%v, min=%v, max=%v, value=%v)",
			v.Name, v.Type, v.Default, v.Min, v.Max, v.Value)
	}
	return fmt.Sprintf("Variable(name=%s, type=%s, default=%v, value=%v)",
		v.Name, v.Type, v.Default, v.Value)
}
