package grob

// Attr is an inheritable attribute value. The zero value is inherited:
// it defers to the context until it is set locally or resolved by
// [Context.Draw].
type Attr[T any] struct {
	value T
	set   bool
}

// Inherit returns an attribute that defers to the context.
func Inherit[T any]() Attr[T] {
	return Attr[T]{}
}

// Local returns an attribute holding v.
func Local[T any](v T) Attr[T] {
	return Attr[T]{value: v, set: true}
}

// Get returns the local value and whether one is set.
func (a Attr[T]) Get() (T, bool) {
	return a.value, a.set
}

// Or returns the local value, or fallback if the attribute is inherited.
func (a Attr[T]) Or(fallback T) T {
	if a.set {
		return a.value
	}
	return fallback
}

// Inherited reports whether the attribute defers to the context.
func (a Attr[T]) Inherited() bool {
	return !a.set
}

// resolve fills an inherited attribute with v and leaves a set one alone.
func (a *Attr[T]) resolve(v T) {
	if !a.set {
		a.value = v
		a.set = true
	}
}
