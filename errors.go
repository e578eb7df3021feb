package grob

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by grob operations. Use errors.Is to match them; the
// concrete error usually wraps one of these with more detail.
var (
	// ErrInvalidArgument is returned for unknown constructor keywords and
	// malformed option combinations.
	ErrInvalidArgument = errors.New("grob: invalid argument")

	// ErrInvalidStyle is returned when a cap, join or blend style is
	// outside its enumeration.
	ErrInvalidStyle = errors.New("grob: invalid style value")

	// ErrNotFound is returned when an image path does not exist.
	ErrNotFound = errors.New("grob: not found")

	// ErrUnreadable is returned when image data cannot be decoded.
	ErrUnreadable = errors.New("grob: can't read image")

	// ErrNotImplemented is returned by grob kinds that do not support copying.
	ErrNotImplemented = errors.New("grob: copy is not implemented")
)

// ArgumentError reports every keyword a constructor did not accept.
type ArgumentError struct {
	Unknown []string
}

func (e *ArgumentError) Error() string {
	quoted := make([]string, len(e.Unknown))
	for i, k := range e.Unknown {
		quoted[i] = fmt.Sprintf("'%s'", k)
	}
	return "grob: unknown argument(s) " + strings.Join(quoted, ", ")
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
