package luatable

import (
	"errors"
	"fmt"

	"yaml2lua/value"
)

var (
	// ErrUnsupportedKeyType matches any *UnsupportedKeyTypeError.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
	// ErrUnsupportedTaggedValue matches any *UnsupportedTaggedValueError.
	ErrUnsupportedTaggedValue = errors.New("unsupported tagged value")
)

// UnsupportedKeyTypeError is returned when a mapping key is not a string,
// number or boolean.
type UnsupportedKeyTypeError struct {
	Kind value.Kind
	// Path locates the mapping that holds the key.
	Path value.Path
	Pos  value.Pos
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("%s %s at %s%s", ErrUnsupportedKeyType, e.Kind, e.Path, posSuffix(e.Pos))
}

func (e *UnsupportedKeyTypeError) Is(target error) bool {
	return target == ErrUnsupportedKeyType
}

// UnsupportedTaggedValueError is returned for values carrying a custom YAML
// tag when tagged values are rejected.
type UnsupportedTaggedValueError struct {
	Tag  string
	Path value.Path
	Pos  value.Pos
}

func (e *UnsupportedTaggedValueError) Error() string {
	return fmt.Sprintf("%s %s at %s%s", ErrUnsupportedTaggedValue, e.Tag, e.Path, posSuffix(e.Pos))
}

func (e *UnsupportedTaggedValueError) Is(target error) bool {
	return target == ErrUnsupportedTaggedValue
}

func posSuffix(p value.Pos) string {
	if p.IsZero() {
		return ""
	}

	return fmt.Sprintf(" (line %d, column %d)", p.Line, p.Column)
}
