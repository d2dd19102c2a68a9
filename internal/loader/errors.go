package loader

import (
	"fmt"

	"yaml2lua/value"
)

// Error reports a document that could not be loaded into a value tree.
// Err holds the underlying yaml.v3 error when the parser itself failed.
type Error struct {
	Pos value.Pos
	Msg string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg == "":
		return "loading YAML: " + e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("loading YAML: %s: %v", e.where(e.Msg), e.Err)
	default:
		return "loading YAML: " + e.where(e.Msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) where(msg string) string {
	if e.Pos.IsZero() {
		return msg
	}

	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, msg)
}
