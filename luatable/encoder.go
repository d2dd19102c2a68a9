// Package luatable renders value trees as Lua table constructors.
//
// Output follows a fixed layout so that identical trees always produce
// identical text:
//
//	{
//		["string"] = "yaml2lua",
//		["int"] = 420,
//		["array"] = {
//			"abc",
//			123,
//		},
//	}
//
// Mapping keys must be strings, numbers or booleans. Any other key, and any
// tagged value unless TagWrap is selected, aborts serialization; no partial
// output is ever returned.
package luatable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"yaml2lua/value"
)

// Encoder serializes value trees. It holds no state between calls and may
// be shared between goroutines.
type Encoder struct {
	cfg config
}

// NewEncoder returns an Encoder configured by opts.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// Serialize renders v with the given options.
func Serialize(v value.Value, opts ...Option) (string, error) {
	return NewEncoder(opts...).Encode(v)
}

// Encode renders v as a Lua literal without a trailing newline.
func (e *Encoder) Encode(v value.Value) (string, error) {
	w := &writer{cfg: &e.cfg}

	if err := w.value(v, 0, value.Root()); err != nil {
		return "", err
	}

	return w.buf.String(), nil
}

// EncodeTo renders v and writes it to out. Nothing is written on failure.
func (e *Encoder) EncodeTo(out io.Writer, v value.Value) error {
	s, err := e.Encode(v)
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, s)

	return err
}

type writer struct {
	cfg *config
	buf strings.Builder
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf.WriteString(w.cfg.indent)
	}
}

// value writes v assuming the cursor already sits after any indentation or
// key prefix. Containers close at depth.
func (w *writer) value(v value.Value, depth int, path value.Path) error {
	switch v.Kind {
	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
		w.scalar(v)
	case value.KindSequence:
		return w.sequence(v, depth, path)
	case value.KindMapping:
		return w.mapping(v, depth, path)
	case value.KindTagged:
		return w.tagged(v, depth, path)
	default:
		return fmt.Errorf("unknown value kind %v at %s", v.Kind, path)
	}

	return nil
}

func (w *writer) scalar(v value.Value) {
	switch v.Kind {
	case value.KindBool:
		w.buf.WriteString(strconv.FormatBool(v.AsBool()))
	case value.KindNumber:
		w.buf.WriteString(FormatNumber(v.AsNumber()))
	case value.KindString:
		w.buf.WriteString(Quote(v.AsString()))
	default:
		w.buf.WriteString("nil")
	}
}

func (w *writer) sequence(v value.Value, depth int, path value.Path) error {
	w.buf.WriteString("{\n")

	for i, item := range v.Items() {
		w.indent(depth + 1)

		if err := w.value(item, depth+1, path.Index(i+1)); err != nil {
			return err
		}

		w.buf.WriteString(",\n")
	}

	w.indent(depth)
	w.buf.WriteByte('}')

	return nil
}

func (w *writer) mapping(v value.Value, depth int, path value.Path) error {
	w.buf.WriteString("{\n")

	for _, e := range v.Entries() {
		if !e.Key.Kind.IsKeyable() {
			return &UnsupportedKeyTypeError{Kind: e.Key.Kind, Path: path, Pos: e.Key.Pos}
		}

		w.indent(depth + 1)
		w.buf.WriteByte('[')

		w.scalar(e.Key)

		w.buf.WriteString("] = ")

		if err := w.value(e.Value, depth+1, path.Key(e.Key)); err != nil {
			return err
		}

		w.buf.WriteString(",\n")
	}

	w.indent(depth)
	w.buf.WriteByte('}')

	return nil
}

func (w *writer) tagged(v value.Value, depth int, path value.Path) error {
	if w.cfg.tagPolicy != TagWrap {
		return &UnsupportedTaggedValueError{Tag: v.Tag(), Path: path, Pos: v.Pos}
	}

	w.buf.WriteString("{\n")
	w.indent(depth + 1)
	w.buf.WriteByte('[')
	w.buf.WriteString(Quote(strings.TrimPrefix(v.Tag(), "!")))
	w.buf.WriteString("] = ")

	if err := w.value(v.Inner(), depth+1, path.Tag(v.Tag())); err != nil {
		return err
	}

	w.buf.WriteString(",\n")
	w.indent(depth)
	w.buf.WriteByte('}')

	return nil
}
