// Package value defines the generic document tree produced by the YAML loader
// and consumed by the Lua table serializer.
//
// A Value is a closed union over Kind. Only the fields relevant to its Kind
// are meaningful; the zero Value is null.
package value

import (
	"math/big"
)

// Pos is a 1-based line and column in the source document.
// The zero Pos means the value was not read from a document.
type Pos struct {
	Line   int
	Column int
}

// IsZero reports whether p carries no position.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Value is a node of the document tree.
type Value struct {
	Kind Kind
	Pos  Pos

	boolean bool
	number  Number
	str     string
	items   []Value
	entries []Entry
	tag     string
	inner   *Value
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   Value
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, boolean: b}
}

// Int returns an integer number value.
func Int(i int64) Value {
	return Value{Kind: KindNumber, number: IntNumber(big.NewInt(i))}
}

// BigInt returns an integer number value of arbitrary size.
func BigInt(i *big.Int) Value {
	return Value{Kind: KindNumber, number: IntNumber(i)}
}

// Float returns a floating point number value.
func Float(f float64) Value {
	return Value{Kind: KindNumber, number: FloatNumber(f)}
}

// Num wraps an existing Number.
func Num(n Number) Value {
	return Value{Kind: KindNumber, number: n}
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: KindString, str: s}
}

// Sequence returns a sequence holding items in order.
func Sequence(items ...Value) Value {
	return Value{Kind: KindSequence, items: items}
}

// Mapping returns a mapping holding entries in order.
func Mapping(entries ...Entry) Value {
	return Value{Kind: KindMapping, entries: entries}
}

// Tagged returns a value carrying an application specific tag such as "!Foo".
func Tagged(tag string, inner Value) Value {
	return Value{Kind: KindTagged, tag: tag, inner: &inner}
}

// At returns a copy of v positioned at pos.
func (v Value) At(pos Pos) Value {
	v.Pos = pos
	return v
}

// AsBool returns the boolean held by a KindBool value.
func (v Value) AsBool() bool {
	return v.boolean
}

// AsNumber returns the number held by a KindNumber value.
func (v Value) AsNumber() Number {
	return v.number
}

// AsString returns the text held by a KindString value.
func (v Value) AsString() string {
	return v.str
}

// Items returns the elements of a KindSequence value.
func (v Value) Items() []Value {
	return v.items
}

// Entries returns the entries of a KindMapping value.
func (v Value) Entries() []Entry {
	return v.entries
}

// Tag returns the tag of a KindTagged value.
func (v Value) Tag() string {
	return v.tag
}

// Inner returns the value wrapped by a KindTagged value.
func (v Value) Inner() Value {
	if v.inner == nil {
		return Null()
	}

	return *v.inner
}

// Len returns the number of children of a container, zero otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Lookup returns the value of the first entry whose key is the string key.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key.Kind == KindString && e.Key.str == key {
			return e.Value, true
		}
	}

	return Value{}, false
}
