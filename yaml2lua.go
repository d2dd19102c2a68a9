// Package yaml2lua converts YAML documents into Lua table constructors.
//
// # Example
//
//	lua, err := yaml2lua.Parse(`
//	string: yaml2lua
//	int: 420
//	bool: true
//	array:
//	  - abc
//	  - 123
//	`)
//
// produces
//
//	{
//		["string"] = "yaml2lua",
//		["int"] = 420,
//		["bool"] = true,
//		["array"] = {
//			"abc",
//			123,
//		},
//	}
//
// The result is the bare literal. Callers that need `return {...}` or an
// assignment add it themselves.
//
// # Errors
//
// Malformed YAML yields a *LoaderError wrapping the parser's message.
// Mapping keys that are not strings, numbers or booleans yield an
// *UnsupportedKeyTypeError, and values with custom tags (!Foo) yield an
// *UnsupportedTaggedValueError unless luatable.WithTagPolicy(luatable.TagWrap)
// is passed. No output is returned alongside an error.
package yaml2lua

import (
	"yaml2lua/internal/loader"
	"yaml2lua/luatable"
)

type (
	// LoaderError reports input that is not a loadable YAML document.
	LoaderError = loader.Error
	// UnsupportedKeyTypeError reports a mapping key of an unsupported kind.
	UnsupportedKeyTypeError = luatable.UnsupportedKeyTypeError
	// UnsupportedTaggedValueError reports a value carrying a custom tag.
	UnsupportedTaggedValueError = luatable.UnsupportedTaggedValueError
)

var (
	ErrUnsupportedKeyType     = luatable.ErrUnsupportedKeyType
	ErrUnsupportedTaggedValue = luatable.ErrUnsupportedTaggedValue
)

// Parse converts a single YAML document into a Lua table literal.
func Parse(input string, opts ...luatable.Option) (string, error) {
	return ParseBytes([]byte(input), opts...)
}

// ParseBytes is like Parse but takes the document as bytes.
func ParseBytes(input []byte, opts ...luatable.Option) (string, error) {
	v, err := loader.Load(input)
	if err != nil {
		return "", err
	}

	return luatable.Serialize(v, opts...)
}
