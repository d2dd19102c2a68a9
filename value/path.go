package value

import (
	"strconv"
	"strings"
)

// Path builds a readable location string for a value inside a tree.
// Examples:
//   - "$" for the root
//   - `$["array"]` for a mapping entry with a string key
//   - `$["array"][4]` for the fourth element of a sequence (1-based, as in Lua)
//   - `$[true][2]["k"]` for deeper nesting under non-string keys
type Path struct {
	parts []string
}

// Root returns the path of the document root.
func Root() Path {
	return Path{}
}

// Index appends a 1-based sequence position to the path.
func (p Path) Index(n int) Path {
	return p.with("[" + strconv.Itoa(n) + "]")
}

// Key appends a mapping key to the path. Keys that cannot be rendered as a
// literal are shown by their kind.
func (p Path) Key(k Value) Path {
	return p.with("[" + keyText(k) + "]")
}

// Tag appends a tag marker to the path.
func (p Path) Tag(tag string) Path {
	return p.with("<" + tag + ">")
}

// String returns the full path string.
func (p Path) String() string {
	return "$" + strings.Join(p.parts, "")
}

func (p Path) with(part string) Path {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)

	return Path{parts: append(parts, part)}
}

func keyText(k Value) string {
	switch k.Kind {
	case KindString:
		return strconv.Quote(k.str)
	case KindNumber:
		return k.number.String()
	case KindBool:
		return strconv.FormatBool(k.boolean)
	default:
		return "<" + k.Kind.String() + ">"
	}
}
