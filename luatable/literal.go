package luatable

import (
	"strconv"
	"strings"

	"yaml2lua/value"
)

// Lua spellings of the non-finite floats.
const (
	luaInf    = "math.huge"
	luaNegInf = "-math.huge"
	luaNaN    = "0/0"
)

// FormatNumber returns n as a Lua numeric expression. Integers are written
// in base 10 without a decimal point, floats always keep one.
func FormatNumber(n value.Number) string {
	switch {
	case n.IsInf(1):
		return luaInf
	case n.IsInf(-1):
		return luaNegInf
	case n.IsNaN():
		return luaNaN
	default:
		return n.String()
	}
}

// Quote returns s as a double-quoted Lua string literal. Control bytes are
// escaped, everything else including non-ASCII UTF-8 is kept as is.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				// Always three digits so a following digit is not absorbed.
				b.WriteByte('\\')
				d := strconv.Itoa(int(c))
				b.WriteString(strings.Repeat("0", 3-len(d)))
				b.WriteString(d)

				continue
			}

			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}
