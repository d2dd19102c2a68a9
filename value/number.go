package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is either an exact integer or a float64, depending on how the
// source document wrote it.
type Number struct {
	integer *big.Int
	float   float64
}

// IntNumber returns an integer Number. A nil i is treated as zero.
func IntNumber(i *big.Int) Number {
	if i == nil {
		i = new(big.Int)
	}

	return Number{integer: new(big.Int).Set(i)}
}

// FloatNumber returns a floating point Number.
func FloatNumber(f float64) Number {
	return Number{float: f}
}

// ParseInteger parses an integer literal. Signs, the 0x, 0o, 0b and leading
// zero octal prefixes and '_' digit separators are accepted.
func ParseInteger(s string) (Number, bool) {
	i, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Number{}, false
	}

	return Number{integer: i}, true
}

// IsInteger reports whether n holds an integer.
func (n Number) IsInteger() bool {
	return n.integer != nil
}

// Int returns a copy of the integer held by n, or nil for floats.
func (n Number) Int() *big.Int {
	if n.integer == nil {
		return nil
	}

	return new(big.Int).Set(n.integer)
}

// Float returns n as a float64. Integers are converted with rounding.
func (n Number) Float() float64 {
	if n.integer != nil {
		f, _ := new(big.Float).SetInt(n.integer).Float64()
		return f
	}

	return n.float
}

// IsInf reports whether n is a float infinity with the given sign
// (see math.IsInf).
func (n Number) IsInf(sign int) bool {
	return n.integer == nil && math.IsInf(n.float, sign)
}

// IsNaN reports whether n is a float NaN.
func (n Number) IsNaN() bool {
	return n.integer == nil && math.IsNaN(n.float)
}

// String returns the canonical decimal text of n. Integers are printed in
// base 10. Finite floats use the shortest representation that round-trips,
// always containing a '.' or an exponent. Non-finite floats are printed as
// "+Inf", "-Inf" and "NaN".
func (n Number) String() string {
	if n.integer != nil {
		return n.integer.String()
	}

	f := n.float

	switch {
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}

	var s string

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}

	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
