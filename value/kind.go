package value

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull     Kind = iota // null
	KindBool                 // bool
	KindNumber               // number
	KindString               // string
	KindSequence             // sequence
	KindMapping              // mapping
	KindTagged               // tagged

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether values of this kind have no children.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
}

// IsKeyable reports whether values of this kind may be used as table keys.
func (k Kind) IsKeyable() bool {
	switch k {
	default:
		return false
	case KindBool, KindNumber, KindString:
		return true
	}
}
