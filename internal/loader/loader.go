package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"yaml2lua/value"
)

// Core schema tags as reported by yaml.Node.ShortTag.
const (
	tagNull      = "!!null"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagStr       = "!!str"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagMerge     = "!!merge"
)

// DefaultMaxAliasExpansion bounds the number of values produced by expanding
// aliases in a single document.
const DefaultMaxAliasExpansion = 1_000_000

// integerLiteral matches plain integers that yaml.v3 resolves as floats
// because they don't fit in 64 bits.
var integerLiteral = regexp.MustCompile(`^[-+]?[0-9][0-9_]*$`)

// Loader turns YAML documents into value trees.
type Loader struct {
	// MaxAliasExpansion limits how many values may be materialized through
	// aliases. Zero means DefaultMaxAliasExpansion.
	MaxAliasExpansion int
}

// Load parses a single YAML document with default settings.
func Load(data []byte) (value.Value, error) {
	return (&Loader{}).Load(data)
}

// Load parses data, which must hold at most one YAML document. An empty
// stream is the null document.
func (l *Loader) Load(data []byte) (value.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node

	err := dec.Decode(&doc)
	if errors.Is(err, io.EOF) {
		return value.Null(), nil
	}

	if err != nil {
		return value.Value{}, &Error{Err: err}
	}

	var extra yaml.Node

	err = dec.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return value.Value{}, &Error{Err: err}
	default:
		return value.Value{}, &Error{Pos: nodePos(&extra), Msg: "expected a single document, found another"}
	}

	limit := l.MaxAliasExpansion
	if limit <= 0 {
		limit = DefaultMaxAliasExpansion
	}

	b := &builder{
		active: make(map[*yaml.Node]bool),
		limit:  limit,
	}

	return b.build(&doc)
}

type builder struct {
	// active holds the alias targets currently being expanded.
	active map[*yaml.Node]bool
	// aliasDepth is non-zero while building the target of an alias.
	aliasDepth int
	expanded   int
	limit      int
}

func (b *builder) build(n *yaml.Node) (value.Value, error) {
	if b.aliasDepth > 0 {
		b.expanded++
		if b.expanded > b.limit {
			return value.Value{}, &Error{
				Pos: nodePos(n),
				Msg: fmt.Sprintf("document expands to more than %d values through aliases", b.limit),
			}
		}
	}

	switch n.Kind {
	case 0:
		return value.Null(), nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null().At(nodePos(n)), nil
		}

		return b.build(n.Content[0])

	case yaml.AliasNode:
		return b.alias(n)

	case yaml.ScalarNode, yaml.SequenceNode, yaml.MappingNode:
		tag := n.ShortTag()
		if isCustomTag(n, tag) {
			return b.tagged(n, tag)
		}

		return b.untagged(n, tag)

	default:
		return value.Value{}, &Error{Pos: nodePos(n), Msg: fmt.Sprintf("unexpected node kind %v", n.Kind)}
	}
}

func (b *builder) untagged(n *yaml.Node, tag string) (value.Value, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		return b.sequence(n)
	case yaml.MappingNode:
		return b.mapping(n)
	default:
		return b.scalar(n, tag)
	}
}

func (b *builder) alias(n *yaml.Node) (value.Value, error) {
	target := n.Alias
	if target == nil {
		return value.Value{}, &Error{Pos: nodePos(n), Msg: fmt.Sprintf("unknown anchor %q", n.Value)}
	}

	if b.active[target] {
		return value.Value{}, &Error{Pos: nodePos(n), Msg: fmt.Sprintf("anchor %q value contains itself", n.Value)}
	}

	b.active[target] = true
	b.aliasDepth++

	v, err := b.build(target)

	b.aliasDepth--
	delete(b.active, target)

	return v, err
}

// tagged wraps the node's value, resolved as if it carried no tag.
func (b *builder) tagged(n *yaml.Node, tag string) (value.Value, error) {
	plain := *n
	plain.Tag = ""
	plain.Style &^= yaml.TaggedStyle

	inner, err := b.untagged(&plain, plain.ShortTag())
	if err != nil {
		return value.Value{}, err
	}

	return value.Tagged(tag, inner).At(nodePos(n)), nil
}

func (b *builder) scalar(n *yaml.Node, tag string) (value.Value, error) {
	pos := nodePos(n)

	switch tag {
	case tagNull:
		return value.Null().At(pos), nil

	case tagBool:
		var v bool
		if err := n.Decode(&v); err != nil {
			return value.Value{}, &Error{Pos: pos, Msg: "decoding boolean", Err: err}
		}

		return value.Bool(v).At(pos), nil

	case tagInt:
		num, ok := value.ParseInteger(strings.ReplaceAll(n.Value, "_", ""))
		if !ok {
			return value.Value{}, &Error{Pos: pos, Msg: fmt.Sprintf("invalid integer %q", n.Value)}
		}

		return value.Num(num).At(pos), nil

	case tagFloat:
		// Integers too large for int64/uint64 are reported as floats.
		if n.Style&yaml.TaggedStyle == 0 && integerLiteral.MatchString(n.Value) {
			if num, ok := value.ParseInteger(strings.ReplaceAll(n.Value, "_", "")); ok {
				return value.Num(num).At(pos), nil
			}
		}

		var v float64
		if err := n.Decode(&v); err != nil {
			return value.Value{}, &Error{Pos: pos, Msg: "decoding float", Err: err}
		}

		return value.Float(v).At(pos), nil

	case tagStr, tagTimestamp, tagBinary:
		return value.String(n.Value).At(pos), nil

	default:
		return value.Value{}, &Error{Pos: pos, Msg: fmt.Sprintf("unsupported scalar tag %s", tag)}
	}
}

func (b *builder) sequence(n *yaml.Node) (value.Value, error) {
	items := make([]value.Value, 0, len(n.Content))

	for _, c := range n.Content {
		v, err := b.build(c)
		if err != nil {
			return value.Value{}, err
		}

		items = append(items, v)
	}

	return value.Sequence(items...).At(nodePos(n)), nil
}

// mapping builds a mapping in document order, applying merge keys and
// rejecting duplicate scalar keys.
func (b *builder) mapping(n *yaml.Node) (value.Value, error) {
	if len(n.Content)%2 != 0 {
		return value.Value{}, &Error{Pos: nodePos(n), Msg: "mapping has a key without a value"}
	}

	type slot struct {
		entry  value.Entry
		merged []value.Entry
		merge  bool
	}

	slots := make([]slot, 0, len(n.Content)/2)
	explicit := make(map[string]value.Pos)

	for i := 0; i < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]

		if isMergeKey(kn) {
			merged, err := b.mergeSources(vn)
			if err != nil {
				return value.Value{}, err
			}

			slots = append(slots, slot{merged: merged, merge: true})

			continue
		}

		key, err := b.build(kn)
		if err != nil {
			return value.Value{}, err
		}

		if id, ok := keyIdentity(key); ok {
			if first, dup := explicit[id]; dup {
				return value.Value{}, &Error{
					Pos: key.Pos,
					Msg: fmt.Sprintf("mapping key %q already defined at line %d", kn.Value, first.Line),
				}
			}

			explicit[id] = key.Pos
		}

		val, err := b.build(vn)
		if err != nil {
			return value.Value{}, err
		}

		slots = append(slots, slot{entry: value.Entry{Key: key, Value: val}})
	}

	entries := make([]value.Entry, 0, len(slots))
	seen := make(map[string]bool)

	for _, s := range slots {
		if !s.merge {
			entries = append(entries, s.entry)
			continue
		}

		for _, e := range s.merged {
			if id, ok := keyIdentity(e.Key); ok {
				if _, dup := explicit[id]; dup || seen[id] {
					continue
				}

				seen[id] = true
			}

			entries = append(entries, e)
		}
	}

	return value.Mapping(entries...).At(nodePos(n)), nil
}

// mergeSources resolves the value of a "<<" key into the entries to merge,
// earlier sources first.
func (b *builder) mergeSources(n *yaml.Node) ([]value.Entry, error) {
	var sources []*yaml.Node

	switch resolveAlias(n).Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		sources = resolveAlias(n).Content
	default:
		return nil, &Error{Pos: nodePos(n), Msg: "map merge requires map or sequence of maps as the value"}
	}

	var entries []value.Entry

	for _, src := range sources {
		v, err := b.build(src)
		if err != nil {
			return nil, err
		}

		if v.Kind != value.KindMapping {
			return nil, &Error{Pos: nodePos(src), Msg: "map merge requires map or sequence of maps as the value"}
		}

		entries = append(entries, v.Entries()...)
	}

	return entries, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == tagMerge
}

// isCustomTag reports whether tag is outside the YAML core schema.
func isCustomTag(n *yaml.Node, tag string) bool {
	if n.Kind != yaml.ScalarNode {
		return !strings.HasPrefix(tag, "!!")
	}

	switch tag {
	case tagNull, tagBool, tagInt, tagFloat, tagStr, tagTimestamp, tagBinary, tagMerge:
		return false
	default:
		return true
	}
}

// keyIdentity returns a comparable identity for scalar keys. Keys that Lua
// would store in the same table slot share an identity.
func keyIdentity(k value.Value) (string, bool) {
	if !k.Kind.IsScalar() {
		return "", false
	}

	switch k.Kind {
	case value.KindString:
		return "s:" + k.AsString(), true
	case value.KindNumber:
		return "n:" + numberIdentity(k.AsNumber()), true
	case value.KindBool:
		return fmt.Sprintf("b:%t", k.AsBool()), true
	default:
		return "z:", true
	}
}

// numberIdentity folds floats with an integral value in int64 range onto the
// integer text, matching Lua's normalization of float keys.
func numberIdentity(n value.Number) string {
	if n.IsInteger() {
		return n.String()
	}

	f := n.Float()
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return n.String()
	}

	return strconv.FormatInt(int64(f), 10)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func nodePos(n *yaml.Node) value.Pos {
	return value.Pos{Line: n.Line, Column: n.Column}
}
