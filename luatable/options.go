package luatable

import (
	"fmt"
)

// DefaultIndent is the indentation unit used when none is configured.
const DefaultIndent = "\t"

// TagPolicy selects how values carrying a custom YAML tag are rendered.
type TagPolicy int

const (
	// TagReject fails serialization with an *UnsupportedTaggedValueError.
	TagReject TagPolicy = iota
	// TagWrap renders `!Foo x` as a one-entry table { ["Foo"] = x, }.
	TagWrap
)

// String returns the flag spelling of the policy.
func (p TagPolicy) String() string {
	switch p {
	case TagReject:
		return "reject"
	case TagWrap:
		return "wrap"
	default:
		return fmt.Sprintf("TagPolicy(%d)", int(p))
	}
}

// ParseTagPolicy is the inverse of TagPolicy.String.
func ParseTagPolicy(s string) (TagPolicy, error) {
	switch s {
	case "reject":
		return TagReject, nil
	case "wrap":
		return TagWrap, nil
	default:
		return 0, fmt.Errorf("unknown tag policy %q (expected reject or wrap)", s)
	}
}

type config struct {
	indent    string
	tagPolicy TagPolicy
}

// Option configures an Encoder.
type Option func(*config)

// WithIndent sets the string written once per nesting level.
func WithIndent(unit string) Option {
	return func(c *config) {
		c.indent = unit
	}
}

// WithSpaces indents with n spaces per level; n <= 0 selects a tab.
func WithSpaces(n int) Option {
	return func(c *config) {
		if n <= 0 {
			c.indent = DefaultIndent
			return
		}

		c.indent = fmt.Sprintf("%*s", n, "")
	}
}

// WithTagPolicy sets how tagged values are handled.
func WithTagPolicy(p TagPolicy) Option {
	return func(c *config) {
		c.tagPolicy = p
	}
}

func newConfig(opts []Option) config {
	c := config{
		indent:    DefaultIndent,
		tagPolicy: TagReject,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
