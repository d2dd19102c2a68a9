package yaml2lua

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yaml2lua/luatable"
	"yaml2lua/value"
)

func TestParseExample(t *testing.T) {
	yaml := `
string: yaml2lua
int: 420
bool: true
array:
  - abc
  - 123
`

	expected := `{
  ["string"] = "yaml2lua",
  ["int"] = 420,
  ["bool"] = true,
  ["array"] = {
    "abc",
    123,
  },
}`

	lua, err := Parse(yaml, luatable.WithSpaces(2))
	require.NoError(t, err)
	assert.Equal(t, expected, lua)
}

func TestParseAllValues(t *testing.T) {
	yaml := `
string: str
int: 420
float: 4.2
bool: true
nil: null
array:
  - string
  - 12345
  - false
  - k: v
object:
  key: value`

	lua := `{
	["string"] = "str",
	["int"] = 420,
	["float"] = 4.2,
	["bool"] = true,
	["nil"] = nil,
	["array"] = {
		"string",
		12345,
		false,
		{
			["k"] = "v",
		},
	},
	["object"] = {
		["key"] = "value",
	},
}`

	got, err := Parse(yaml)
	require.NoError(t, err)
	assert.Equal(t, lua, got)
}

func TestParseStrings(t *testing.T) {
	yaml := `
1: ..\n..
2: ..\t..
3: ..\\..
4: ..\"..
5: "..\n.."
6: "..\t.."
7: "..\r.."
8: "..\\.."
9: "..\".."`

	// Plain scalars keep their backslashes, which are escaped in the output.
	lua := `{
	[1] = "..\\n..",
	[2] = "..\\t..",
	[3] = "..\\\\..",
	[4] = "..\\\"..",
	[5] = "..\n..",
	[6] = "..\t..",
	[7] = "..\r..",
	[8] = "..\\..",
	[9] = "..\"..",
}`

	got, err := Parse(yaml)
	require.NoError(t, err)
	assert.Equal(t, lua, got)
}

func TestParseRootArray(t *testing.T) {
	got, err := Parse("\n- a\n- b\n- c")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\",\n\t\"b\",\n\t\"c\",\n}", got)
}

func TestParseRootScalars(t *testing.T) {
	tests := []struct {
		yaml     string
		expected string
	}{
		{yaml: "true", expected: "true"},
		{yaml: "420", expected: "420"},
		{yaml: `"abc"`, expected: `"abc"`},
		{yaml: "abc", expected: `"abc"`},
		{yaml: "4.2", expected: "4.2"},
		{yaml: "null", expected: "nil"},
		{yaml: "", expected: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.yaml, func(t *testing.T) {
			got, err := Parse(tt.yaml)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		yaml     string
		expected string
	}{
		{yaml: "-17", expected: "-17"},
		{yaml: "0", expected: "0"},
		{yaml: "-0", expected: "0"},
		{yaml: "1.50", expected: "1.5"},
		{yaml: "2.0", expected: "2.0"},
		{yaml: "-0.0", expected: "-0.0"},
		{yaml: "0x1F", expected: "31"},
		{yaml: "0o17", expected: "15"},
		{yaml: "0b1010", expected: "10"},
		{yaml: "1_000_000", expected: "1000000"},
		{yaml: "9223372036854775807", expected: "9223372036854775807"},
		{yaml: "123456789012345678901234567890", expected: "123456789012345678901234567890"},
		{yaml: "6.02e23", expected: "6.02e+23"},
		{yaml: "1e-7", expected: "1e-07"},
		{yaml: ".inf", expected: "math.huge"},
		{yaml: "-.inf", expected: "-math.huge"},
		{yaml: ".nan", expected: "0/0"},
	}

	for _, tt := range tests {
		t.Run(tt.yaml, func(t *testing.T) {
			got, err := Parse(tt.yaml)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseKeyOrder(t *testing.T) {
	got, err := Parse("c: 1\na: 2\nb: 3\n")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t[\"c\"] = 1,\n\t[\"a\"] = 2,\n\t[\"b\"] = 3,\n}", got)
}

func TestParseUnsupportedKeys(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind value.Kind
		path string
	}{
		{name: "sequence key", yaml: "? [a, b]\n: x\n", kind: value.KindSequence, path: "$"},
		{name: "mapping key", yaml: "outer:\n  ? {a: 1}\n  : x\n", kind: value.KindMapping, path: `$["outer"]`},
		{name: "null key", yaml: "list:\n  - ~: x\n", kind: value.KindNull, path: `$["list"][1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.yaml)
			require.Error(t, err)
			assert.Empty(t, got)

			var kerr *UnsupportedKeyTypeError
			require.True(t, errors.As(err, &kerr))
			assert.Equal(t, tt.kind, kerr.Kind)
			assert.Equal(t, tt.path, kerr.Path.String())
			assert.False(t, kerr.Pos.IsZero())
			assert.True(t, errors.Is(err, ErrUnsupportedKeyType))
		})
	}
}

func TestParseTaggedValues(t *testing.T) {
	yaml := `test: !SomeTag { x: 5 }`

	_, err := Parse(yaml)
	require.Error(t, err)

	var terr *UnsupportedTaggedValueError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "!SomeTag", terr.Tag)
	assert.Equal(t, value.Pos{Line: 1, Column: 7}, terr.Pos)
	assert.True(t, errors.Is(err, ErrUnsupportedTaggedValue))

	lua := `{
	["test"] = {
		["SomeTag"] = {
			["x"] = 5,
		},
	},
}`

	got, err := Parse(yaml, luatable.WithTagPolicy(luatable.TagWrap))
	require.NoError(t, err)
	assert.Equal(t, lua, got)
}

func TestParseStandardTagsAreNotCustom(t *testing.T) {
	got, err := Parse("a: !!str 123\nb: !!float 1\nc: !!map {x: 1}\n")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t[\"a\"] = \"123\",\n\t[\"b\"] = 1.0,\n\t[\"c\"] = {\n\t\t[\"x\"] = 1,\n\t},\n}", got)
}

func TestParseLoaderErrors(t *testing.T) {
	for _, yaml := range []string{
		"a: [1, 2",
		"a: 1\na: 2\n",
		"a: 1\n---\nb: 2\n",
		"\tkey: value",
	} {
		t.Run(yaml, func(t *testing.T) {
			got, err := Parse(yaml)
			require.Error(t, err)
			assert.Empty(t, got)

			var lerr *LoaderError
			assert.True(t, errors.As(err, &lerr))
			assert.False(t, errors.Is(err, ErrUnsupportedKeyType))
		})
	}
}

func TestParseNesting(t *testing.T) {
	yaml := `
level1:
  - level3:
      deep: true
`
	got, err := Parse(yaml, luatable.WithSpaces(2))
	require.NoError(t, err)

	expected := `{
  ["level1"] = {
    {
      ["level3"] = {
        ["deep"] = true,
      },
    },
  },
}`
	assert.Equal(t, expected, got)
	assert.Equal(t, strings.Count(got, "{"), strings.Count(got, "}"))
}

func TestParseEmptyContainers(t *testing.T) {
	got, err := Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, "{\n}", got)

	got, err = Parse("[]")
	require.NoError(t, err)
	assert.Equal(t, "{\n}", got)

	got, err = Parse("m: {}\ns: []\n")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t[\"m\"] = {\n\t},\n\t[\"s\"] = {\n\t},\n}", got)
}

func TestParseAnchorsAndMerges(t *testing.T) {
	yaml := `
defaults: &defaults
  adapter: postgres
  host: localhost
development:
  <<: *defaults
  database: dev
`
	expected := `{
	["defaults"] = {
		["adapter"] = "postgres",
		["host"] = "localhost",
	},
	["development"] = {
		["adapter"] = "postgres",
		["host"] = "localhost",
		["database"] = "dev",
	},
}`

	got, err := Parse(yaml)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestParseBytes(t *testing.T) {
	got, err := ParseBytes([]byte("- 1\n- two\n"))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t1,\n\t\"two\",\n}", got)
}

func TestParseDeterministicConcurrent(t *testing.T) {
	var doc strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&doc, "key%d:\n  - %d\n  - name: \"item %d\"\n    ratio: %d.25\n", i, i, i, i)
	}

	want, err := Parse(doc.String())
	require.NoError(t, err)

	var wg sync.WaitGroup

	results := make([]string, 16)
	errs := make([]error, 16)

	for i := range results {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()
			results[i], errs[i] = Parse(doc.String())
		}()
	}

	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
