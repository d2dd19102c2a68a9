package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"yaml2lua/luatable"
)

const stdinMarker = "-"

var luaName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true, "end": true,
	"false": true, "for": true, "function": true, "goto": true, "if": true, "in": true,
	"local": true, "nil": true, "not": true, "or": true, "repeat": true, "return": true,
	"then": true, "true": true, "until": true, "while": true,
}

type config struct {
	Files       []string
	OutputDir   string
	Indent      int
	Tags        string
	Return      bool
	Assign      string
	Concurrency int
	Verbose     bool
	LogFormat   string
}

func (c *config) RegisterFlags(app *kingpin.Application) {
	app.Flag("output-dir", "Write one .lua file per input into this directory instead of stdout.").
		Short('o').Envar("YAML2LUA_OUTPUT_DIR").StringVar(&c.OutputDir)
	app.Flag("indent", "Spaces per nesting level; 0 indents with tabs.").
		Default("0").Envar("YAML2LUA_INDENT").IntVar(&c.Indent)
	app.Flag("tags", "How to handle values with custom YAML tags.").
		Default("reject").Envar("YAML2LUA_TAGS").EnumVar(&c.Tags, "reject", "wrap")
	app.Flag("return", "Emit `return <table>` so the output can be loaded as a Lua module.").
		BoolVar(&c.Return)
	app.Flag("assign", "Emit `NAME = <table>`.").
		PlaceHolder("NAME").StringVar(&c.Assign)
	app.Flag("concurrency", "Number of files converted in parallel.").
		Default("4").Envar("YAML2LUA_CONCURRENCY").IntVar(&c.Concurrency)
	app.Flag("verbose", "Enable debug logging.").
		Short('v').BoolVar(&c.Verbose)
	app.Flag("log.format", "Log encoding.").
		Default("logfmt").EnumVar(&c.LogFormat, "logfmt", "json")
	app.Arg("file", "YAML files to convert. Reads stdin when omitted or '-'.").
		StringsVar(&c.Files)
}

func (c *config) Validate() error {
	if c.Indent < 0 {
		return errors.New("--indent must not be negative")
	}

	if c.Concurrency < 1 {
		return errors.New("--concurrency must be at least 1")
	}

	if c.Return && c.Assign != "" {
		return errors.New("--return and --assign are mutually exclusive")
	}

	if c.Assign != "" {
		if err := validateLuaName(c.Assign); err != nil {
			return fmt.Errorf("--assign: %w", err)
		}
	}

	if c.readsStdin() {
		return nil
	}

	for _, f := range c.Files {
		if f == stdinMarker {
			return errors.New("stdin ('-') cannot be combined with other files")
		}
	}

	if len(c.Files) > 1 && c.OutputDir == "" {
		return errors.New("--output-dir is required when converting more than one file")
	}

	if c.OutputDir != "" {
		seen := make(map[string]string, len(c.Files))

		for _, f := range c.Files {
			out := outputName(f)
			if prev, ok := seen[out]; ok {
				return fmt.Errorf("%s and %s would both be written to %s", prev, f, out)
			}

			seen[out] = f
		}
	}

	return nil
}

func (c *config) readsStdin() bool {
	return len(c.Files) == 0 || (len(c.Files) == 1 && c.Files[0] == stdinMarker)
}

func (c *config) encoderOptions() ([]luatable.Option, error) {
	policy, err := luatable.ParseTagPolicy(c.Tags)
	if err != nil {
		return nil, err
	}

	return []luatable.Option{
		luatable.WithSpaces(c.Indent),
		luatable.WithTagPolicy(policy),
	}, nil
}

// wrap turns the bare table literal into the configured statement.
func (c *config) wrap(lua string) string {
	switch {
	case c.Return:
		return "return " + lua
	case c.Assign != "":
		return c.Assign + " = " + lua
	default:
		return lua
	}
}

// validateLuaName accepts plain or dotted Lua names such as "config" or "M.settings".
func validateLuaName(name string) error {
	for _, part := range strings.Split(name, ".") {
		if !luaName.MatchString(part) {
			return fmt.Errorf("%q is not a valid Lua name", name)
		}

		if luaKeywords[part] {
			return fmt.Errorf("%q is a reserved Lua keyword", part)
		}
	}

	return nil
}

// outputName maps an input path to the name of its .lua file.
func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".lua"
}
