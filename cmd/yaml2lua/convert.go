package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"yaml2lua"
	"yaml2lua/internal/diagnostic"
	"yaml2lua/luatable"
)

// nullLiteral is the rendering of a document whose root is null.
const nullLiteral = "nil"

// converter runs the conversion of every configured input.
type converter struct {
	cfg    config
	opts   []luatable.Option
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	logger log.Logger
}

// run converts all inputs. Per-input failures are reported as diagnostics;
// the returned error is only set when the run itself was interrupted.
func (c *converter) run(ctx context.Context) (diagnostic.Diagnostics, error) {
	if c.cfg.readsStdin() {
		return c.convertStdin(), nil
	}

	if c.cfg.OutputDir == "" {
		return c.convertToStdout(c.cfg.Files[0]), nil
	}

	results := make([]diagnostic.Diagnostics, len(c.cfg.Files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for i, file := range c.cfg.Files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = c.convertToDir(file)

			return nil
		})
	}

	var diags diagnostic.Diagnostics

	if err := g.Wait(); err != nil {
		return diags, err
	}

	converted := 0

	for _, d := range results {
		if !d.HasErrors() {
			converted++
		}

		diags.Merge(d)
	}

	level.Info(c.logger).Log(
		"msg", "conversion finished",
		"converted", converted,
		"failed", len(c.cfg.Files)-converted,
		"warnings", len(diags.Warnings),
		"output_dir", c.cfg.OutputDir,
	)

	return diags, nil
}

func (c *converter) convertStdin() diagnostic.Diagnostics {
	const name = "<stdin>"

	data, err := io.ReadAll(c.stdin)
	if err != nil {
		var diags diagnostic.Diagnostics
		diags.AddError(diagnostic.CodeIO, fmt.Sprintf("reading stdin: %v", err), name)

		return diags
	}

	return c.emit(name, data)
}

func (c *converter) convertToStdout(file string) diagnostic.Diagnostics {
	data, err := afero.ReadFile(c.fs, file)
	if err != nil {
		var diags diagnostic.Diagnostics
		diags.AddError(diagnostic.CodeIO, fmt.Sprintf("reading input: %v", err), file)

		return diags
	}

	return c.emit(file, data)
}

func (c *converter) emit(name string, data []byte) diagnostic.Diagnostics {
	lua, diags := c.convert(name, data)
	if diags.HasErrors() {
		return diags
	}

	if _, err := io.WriteString(c.stdout, lua); err != nil {
		diags.AddError(diagnostic.CodeIO, fmt.Sprintf("writing output: %v", err), name)
	}

	return diags
}

func (c *converter) convertToDir(file string) diagnostic.Diagnostics {
	data, err := afero.ReadFile(c.fs, file)
	if err != nil {
		var diags diagnostic.Diagnostics
		diags.AddError(diagnostic.CodeIO, fmt.Sprintf("reading input: %v", err), file)

		return diags
	}

	lua, diags := c.convert(file, data)
	if diags.HasErrors() {
		return diags
	}

	out, err := writeOutput(c.fs, c.cfg.OutputDir, file, []byte(lua))
	if err != nil {
		diags.AddError(diagnostic.CodeIO, err.Error(), file)
		return diags
	}

	level.Debug(c.logger).Log("msg", "wrote output", "input", file, "output", out)

	return diags
}

// convert turns one document into the final file content, newline terminated.
// A document without content still converts, to a bare nil, with a warning.
func (c *converter) convert(name string, data []byte) (string, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	level.Debug(c.logger).Log("msg", "converting", "input", name, "bytes", len(data))

	lua, err := yaml2lua.ParseBytes(data, c.opts...)
	if err != nil {
		level.Debug(c.logger).Log("msg", "conversion failed", "input", name, "err", err)
		diags.Add(diagnostic.FromError(name, err))

		return "", diags
	}

	if lua == nullLiteral {
		diags.AddWarning(diagnostic.CodeEmpty, "document is empty or null, output is nil", name)
	}

	return c.cfg.wrap(lua) + "\n", diags
}
