// Package main provides the CLI entrypoint for yaml2lua.
//
// yaml2lua converts YAML documents into Lua table constructors:
//   - Reads stdin or one or more files
//   - Writes to stdout, or one .lua file per input with --output-dir
//   - Optionally wraps the table as `return {...}` or `NAME = {...}`
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, fs afero.Fs) int {
	app := kingpin.New("yaml2lua", "Convert YAML documents into Lua tables.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)
	app.HelpFlag.Short('h')

	var cfg config
	cfg.RegisterFlags(app)

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "yaml2lua: %v\n", err)
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "yaml2lua: invalid configuration: %v\n", err)
		return exitUsage
	}

	opts, err := cfg.encoderOptions()
	if err != nil {
		fmt.Fprintf(stderr, "yaml2lua: %v\n", err)
		return exitUsage
	}

	logger := newLogger(stderr, cfg.LogFormat, cfg.Verbose)

	c := &converter{
		cfg:    cfg,
		opts:   opts,
		fs:     fs,
		stdin:  stdin,
		stdout: stdout,
		logger: logger,
	}

	diags, err := c.run(ctx)
	if err != nil {
		level.Error(logger).Log("msg", "conversion interrupted", "err", err)
		return exitFailed
	}

	for _, d := range diags.All() {
		fmt.Fprintf(stderr, "%s: %s\n", d.Severity, d)
	}

	if diags.HasErrors() {
		return exitFailed
	}

	return exitOK
}

func newLogger(w io.Writer, format string, verbose bool) log.Logger {
	var logger log.Logger
	if format == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}

	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}

	return level.NewFilter(logger, level.AllowWarn())
}
