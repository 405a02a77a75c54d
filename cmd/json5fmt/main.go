// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Command json5fmt reads a JSON5 document and rewrites it with normalized
// layout.  Comments in the input are accepted and discarded; object keys
// are emitted in sorted order.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/iancoleman/strcase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/creachadair/json5/ast"
	"github.com/creachadair/json5/codec"
	"github.com/creachadair/json5/cursor"
)

const version = "0.1.0"

// CLI defines the command-line interface.
var CLI struct {
	Input     string `arg:"" optional:"" help:"Path to the input document. If not specified, reads from stdin." type:"path"`
	Output    string `help:"Path to the output file. If not specified, writes to stdout." short:"o" type:"path"`
	Compact   bool   `help:"Write the document without any whitespace." short:"c"`
	Indent    int    `help:"Indentation width per nesting level." default:"4"`
	MaxLine   int    `help:"Largest container size rendered on a single line (negative to disable)." default:"4"`
	Path      string `help:"Extract the subvalue at this dotted path (e.g. servers.0.host)." short:"p"`
	Rekey     string `help:"Rewrite object keys to the given case style." enum:",camel,snake,kebab" default:""`
	StripNull bool   `help:"Omit object members whose value is null."`
	Debug     bool   `help:"Enable debug logging." short:"d"`
	Version   bool   `help:"Show version information." short:"v"`
}

func main() {
	parser := kong.Must(&CLI,
		kong.Name("json5fmt"),
		kong.Description("A tool to reformat JSON5 documents"),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("json5fmt version %s\n", version)
		return
	}
	if err := run(newLogger(CLI.Debug)); err != nil {
		ctx.Errorf("%v", err)
		os.Exit(1)
	}
}

// newLogger constructs a console logger to stderr when debug logging is
// requested, and a no-op logger otherwise.
func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.AddSync(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// run executes the reformatting pipeline: read, parse, transform, write.
func run(log *zap.Logger) error {
	defer func() { _ = log.Sync() }()

	data, err := readInput()
	if err != nil {
		return err
	}

	start := time.Now()
	v, err := ast.ParseString(string(data))
	if err != nil {
		return err
	}
	log.Debug("parsed input",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	if CLI.Path != "" {
		v, err = extract(v, CLI.Path)
		if err != nil {
			return fmt.Errorf("path %q: %w", CLI.Path, err)
		}
		log.Debug("extracted path", zap.String("path", CLI.Path))
	}
	if CLI.Rekey != "" {
		v = rekey(v, keyCase(CLI.Rekey))
		log.Debug("rewrote keys", zap.String("style", CLI.Rekey))
	}

	opts := codec.Options{
		Compact:                 CLI.Compact,
		Indent:                  CLI.Indent,
		MaxSingleLineProperties: CLI.MaxLine,
		MaxSingleLineItems:      CLI.MaxLine,
	}
	if CLI.StripNull {
		opts.KeepMember = func(_ string, v ast.Value) bool { return v.Kind() != ast.KindNull }
	}
	text, err := opts.MarshalString(v)
	if err != nil {
		return err
	}
	log.Debug("formatted output", zap.Int("bytes", len(text)))
	return writeOutput(text + "\n")
}

// readInput reads the whole input document from the named file or stdin.
func readInput() ([]byte, error) {
	if CLI.Input != "" {
		return os.ReadFile(CLI.Input)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// writeOutput writes text to the named output file or stdout.
func writeOutput(text string) error {
	if CLI.Output != "" {
		return os.WriteFile(CLI.Output, []byte(text), 0644)
	}
	_, err := io.WriteString(os.Stdout, text)
	return err
}

// extract resolves a dotted path within v.  Integer segments index arrays
// or object positions; all other segments name object keys.
func extract(v ast.Value, path string) (ast.Value, error) {
	var steps []any
	for _, seg := range strings.Split(path, ".") {
		if n, err := strconv.Atoi(seg); err == nil {
			steps = append(steps, n)
		} else {
			steps = append(steps, seg)
		}
	}
	c := cursor.New(v).Down(steps...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// rekey rebuilds v with every object key rewritten by conv.  If rewriting
// makes two keys collide, the first in key order wins.
func rekey(v ast.Value, conv func(string) string) ast.Value {
	switch t := v.(type) {
	case *ast.Object:
		o := new(ast.Object)
		for m := range t.All() {
			o.Add(conv(m.Key), rekey(m.Value, conv))
		}
		return o
	case ast.Array:
		out := make(ast.Array, len(t))
		for i, e := range t {
			out[i] = rekey(e, conv)
		}
		return out
	}
	return v
}

// keyCase returns the key-rewriting function for a --rekey style name.
func keyCase(name string) func(string) string {
	switch name {
	case "camel":
		return strcase.ToLowerCamel
	case "snake":
		return strcase.ToSnake
	case "kebab":
		return strcase.ToKebab
	}
	return func(s string) string { return s }
}
