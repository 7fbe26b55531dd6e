package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/rawdoc"
)

// RoundtripCmd builds the object model of a document and writes the tree
// it reproduces.
type RoundtripCmd struct {
	Spec   string `arg:"" help:"Path to the document, or - for stdin."`
	Output string `short:"o" help:"Write to this file instead of stdout."`
	Format string `short:"f" enum:"auto,yaml,json" default:"auto" help:"Output format (auto, yaml, json). Auto picks json for a .json output file, else yaml."`
	Check  bool   `help:"Fail if the reproduced tree differs from the input."`
}

// ErrRoundtripMismatch is returned by --check when the object model does not
// reproduce its input.
var ErrRoundtripMismatch = errors.New("reproduced document differs from input")

func (c *RoundtripCmd) Run(app *App) error {
	doc, err := app.Load(c.Spec)
	if err != nil {
		return err
	}
	tree := doc.ToRaw()
	if c.Check && !rawdoc.Equal(doc.Raw(), tree) {
		return fmt.Errorf("%s: %w", FormatSpecPath(c.Spec), ErrRoundtripMismatch)
	}

	data, err := EncodeTree(tree, c.format())
	if err != nil {
		return err
	}

	if c.Output == "" {
		Writef(app.Stdout, "%s", data)
		return nil
	}
	path, err := pathutil.SanitizeOutputPath(c.Output)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	Writef(app.Stderr, "Wrote %s\n", c.Output)
	return nil
}

func (c *RoundtripCmd) format() string {
	if c.Format != "" && c.Format != "auto" {
		return c.Format
	}
	if strings.EqualFold(filepath.Ext(c.Output), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
