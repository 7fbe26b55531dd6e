// Package commands provides CLI command handlers for oasgraph.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgraph/parser"
	"github.com/erraggy/oasgraph/rawdoc"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// App carries the streams and global flags shared by every command.
type App struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	Verbose     bool
	MaxRefDepth int
}

// NewApp returns an App bound to the process streams.
func NewApp(ctx context.Context) *App {
	return &App{
		Context:     ctx,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		MaxRefDepth: parser.MaxRefDepth,
	}
}

func (a *App) ctx() context.Context {
	if a.Context == nil {
		return context.Background()
	}
	return a.Context
}

// Logger returns the logger for parser activity. It discards everything
// unless --verbose was given.
func (a *App) Logger() *slog.Logger {
	if !a.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (a *App) parserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMaxRefDepth(a.MaxRefDepth)}
	if a.Verbose {
		opts = append(opts, parser.WithLogger(parser.NewSlogAdapter(a.Logger())))
	}
	return opts
}

// Load reads and builds the document at specPath, or from stdin when
// specPath is StdinFilePath.
func (a *App) Load(specPath string) (*parser.Document, error) {
	var data []byte
	var err error
	if specPath == StdinFilePath {
		data, err = io.ReadAll(a.Stdin)
	} else {
		data, err = os.ReadFile(specPath) //nolint:gosec // G304 - user supplied spec path
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatSpecPath(specPath), err)
	}
	doc, err := parser.ParseBytes(data, a.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	a.Logger().Debug("loaded document", "spec", FormatSpecPath(specPath), "dialect", doc.Dialect().String())
	return doc, nil
}

// OutputStructured writes data in the specified format (json or yaml).
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// EncodeTree renders a raw document tree as indented JSON followed by a
// newline, or as YAML for any other format.
func EncodeTree(tree any, format string) ([]byte, error) {
	if format != FormatJSON {
		return rawdoc.EncodeYAML(tree)
	}
	data, err := rawdoc.EncodeJSONIndent(tree, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
