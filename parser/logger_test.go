package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/erraggy/oasgraph/internal/testutil"
)

func newTextAdapter(level slog.Level) (*SlogAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogAdapter(slog.New(handler)), &buf
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("ignored", "key", "value")
	l.Error("ignored")
	if _, ok := l.With("key", "value").(NopLogger); !ok {
		t.Error("With should return a NopLogger")
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l Logger)
		level string
	}{
		{"debug", func(l Logger) { l.Debug("msg", "k", "v") }, "level=DEBUG"},
		{"info", func(l Logger) { l.Info("msg", "k", "v") }, "level=INFO"},
		{"warn", func(l Logger) { l.Warn("msg", "k", "v") }, "level=WARN"},
		{"error", func(l Logger) { l.Error("msg", "k", "v") }, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, buf := newTextAdapter(slog.LevelDebug)
			tt.log(adapter)
			out := buf.String()
			for _, want := range []string{tt.level, "msg=msg", "k=v", "component=parser"} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}

func TestSlogAdapterFiltersBelowLevel(t *testing.T) {
	adapter, buf := newTextAdapter(slog.LevelWarn)
	adapter.Debug("hidden")
	adapter.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
	adapter.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestSlogAdapterWith(t *testing.T) {
	adapter, buf := newTextAdapter(slog.LevelDebug)
	adapter.With("doc", "petstore").Info("loaded")
	if !strings.Contains(buf.String(), "doc=petstore") {
		t.Errorf("expected attribute from With, got %q", buf.String())
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	if NewSlogAdapter(nil).logger == nil {
		t.Error("nil logger should fall back to slog.Default()")
	}
}

func TestLoggerReceivesResolutionEvents(t *testing.T) {
	adapter, buf := newTextAdapter(slog.LevelDebug)
	doc, err := ParseBytes([]byte(testutil.CircularSchemas), WithLogger(adapter))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}

	if _, err := doc.ResolveReference("#/components/schemas/Leaf", true); err != nil {
		t.Fatalf("ResolveReference: %v", err)
	}
	if !doc.IsCircularReference("#/components/schemas/A") {
		t.Fatal("expected A to be circular")
	}

	out := buf.String()
	for _, want := range []string{`msg="expanded reference"`, `msg="circular reference detected"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not contain %s:\n%s", want, out)
		}
	}
}

func TestLoggerWarnsOnMissingVersion(t *testing.T) {
	adapter, buf := newTextAdapter(slog.LevelWarn)
	if _, err := ParseBytes([]byte("info: {title: t, version: '1'}\npaths: {}\n"), WithLogger(adapter)); err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if !strings.Contains(buf.String(), "declares no version") {
		t.Errorf("expected a missing version warning, got %q", buf.String())
	}
}
