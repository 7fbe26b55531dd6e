package parser

import (
	"context"
	"log/slog"
)

// Logger receives the parser's diagnostic events: documents that declare no
// version, references resolved or expanded, cycles detected and resolution
// cache hits. Attributes are alternating key-value pairs, as with log/slog:
//
//	logger.Debug("expanded reference", "ref", "#/components/schemas/Pet", "targets", 3)
//
// Most callers wrap a *slog.Logger with [NewSlogAdapter]. Any other
// structured logger fits behind a five-method adapter.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that adds attrs to every event.
	With(attrs ...any) Logger
}

// NopLogger discards every event. It is used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter sends parser events to a *slog.Logger, tagged with
// component=parser.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger.With("component", "parser")}
}

func (s *SlogAdapter) log(level slog.Level, msg string, attrs []any) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.Log(ctx, level, msg, attrs...)
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.log(slog.LevelDebug, msg, attrs) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.log(slog.LevelInfo, msg, attrs) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.log(slog.LevelWarn, msg, attrs) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.log(slog.LevelError, msg, attrs) }

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)
