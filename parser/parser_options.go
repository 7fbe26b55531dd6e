package parser

import (
	"fmt"

	"github.com/erraggy/oasgraph/oaserrors"
)

// Option is a function that configures document construction
type Option func(*config) error

// config holds configuration for a document and its resolver
type config struct {
	logger Logger

	// Resource limits (0 means use default)
	maxRefDepth int

	// Resolution cache for followNested results
	resolutionCache bool

	// Version assumed when the document declares none
	defaultVersion string
}

// applyOptions applies option functions and fills in defaults
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger:         NopLogger{},
		maxRefDepth:    MaxRefDepth,
		defaultVersion: DefaultVersion,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets a structured logger for debug output during construction
// and resolution.
// By default, no logging is performed.
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use NewSlogAdapter to wrap a *slog.Logger.
//
// Example:
//
//	logger := parser.NewSlogAdapter(slog.Default())
//	doc, err := parser.Construct(raw, parser.WithLogger(logger))
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum depth for expanding nested $ref pointers.
// This prevents stack overflow from deeply nested (but non-circular) references.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *config) error {
		if depth < 0 {
			return &oaserrors.ConfigError{
				Option:  "WithMaxRefDepth",
				Value:   depth,
				Message: "maxRefDepth cannot be negative",
			}
		}
		if depth == 0 {
			depth = MaxRefDepth
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithResolutionCache enables memoization of fully expanded references
// across calls to ResolveReference. Cached composites are shared between
// callers and must be treated as read-only.
// Default: false
func WithResolutionCache(enabled bool) Option {
	return func(cfg *config) error {
		cfg.resolutionCache = enabled
		return nil
	}
}

// WithDefaultVersion sets the version assumed for documents that declare
// neither "openapi" nor "swagger".
// Default: "3.0.0"
func WithDefaultVersion(version string) Option {
	return func(cfg *config) error {
		if _, ok := ParseVersion(version); !ok {
			return &oaserrors.ConfigError{
				Option:  "WithDefaultVersion",
				Value:   version,
				Message: fmt.Sprintf("unsupported OpenAPI version %q", version),
			}
		}
		cfg.defaultVersion = version
		return nil
	}
}
