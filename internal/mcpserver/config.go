package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasgraph/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	MaxFetchSize    int64
	AllowPrivateIPs bool

	// Parser settings.
	MaxRefDepth     int
	ResolutionCache bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGRAPH_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASGRAPH_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASGRAPH_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASGRAPH_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASGRAPH_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASGRAPH_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASGRAPH_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("OASGRAPH_LIST_LIMIT", 100),
		MaxLimit:           envInt("OASGRAPH_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASGRAPH_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxFetchSize:       int64(envInt("OASGRAPH_MAX_FETCH_SIZE", 50*1024*1024)),
		AllowPrivateIPs:    envBool("OASGRAPH_ALLOW_PRIVATE_IPS", false),
		MaxRefDepth:        envInt("OASGRAPH_MAX_REF_DEPTH", parser.MaxRefDepth),
		ResolutionCache:    envBool("OASGRAPH_RESOLUTION_CACHE", true),
	}
}

// parserOptions returns the parser options derived from the configuration.
func (c *serverConfig) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxRefDepth(c.MaxRefDepth),
		parser.WithResolutionCache(c.ResolutionCache),
		parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
