package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Parse tool defaults.
	ReportUnknownFields bool
	StrictRefs          bool
	ResolveRefs         bool

	// DiagnosticLimit is the default page size for diagnostics.
	DiagnosticLimit int
	// MaxLimit caps any requested page size.
	MaxLimit int
	// MaxInlineSize caps inline content, in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASLOAD_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:        envBool("OASLOAD_CACHE_ENABLED", true),
		CacheMaxSize:        envInt("OASLOAD_CACHE_MAX_SIZE", 10),
		CacheFileTTL:        envDuration("OASLOAD_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:     envDuration("OASLOAD_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval:  envDuration("OASLOAD_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ReportUnknownFields: envBool("OASLOAD_REPORT_UNKNOWN_FIELDS", false),
		StrictRefs:          envBool("OASLOAD_STRICT_REFS", false),
		ResolveRefs:         envBool("OASLOAD_RESOLVE_REFS", false),
		DiagnosticLimit:     envInt("OASLOAD_MAX_DIAGNOSTICS", 100),
		MaxLimit:            envInt("OASLOAD_MAX_LIMIT", 1000),
		MaxInlineSize:       int64(envInt("OASLOAD_MAX_INLINE_SIZE", 10*1024*1024)),
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
