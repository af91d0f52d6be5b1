package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASLOADEnv clears all OASLOAD_* env vars to isolate tests from the ambient environment.
func clearOASLOADEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASLOAD_CACHE_ENABLED", "OASLOAD_CACHE_MAX_SIZE",
		"OASLOAD_CACHE_FILE_TTL", "OASLOAD_CACHE_CONTENT_TTL",
		"OASLOAD_CACHE_SWEEP_INTERVAL",
		"OASLOAD_REPORT_UNKNOWN_FIELDS", "OASLOAD_STRICT_REFS", "OASLOAD_RESOLVE_REFS",
		"OASLOAD_MAX_DIAGNOSTICS", "OASLOAD_MAX_LIMIT", "OASLOAD_MAX_INLINE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASLOADEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.False(t, c.ReportUnknownFields)
	assert.False(t, c.StrictRefs)
	assert.False(t, c.ResolveRefs)
	assert.Equal(t, 100, c.DiagnosticLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASLOADEnv(t)
	t.Setenv("OASLOAD_CACHE_ENABLED", "false")
	t.Setenv("OASLOAD_CACHE_MAX_SIZE", "50")
	t.Setenv("OASLOAD_CACHE_FILE_TTL", "30m")
	t.Setenv("OASLOAD_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASLOAD_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASLOAD_REPORT_UNKNOWN_FIELDS", "true")
	t.Setenv("OASLOAD_STRICT_REFS", "1")
	t.Setenv("OASLOAD_RESOLVE_REFS", "TRUE")
	t.Setenv("OASLOAD_MAX_DIAGNOSTICS", "20")
	t.Setenv("OASLOAD_MAX_LIMIT", "500")
	t.Setenv("OASLOAD_MAX_INLINE_SIZE", "2048")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.True(t, c.ReportUnknownFields)
	assert.True(t, c.StrictRefs)
	assert.True(t, c.ResolveRefs)
	assert.Equal(t, 20, c.DiagnosticLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearOASLOADEnv(t)
	t.Setenv("OASLOAD_CACHE_ENABLED", "sometimes")
	t.Setenv("OASLOAD_CACHE_MAX_SIZE", "-3")
	t.Setenv("OASLOAD_CACHE_FILE_TTL", "soon")
	t.Setenv("OASLOAD_CACHE_SWEEP_INTERVAL", "-1s")
	t.Setenv("OASLOAD_STRICT_REFS", "yes please")
	t.Setenv("OASLOAD_MAX_DIAGNOSTICS", "lots")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.False(t, c.StrictRefs)
	assert.Equal(t, 100, c.DiagnosticLimit)
}

func TestEnvHelpers(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		t.Setenv("OASLOAD_TEST_BOOL", "false")
		assert.False(t, envBool("OASLOAD_TEST_BOOL", true))
		assert.True(t, envBool("OASLOAD_TEST_UNSET_BOOL", true))
	})

	t.Run("int", func(t *testing.T) {
		t.Setenv("OASLOAD_TEST_INT", "7")
		assert.Equal(t, 7, envInt("OASLOAD_TEST_INT", 1))
		t.Setenv("OASLOAD_TEST_INT", "0")
		assert.Equal(t, 1, envInt("OASLOAD_TEST_INT", 1))
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("OASLOAD_TEST_DURATION", "90s")
		assert.Equal(t, 90*time.Second, envDuration("OASLOAD_TEST_DURATION", time.Minute))
		t.Setenv("OASLOAD_TEST_DURATION", "0s")
		assert.Equal(t, time.Minute, envDuration("OASLOAD_TEST_DURATION", time.Minute))
	})
}
