package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TicketTTL)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.ScanWorkers)
	assert.Empty(t, cfg.AnswersFile)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SCAN_WORKERS", "3")
	t.Setenv("TICKET_TTL", "90m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_DSN", "off")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 3, cfg.ScanWorkers)
	assert.Equal(t, 90*time.Minute, cfg.TicketTTL)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.False(t, cfg.CacheEnabled())
}

func TestParseError(t *testing.T) {
	t.Setenv("SCAN_WORKERS", "many")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DAILY_SALT=from-file\nPORT=7000\n"), 0o600))
	t.Setenv("PORT", "7001")
	t.Cleanup(func() { _ = os.Unsetenv("DAILY_SALT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DailySalt)
	assert.Equal(t, "7001", cfg.Port)
}

func TestLevelFallsBack(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, zerolog.WarnLevel, Config{LogLevel: "warn"}.Level())
}
