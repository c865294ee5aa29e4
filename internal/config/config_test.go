package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BIND", "DB_PATH", "TEMPLATE_DIR", "STATIC_DIR", "SECURE_COOKIE", "LOG_LEVEL", "LOG_FILE", "SESSION_CLEANUP_SCHEDULE", "ADMIN_USER", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, "web/templates", cfg.TemplateDir)
	assert.Equal(t, "web/static", cfg.StaticDir)
	assert.False(t, cfg.SecureCookie)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "@hourly", cfg.SessionCleanupSchedule)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BIND", "127.0.0.1")
	t.Setenv("DB_PATH", "/tmp/w.db")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ADMIN_USER", "  coach ")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/w.db", cfg.DBPath)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "coach", cfg.AdminUser)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("SECURE_COOKIE", "maybe")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.SecureCookie)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("WORKOUT_TEST_FROM_FILE=yes\nPORT=7000\n"), 0o600))

	t.Setenv("PORT", "7100")
	t.Setenv("WORKOUT_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("WORKOUT_TEST_FROM_FILE"))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "yes", os.Getenv("WORKOUT_TEST_FROM_FILE"))
	assert.Equal(t, "7100", os.Getenv("PORT"), "existing variables win over .env")

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
