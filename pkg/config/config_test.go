package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "MODELS_CONFIG", "RESOURCES_DIR",
	"SETTINGS_PATH", "ALLOWED_ORIGIN", "REQUEST_TIMEOUT_SECONDS",
}

// clearEnv unsets the config keys for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "config/models.yaml", cfg.ModelsConfig)
	assert.Equal(t, "resources", cfg.ResourcesDir)
	assert.Equal(t, "data/settings.yaml", cfg.SettingsPath)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestNewConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")
	_, err := NewConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("PORT", "")
	_, err = NewConfig()
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nSETTINGS_PATH=/tmp/s.yaml\n"), 0o644))

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/tmp/s.yaml", cfg.SettingsPath)
}

func TestLoad_ExistingEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "6060")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Port)
}
