package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5002", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Suggest.Debounce)
	assert.True(t, cfg.Suggest.Enabled)
	assert.Equal(t, "monokai", cfg.UI.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "koda"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "koda", "config.yaml"), []byte(
		"backend:\n  base_url: http://example.test:9000\n  timeout: 3s\nsuggest:\n  enabled: false\n  debounce: 200ms\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://example.test:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.False(t, cfg.Suggest.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.Suggest.Debounce)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("KODA_BACKEND_URL", "http://override:5002")
	t.Setenv("KODA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://override:5002", cfg.Backend.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromExplicitPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: http://custom:7000\n"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://custom:7000", cfg.Backend.BaseURL)

	// An explicitly given file must exist.
	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsEmptyBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://saved:1234"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:1234", loaded.Backend.BaseURL)
}
