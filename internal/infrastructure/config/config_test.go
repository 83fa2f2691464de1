package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// App config
	assert.Equal(t, ".", cfg.App.ResourcesPath)
	assert.Equal(t, "json", cfg.App.Format)
	assert.False(t, cfg.App.Resume)
	assert.False(t, cfg.App.AutoSave)

	// Logging config
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	// Metrics config
	assert.Empty(t, cfg.Metrics.Textfile)

	assert.NoError(t, cfg.Validate())
}

func TestLoadStartsFromDefault(t *testing.T) {
	t.Setenv("MINIAPP_FORMAT", "toml")

	cfg, err := Load()
	require.NoError(t, err)

	want := Default()
	want.App.Format = "toml"
	assert.Equal(t, want, cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"MINIAPP_RESOURCES_PATH": "test-data",
		"MINIAPP_FORMAT":         "yaml",
		"MINIAPP_RESUME":         "true",
		"MINIAPP_AUTOSAVE":       "true",
		"LOG_LEVEL":              "debug",
		"LOG_DEV":                "true",
		"LOG_OUTPUT":             "stdout",
		"MINIAPP_METRICS_FILE":   "/tmp/miniapp.prom",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-data", cfg.App.ResourcesPath)
	assert.Equal(t, "yaml", cfg.App.Format)
	assert.True(t, cfg.App.Resume)
	assert.True(t, cfg.App.AutoSave)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "/tmp/miniapp.prom", cfg.Metrics.Textfile)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := Load()
	assert.ErrorContains(t, err, "unknown log level")
}

func TestLoadRejectsMalformedBool(t *testing.T) {
	t.Setenv("MINIAPP_RESUME", "maybe")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MINIAPP_FORMAT=toml\nLOG_LEVEL=info\n"), 0o644))

	// godotenv sets variables for the process; restore them afterwards
	t.Setenv("MINIAPP_FORMAT", "")
	os.Unsetenv("MINIAPP_FORMAT")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "toml", cfg.App.Format)
	// existing environment wins over .env
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLogConfigLogger(t *testing.T) {
	lc := LogConfig{Level: "INFO", Development: true}
	got := lc.Logger()

	assert.Equal(t, "info", got.Level)
	assert.True(t, got.Development)
	assert.Equal(t, []string{"stderr"}, got.OutputPaths)
}
