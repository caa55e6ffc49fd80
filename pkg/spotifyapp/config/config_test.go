package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spotifyapp.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "home", cfg.StartRoute)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultFetchTimeout, cfg.Loader.FetchTimeout.Duration)
}

func TestDefaultDevMode(t *testing.T) {
	t.Setenv("ENVIRONMENT", "DEV")
	assert.Equal(t, "debug", Default().LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
language = "es"
start_route = "library"

[loader]
max_entries = 8
fetch_timeout = "3s"

[window]
fullscreen = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "library", cfg.StartRoute)
	assert.Equal(t, 8, cfg.Loader.MaxEntries)
	assert.Equal(t, 3*time.Second, cfg.Loader.FetchTimeout.Duration)
	assert.Equal(t, DefaultWorkers, cfg.Loader.Workers)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, int32(DefaultWindowWidth), cfg.Window.Width)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "syntax", body: `log_level = `},
		{name: "unknown key", body: `colour = "green"`},
		{name: "bad duration", body: "[loader]\nfetch_timeout = \"soon\""},
		{name: "invalid value", body: "[loader]\nworkers = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)

			var cfgErr *Error
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.Loader.MaxBytes = 0
	cfg.Window.Width = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "loader.max_bytes")
	assert.Contains(t, err.Error(), "window")
}
