// ABOUTME: Tests for configuration precedence and validation
// ABOUTME: Uses temp files for YAML and .env sources
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIBaseURL, EnvFileBaseURL, EnvLogFile, EnvLogLevel, EnvCharmHost} {
		t.Setenv(key, "")
		// Unset so .env files may fill the key; t.Setenv restores it afterwards.
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.LogFile, "freightdesk.log")
	assert.ErrorIs(t, cfg.Validate(), ErrNoAPIBaseURL)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://tms.example.com/api/\nlog_level: warn\n"), 0600))

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://tms.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "https://tms.example.com", cfg.FileBaseURL, "file base derives from the api base")
	assert.Equal(t, "warn", cfg.LogLevel)
	require.NoError(t, cfg.Validate())

	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvFileBaseURL, "https://files.example.com")
	cfg, err = Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://files.example.com", cfg.FileBaseURL)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvAPIBaseURL+"=http://from-dotenv/api\n"+EnvCharmHost+"=charm.example.com\n"), 0600))
	t.Setenv(EnvCharmHost, "charm.override.com")

	cfg, err := Load(filepath.Join(dir, "none.yaml"), envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv/api", cfg.APIBaseURL)
	assert.Equal(t, "charm.override.com", cfg.CharmHost)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unterminated"), 0600))

	_, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	assert.Error(t, err)
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := &Config{APIBaseURL: "http://x/api", LogLevel: "chatty"}
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{APIBaseURL: "http://tms/api", LogLevel: "error", LogFile: "/tmp/f.log"}
	require.NoError(t, want.Save(path))

	got, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, want.APIBaseURL, got.APIBaseURL)
	assert.Equal(t, want.LogLevel, got.LogLevel)
	assert.Equal(t, want.LogFile, got.LogFile)
}
