package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Service.Origin)
	assert.Equal(t, 30, cfg.Service.TimeoutSec)
	assert.Equal(t, DefaultDraft(), cfg.Defaults.Draft())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_ReadsFileAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  base_url: https://studio.example.com/
defaults:
  mode: long
  duration_sec: 600
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://studio.example.com/", cfg.Service.BaseURL)
	assert.Equal(t, 30, cfg.Service.TimeoutSec)

	d := cfg.Defaults.Draft()
	assert.Equal(t, ModeLong, d.Mode)
	assert.Equal(t, 600, d.DurationSec)
	assert.Equal(t, "en", d.Language)
	assert.Equal(t, DefaultDraft().Prompt, d.Prompt)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Service.BaseURL = "http://api.local:8000"
	cfg.Defaults.Language = "de"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local:8000", loaded.Service.BaseURL)
	assert.Equal(t, "de", loaded.Defaults.Language)
}

func TestDraftDefaults_InvalidFieldsFallBack(t *testing.T) {
	d := DraftDefaults{Mode: "square", DurationSec: -1}.Draft()
	assert.Equal(t, DefaultDraft(), d)
}

func TestResolveBaseURL(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	svc := ServiceConfig{Origin: "http://localhost:3000"}
	assert.Equal(t, "http://localhost:8000", ResolveBaseURL(svc, getenv))

	env[EnvBackendURL] = "https://api.example.com/"
	assert.Equal(t, "https://api.example.com", ResolveBaseURL(svc, getenv))

	svc.BaseURL = "http://override:9000"
	assert.Equal(t, "http://override:9000", ResolveBaseURL(svc, getenv))

	assert.Equal(t, "https://studio.example.com", ResolveBaseURL(ServiceConfig{Origin: "https://studio.example.com"}, nil))
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvBackendURL+"=http://from-dotenv:8000\n"), 0o644))
	t.Setenv(EnvBackendURL, "")
	os.Unsetenv(EnvBackendURL)

	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "http://from-dotenv:8000", os.Getenv(EnvBackendURL))

	require.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env")))
}
