package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables recognised by the client.
const (
	EnvBackendURL = "PROMPTTOTUBE_BACKEND_URL"
	EnvAPIToken   = "PROMPTTOTUBE_API_TOKEN"
	EnvConfigPath = "PROMPTTOTUBE_CONFIG"
)

// Origin port substitution applied when no backend URL is configured: the
// studio front end is served on 3000 and the API on 8000.
const (
	frontendPort = "3000"
	backendPort  = "8000"
)

// ServiceConfig describes how to reach the generation service.
type ServiceConfig struct {
	// BaseURL overrides every other source of the service address.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Origin is the client origin the default address is derived from.
	Origin string `mapstructure:"origin" yaml:"origin"`

	// TimeoutSec bounds a single request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Timeout returns TimeoutSec as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// DraftDefaults seeds the intake form.
type DraftDefaults struct {
	Prompt      string `mapstructure:"prompt" yaml:"prompt"`
	Mode        string `mapstructure:"mode" yaml:"mode"`
	DurationSec int    `mapstructure:"duration_sec" yaml:"duration_sec"`
	Language    string `mapstructure:"language" yaml:"language"`
}

// Draft converts the defaults into a Draft, falling back to DefaultDraft
// for any field that is missing or invalid.
func (d DraftDefaults) Draft() Draft {
	draft := DefaultDraft()
	if d.Prompt != "" {
		draft.Prompt = d.Prompt
	}
	if mode, err := ParseMode(d.Mode); err == nil {
		draft.Mode = mode
	}
	if d.DurationSec > 0 {
		draft.DurationSec = d.DurationSec
	}
	if d.Language != "" {
		draft.Language = d.Language
	}
	return draft
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// StoreConfig locates the local journal database.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Service  ServiceConfig `mapstructure:"service" yaml:"service"`
	Defaults DraftDefaults `mapstructure:"defaults" yaml:"defaults"`
	Display  DisplayConfig `mapstructure:"display" yaml:"display"`
	Log      LogConfig     `mapstructure:"log" yaml:"log"`
	Store    StoreConfig   `mapstructure:"store" yaml:"store"`
}

// ConfigDir returns ~/.config/prompttotube.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "prompttotube")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/prompttotube/config.yaml. PROMPTTOTUBE_CONFIG
// overrides it.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	d := DefaultDraft()
	dir := ConfigDir()
	return &AppConfig{
		Service: ServiceConfig{
			Origin:     "http://localhost:3000",
			TimeoutSec: 30,
		},
		Defaults: DraftDefaults{
			Prompt:      d.Prompt,
			Mode:        string(d.Mode),
			DurationSec: d.DurationSec,
			Language:    d.Language,
		},
		Display: DisplayConfig{Theme: "default"},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "prompttotube.log"),
		},
		Store: StoreConfig{Path: filepath.Join(dir, "prompttotube.db")},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("service.base_url", def.Service.BaseURL)
	v.SetDefault("service.origin", def.Service.Origin)
	v.SetDefault("service.timeout_sec", def.Service.TimeoutSec)
	v.SetDefault("defaults.prompt", def.Defaults.Prompt)
	v.SetDefault("defaults.mode", def.Defaults.Mode)
	v.SetDefault("defaults.duration_sec", def.Defaults.DurationSec)
	v.SetDefault("defaults.language", def.Defaults.Language)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("store.path", def.Store.Path)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Service.TimeoutSec <= 0 {
		cfg.Service.TimeoutSec = def.Service.TimeoutSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("service", cfg.Service)
	v.Set("defaults", cfg.Defaults)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)
	v.Set("store", cfg.Store)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// LoadEnvFiles loads KEY=value pairs from the given dotenv files (or ./.env
// when none are given) into the process environment. Existing variables
// are not overwritten and a missing file is not an error.
func LoadEnvFiles(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ResolveBaseURL determines the service base address once at startup.
// Precedence: explicit override, then the PROMPTTOTUBE_BACKEND_URL
// environment variable, then the configured origin with the front-end port
// replaced by the API port.
func ResolveBaseURL(svc ServiceConfig, getenv func(string) string) string {
	if svc.BaseURL != "" {
		return strings.TrimRight(svc.BaseURL, "/")
	}
	if getenv != nil {
		if v := getenv(EnvBackendURL); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return strings.TrimRight(strings.Replace(svc.Origin, frontendPort, backendPort, 1), "/")
}
