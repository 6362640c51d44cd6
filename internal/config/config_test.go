package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, DefaultFavoritesURL, cfg.Favorites.URL)
}

func TestValidate_Endpoints(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing registry url", func(c *Config) { c.Registry.URL = "" }, "registry.url is required"},
		{"relative registry url", func(c *Config) { c.Registry.URL = "/search" }, "registry.url must use http or https"},
		{"ftp favorites url", func(c *Config) { c.Favorites.URL = "ftp://host/fav" }, "favorites.url must use http or https"},
		{"no host", func(c *Config) { c.Favorites.URL = "http://" }, "favorites.url must include a host"},
		{"missing query param", func(c *Config) { c.Registry.QueryParam = "" }, "registry.query_param is required"},
		{"negative size", func(c *Config) { c.Registry.Size = -1 }, "registry.size"},
		{"zero registry timeout", func(c *Config) { c.Registry.Timeout = 0 }, "registry.timeout"},
		{"zero favorites timeout", func(c *Config) { c.Favorites.Timeout = 0 }, "favorites.timeout"},
		{"debounce too short", func(c *Config) { c.Search.Debounce = time.Millisecond }, "search.debounce"},
		{"debounce too long", func(c *Config) { c.Search.Debounce = time.Minute }, "search.debounce"},
		{"negative cache ttl", func(c *Config) { c.Search.CacheTTL = -time.Second }, "search.cache_ttl"},
		{"zero toast", func(c *Config) { c.UI.ToastDuration = 0 }, "ui.toast_duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ZeroCacheTTLDisablesCache(t *testing.T) {
	cfg := Defaults()
	cfg.Search.CacheTTL = 0
	require.NoError(t, Validate(cfg))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{}))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.ErrorContains(t, err, "sample_rate")

	err = ValidateTracing(TracingConfig{Exporter: "jaeger"})
	require.ErrorContains(t, err, "tracing.exporter")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "file"})
	require.ErrorContains(t, err, "file_path is required")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"})
	require.ErrorContains(t, err, "otlp_endpoint is required")

	// Path requirements only apply when enabled
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: false, Exporter: "file"}))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var parsed struct {
		Registry struct {
			URL        string `yaml:"url"`
			QueryParam string `yaml:"query_param"`
			Size       int    `yaml:"size"`
		} `yaml:"registry"`
		Favorites struct {
			URL string `yaml:"url"`
		} `yaml:"favorites"`
		Search struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"search"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))

	defaults := Defaults()
	require.Equal(t, defaults.Registry.URL, parsed.Registry.URL)
	require.Equal(t, defaults.Registry.QueryParam, parsed.Registry.QueryParam)
	require.Equal(t, defaults.Registry.Size, parsed.Registry.Size)
	require.Equal(t, defaults.Favorites.URL, parsed.Favorites.URL)
	require.Equal(t, defaults.Search.Debounce.String(), parsed.Search.Debounce)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".favnpm", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
