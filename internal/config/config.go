// Package config provides configuration types and defaults for favnpm.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/favnpm/internal/log"
)

// Config holds all configuration options for favnpm.
type Config struct {
	Registry  RegistryConfig  `mapstructure:"registry" yaml:"registry"`
	Favorites FavoritesConfig `mapstructure:"favorites" yaml:"favorites"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
}

// RegistryConfig locates the package registry search endpoint.
type RegistryConfig struct {
	URL        string        `mapstructure:"url" yaml:"url"`
	QueryParam string        `mapstructure:"query_param" yaml:"query_param"` // name of the search text parameter
	Size       int           `mapstructure:"size" yaml:"size"`               // max results per lookup
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// FavoritesConfig locates the favorites storage endpoint.
type FavoritesConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SearchConfig controls query dispatch.
type SearchConfig struct {
	// Debounce is the quiescence window after the last keystroke before
	// a lookup is issued.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// CacheTTL keeps successful lookups in memory for the session.
	// Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/favnpm/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

const (
	DefaultRegistryURL  = "https://registry.npmjs.org/-/v1/search"
	DefaultFavoritesURL = "http://localhost:3000/fav-packages"

	MinDebounce = 50 * time.Millisecond
	MaxDebounce = 5 * time.Second
)

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Registry: RegistryConfig{
			URL:        DefaultRegistryURL,
			QueryParam: "text",
			Size:       20,
			Timeout:    10 * time.Second,
		},
		Favorites: FavoritesConfig{
			URL:     DefaultFavoritesURL,
			Timeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
			CacheTTL: time.Minute,
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/favnpm/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "favnpm", "traces", "traces.jsonl")
}

// Validate checks the configuration for errors.
func Validate(cfg Config) error {
	if err := validateEndpoint("registry.url", cfg.Registry.URL); err != nil {
		return err
	}
	if cfg.Registry.QueryParam == "" {
		return fmt.Errorf("registry.query_param is required")
	}
	if cfg.Registry.Size < 0 {
		return fmt.Errorf("registry.size must not be negative, got %d", cfg.Registry.Size)
	}
	if cfg.Registry.Timeout <= 0 {
		return fmt.Errorf("registry.timeout must be positive, got %s", cfg.Registry.Timeout)
	}

	if err := validateEndpoint("favorites.url", cfg.Favorites.URL); err != nil {
		return err
	}
	if cfg.Favorites.Timeout <= 0 {
		return fmt.Errorf("favorites.timeout must be positive, got %s", cfg.Favorites.Timeout)
	}

	if cfg.Search.Debounce < MinDebounce || cfg.Search.Debounce > MaxDebounce {
		return fmt.Errorf("search.debounce must be between %s and %s, got %s", MinDebounce, MaxDebounce, cfg.Search.Debounce)
	}
	if cfg.Search.CacheTTL < 0 {
		return fmt.Errorf("search.cache_ttl must not be negative, got %s", cfg.Search.CacheTTL)
	}

	if cfg.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive, got %s", cfg.UI.ToastDuration)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

func validateEndpoint(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, raw)
	}
	return nil
}

// DefaultConfigTemplate returns the commented default config file contents.
func DefaultConfigTemplate() string {
	return `# favnpm configuration

# Package registry search endpoint
registry:
  url: ` + DefaultRegistryURL + `
  query_param: text   # name of the search text parameter
  size: 20            # max results per lookup
  timeout: 10s

# Favorites storage endpoint
favorites:
  url: ` + DefaultFavoritesURL + `
  timeout: 10s

# Search dispatch
search:
  debounce: 300ms     # wait for typing to pause before searching
  cache_ttl: 1m       # reuse identical lookups for this long (0 disables)

# UI settings
ui:
  toast_duration: 3s

# Tracing of registry and favorites calls
tracing:
  enabled: false
  exporter: file      # none, file, stdout, otlp
  # file_path: ~/.config/favnpm/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
