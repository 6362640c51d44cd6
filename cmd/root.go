package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/favnpm/internal/app"
	"github.com/zjrosen/favnpm/internal/cachemanager"
	"github.com/zjrosen/favnpm/internal/config"
	"github.com/zjrosen/favnpm/internal/favorites"
	"github.com/zjrosen/favnpm/internal/log"
	"github.com/zjrosen/favnpm/internal/registry"
	"github.com/zjrosen/favnpm/internal/throttle"
	"github.com/zjrosen/favnpm/internal/tracing"
)

func init() {
	// Query the terminal background before the program starts so the OSC 11
	// reply cannot land in the input fields.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const envPrefix = "FAVNPM"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "favnpm",
	Short:   "Search npm and keep a list of favorite packages",
	Long:    `A terminal user interface for searching the npm registry and saving favorite packages, with the reason you like them, to a favorites service.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/favnpm/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also enabled by "+envPrefix+"_DEBUG)")
	rootCmd.PersistentFlags().String("registry-url", "", "package registry search endpoint")
	rootCmd.PersistentFlags().String("favorites-url", "", "favorites service endpoint")
	rootCmd.PersistentFlags().Duration("debounce", 0, "quiet period after typing before searching")

	bindFlags(viper.GetViper(), rootCmd)
}

// bindFlags maps CLI flags onto config keys.
func bindFlags(v *viper.Viper, c *cobra.Command) {
	_ = v.BindPFlag("registry.url", c.PersistentFlags().Lookup("registry-url"))
	_ = v.BindPFlag("favorites.url", c.PersistentFlags().Lookup("favorites-url"))
	_ = v.BindPFlag("search.debounce", c.PersistentFlags().Lookup("debounce"))
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = findConfigFile()
	}

	loaded, err := loadConfig(viper.GetViper(), path)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Failed to load config", err, "path", path)
	}
	cfg = loaded
}

// findConfigFile returns the first config file that exists, in lookup order:
//  1. .favnpm/config.yaml (current directory)
//  2. ~/.config/favnpm/config.yaml (user config)
//
// When neither exists a default config is written to the user location.
func findConfigFile() string {
	local := filepath.Join(".favnpm", "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	user := filepath.Join(home, ".config", "favnpm", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user
	}
	if err := config.WriteDefaultConfig(user); err != nil {
		// Continue with defaults (no config file)
		return ""
	}
	return user
}

// loadConfig layers defaults, the config file at path (if any), FAVNPM_*
// environment variables, and bound flags into a Config.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	defaults := config.Defaults()
	v.SetDefault("registry.url", defaults.Registry.URL)
	v.SetDefault("registry.query_param", defaults.Registry.QueryParam)
	v.SetDefault("registry.size", defaults.Registry.Size)
	v.SetDefault("registry.timeout", defaults.Registry.Timeout)
	v.SetDefault("favorites.url", defaults.Favorites.URL)
	v.SetDefault("favorites.timeout", defaults.Favorites.Timeout)
	v.SetDefault("search.debounce", defaults.Search.Debounce)
	v.SetDefault("search.cache_ttl", defaults.Search.CacheTTL)
	v.SetDefault("ui.toast_duration", defaults.UI.ToastDuration)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", config.DefaultTracesFilePath())
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var readErr error
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			readErr = fmt.Errorf("reading config %s: %w", path, err)
		} else {
			log.Debug(log.CatConfig, "Loaded config", "path", v.ConfigFileUsed())
		}
	}

	var out config.Config
	if err := v.Unmarshal(&out); err != nil {
		return defaults, fmt.Errorf("decoding config: %w", err)
	}
	return out, readErr
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("favnpm")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	searcher, committer, err := buildClients(cfg, provider)
	if err != nil {
		return err
	}

	zone.NewGlobal()
	model := app.New(app.Options{
		Searcher:      searcher,
		Committer:     committer,
		Debounce:      cfg.Search.Debounce,
		ToastDuration: cfg.UI.ToastDuration,
	})

	log.Info(log.CatConfig, "Starting favnpm",
		"registry", cfg.Registry.URL, "favorites", cfg.Favorites.URL, "debounce", cfg.Search.Debounce)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// buildClients constructs the registry searcher, memoized when a cache TTL is
// configured, and the favorites committer.
func buildClients(c config.Config, provider *tracing.Provider) (throttle.Searcher, favorites.Committer, error) {
	client, err := registry.NewClient(registry.Config{
		BaseURL:    c.Registry.URL,
		QueryParam: c.Registry.QueryParam,
		Size:       c.Registry.Size,
		Timeout:    c.Registry.Timeout,
	}, registry.WithTracer(provider.Tracer()))
	if err != nil {
		return nil, nil, err
	}

	var searcher throttle.Searcher = client
	if ttl := c.Search.CacheTTL; ttl > 0 {
		cache := cachemanager.NewInMemoryCacheManager[string, []registry.Package](
			"registry-search", ttl, cachemanager.DefaultCleanupInterval)
		searcher = registry.NewCached(client, cache, ttl)
	}

	committer, err := favorites.NewClient(favorites.Config{
		URL:     c.Favorites.URL,
		Timeout: c.Favorites.Timeout,
	}, favorites.WithTracer(provider.Tracer()))
	if err != nil {
		return nil, nil, err
	}
	return searcher, committer, nil
}

// initLogging enables file logging when --debug or FAVNPM_DEBUG is set.
// The log goes to FAVNPM_LOG, or debug.log in the working directory.
func initLogging(prefix string) (func(), error) {
	if os.Getenv(envPrefix+"_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}

	logPath := os.Getenv(envPrefix + "_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Debug logging enabled", "path", logPath)
	return cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
