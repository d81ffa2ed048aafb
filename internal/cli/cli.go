// Package cli implements the pokedex command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pokedex/pkg/buildinfo"
	"github.com/matzehuels/pokedex/pkg/cache"
	"github.com/matzehuels/pokedex/pkg/events"
	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokedex/pkg/observability"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pokedex"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pokedex browses Pokémon from PokeAPI",
		Long:         `Pokedex is a terminal browser for the public PokeAPI: paginated lists with type filters, per-Pokémon detail, and evolution chains as text, JSON or diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/pokedex/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVar(&c.refresh, "refresh", false, "bypass cached responses and store fresh ones")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.evolutionsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and installs logging hooks. It runs before
// every command.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.configFile == "" {
		path, err := configPath()
		if err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
		c.configFile = path
	}
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	c.Config = cfg

	registerHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("loaded config", "path", c.configFile, "cache", c.cacheBackend())
	return nil
}

// =============================================================================
// Service Factory
// =============================================================================

// newService wires the configured cache backend, the PokeAPI client and an
// event bus into a pokedex.Service. The returned close function releases
// the cache backend.
func (c *CLI) newService(ctx context.Context) (*pokedex.Service, func(), error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	client := pokeapi.NewClient(backend, c.Config.Cache.TTL.Duration).WithBaseURL(c.Config.BaseURL)
	client.SetTimeout(c.Config.Timeout.Duration)
	client.SetRetries(c.Config.Retries)

	svc := pokedex.NewService(client, events.NewBus(c.Logger), c.Logger)
	svc.Refresh = c.refresh
	svc.Paging = c.Config.paging()

	closeFn := func() {
		if err := backend.Close(); err != nil {
			c.Logger.Warn("close cache", "error", err)
		}
	}
	return svc, closeFn, nil
}

func (c *CLI) cacheBackend() string {
	if c.noCache {
		return backendNone
	}
	return c.Config.Cache.Backend
}

// newCache opens the configured backend. A file cache that cannot be
// located degrades to no caching; network backends that cannot be reached
// are errors.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	switch c.cacheBackend() {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.redisConfig())
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	case backendMongo:
		mc, err := cache.NewMongoCache(ctx, c.Config.mongoConfig())
		if err != nil {
			return nil, fmt.Errorf("mongo cache: %w", err)
		}
		return mc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns cache.dir when configured, otherwise the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pokedex/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// registerHooks routes HTTP, cache and fetch events to the debug log.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
	observability.SetFetchHooks(h)
}
