package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pokedex/pkg/cache"
	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// Cache backends accepted in cache.backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the contents of config.toml. Zero fields fall back to
// [defaultConfig].
type Config struct {
	BaseURL string   `toml:"base_url"`
	Timeout duration `toml:"timeout"`
	Retries int      `toml:"retries"`

	// Paging is "page" (the page number is the list offset) or "stride"
	// (disjoint pages of ten).
	Paging string `toml:"paging"`

	Cache CacheConfig `toml:"cache"`
	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	TTL     duration `toml:"ttl"`
	Dir     string   `toml:"dir,omitempty"`
}

// RedisConfig is used when cache.backend is "redis".
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
}

// MongoConfig is used when cache.backend is "mongo".
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration reads "10s"-style strings from TOML.
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() Config {
	return Config{
		BaseURL: pokeapi.DefaultBaseURL,
		Timeout: duration{10 * time.Second},
		Paging:  "page",
		Cache: CacheConfig{
			Backend: backendFile,
			TTL:     duration{24 * time.Hour},
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "pokedex",
			Collection: "http_cache",
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendMongo, backendNone:
	default:
		return fmt.Errorf("cache.backend %q: want file, redis, mongo or none", c.Cache.Backend)
	}
	if _, ok := pokedex.ParsePaging(c.Paging); !ok {
		return fmt.Errorf("paging %q: want page or stride", c.Paging)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative (got %d)", c.Retries)
	}
	if c.Timeout.Duration < 0 || c.Cache.TTL.Duration < 0 {
		return errors.New("timeout and cache.ttl must not be negative")
	}
	return nil
}

func (c Config) paging() pokedex.Paging {
	p, _ := pokedex.ParsePaging(c.Paging)
	return p
}

func (c Config) redisConfig() cache.RedisConfig {
	return cache.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

func (c Config) mongoConfig() cache.MongoConfig {
	return cache.MongoConfig{URI: c.Mongo.URI, Database: c.Mongo.Database, Collection: c.Mongo.Collection}
}

func writeConfig(w io.Writer, cfg Config) error {
	if cfg.Redis.Password != "" {
		cfg.Redis.Password = "********"
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// configPath returns the config file location using XDG standard
// (~/.config/pokedex/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.configFile)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(cmd.OutOrStdout(), c.Config)
		},
	})

	return cmd
}
