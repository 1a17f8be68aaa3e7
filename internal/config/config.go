// Package config loads excalimaid settings.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults
//  2. TOML file ($XDG_CONFIG_HOME/excalimaid/config.toml, or --config)
//  3. A .env file in the working directory
//  4. EXCALIMAID_* environment variables
//
// Command-line flags are applied by the caller on top of the result.
//
// Example file:
//
//	direction = "LR"
//
//	[server]
//	addr = ":9000"
//	rate_limit = 20.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

const (
	appName = "excalimaid"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "EXCALIMAID_"

	DefaultAddr       = ":8080"
	DefaultCacheSize  = cache.DefaultMemorySize
	defaultConfigFile = "config.toml"
)

// Config is the merged configuration.
type Config struct {
	// Direction is the default forced direction; empty infers it.
	Direction string       `toml:"direction"`
	Server    ServerConfig `toml:"server"`
	Cache     CacheConfig  `toml:"cache"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// ServerConfig configures "excalimaid serve".
type ServerConfig struct {
	Addr      string `toml:"addr"`
	KeyPrefix string `toml:"key_prefix"`

	// RateLimit caps API requests per second; zero means unlimited.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Size    int    `toml:"size"`

	// TTL replaces the per-entry lifetimes when positive.
	TTL time.Duration `toml:"ttl"`

	RedisURL string `toml:"redis_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Cache: CacheConfig{
			Backend: cache.BackendNone,
			Dir:     DefaultCacheDir(),
			Size:    DefaultCacheSize,
		},
	}
}

// Load reads configuration. An empty path means the default location, where
// a missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	// .env never overrides variables that are already set.
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + name)); v != "" {
			*dst = v
		}
	}
	str("DIRECTION", &c.Direction)
	str("SERVER_ADDR", &c.Server.Addr)
	str("SERVER_KEY_PREFIX", &c.Server.KeyPrefix)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("CACHE_REDIS_URL", &c.Cache.RedisURL)

	if v := strings.TrimSpace(getenv(EnvPrefix + "SERVER_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sSERVER_RATE_LIMIT", EnvPrefix)
		}
		c.Server.RateLimit = f
	}
	if v := strings.TrimSpace(getenv(EnvPrefix + "SERVER_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sSERVER_BURST", EnvPrefix)
		}
		c.Server.Burst = n
	}
	if v := strings.TrimSpace(getenv(EnvPrefix + "CACHE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCACHE_SIZE", EnvPrefix)
		}
		c.Cache.Size = n
	}
	if v := strings.TrimSpace(getenv(EnvPrefix + "CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCACHE_TTL", EnvPrefix)
		}
		c.Cache.TTL = d
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Direction != "" {
		if _, err := flowchart.ParseDirection(c.Direction); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendMemory, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.backend %q (must be one of: none, memory, file, redis)", c.Cache.Backend)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.rate_limit and server.burst must not be negative")
	}
	if c.Cache.Size < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.size must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	return nil
}

// Options converts the cache section for cache.Open.
func (c CacheConfig) Options() cache.Config {
	return cache.Config{
		Backend:  c.Backend,
		Dir:      c.Dir,
		Size:     c.Size,
		RedisURL: c.RedisURL,
	}
}

// Open builds the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	return cache.Open(ctx, c.Options())
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/excalimaid/config.toml, falling back
// to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, defaultConfigFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, defaultConfigFile)
}

// DefaultCacheDir returns $XDG_CACHE_HOME/excalimaid, falling back to
// ~/.cache/excalimaid.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
