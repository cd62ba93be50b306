// Package cli implements the soulhash command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Hash
// results go to stdout, one per line, so output can be piped; logs and
// progress go to stderr.
//
// # Commands
//
//   - hash: fingerprint files (or stdin) as text, semantic, dual or auto
//   - dual: print both identities of files, optionally as JSON
//   - array: hash a comma-joined list of strings
//   - souls: group code files that share a semantic hash
//   - cache: inspect or clear the fingerprint cache
//   - serve: expose hashing and a soul registry over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet
// (-q) to show errors only.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/soulhash/internal/config"
	"github.com/matzehuels/soulhash/pkg/cache"
	"github.com/matzehuels/soulhash/pkg/fingerprint"
	"github.com/matzehuels/soulhash/pkg/hasher"
	"github.com/matzehuels/soulhash/pkg/soul"
)

// appName is the application name used for directories and display.
const appName = "soulhash"

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

	cfg        *config.Config
	configPath string
	noCache    bool
	verbose    bool
	quiet      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// config returns the loaded configuration, or defaults before loading.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Defaults()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a fingerprint runner for CLI use. The returned cleanup
// closes the cache backend.
func (c *CLI) newRunner(ctx context.Context, reg *soul.Registry) (*fingerprint.Runner, func()) {
	cfg := c.config()
	store := c.newCache(ctx)

	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Prefix)
	}

	r := fingerprint.NewRunner(store, keyer, reg, c.Logger)
	r.Workers = cfg.Workers
	return r, func() { _ = store.Close() }
}

// newCache opens the configured backend. Failures degrade to no caching:
// fingerprints are always computable without a cache.
func (c *CLI) newCache(ctx context.Context) cache.Cache {
	cfg := c.config()
	if c.noCache {
		return cache.NewNullCache()
	}

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return rc
	case config.BackendMongo:
		mc, err := c.newMongoCache(ctx)
		if err != nil {
			c.Logger.Warn("mongo cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return mc
	case config.BackendFile:
		dir, err := cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("cache directory unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache directory unavailable, continuing without cache", "dir", dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	default:
		return cache.NewNullCache()
	}
}

func (c *CLI) newMongoCache(ctx context.Context) (*cache.MongoCache, error) {
	cfg := c.config()
	return cache.NewMongoCache(ctx, cache.MongoConfig{
		URI:        cfg.Cache.MongoURI,
		Database:   cfg.Cache.MongoDatabase,
		Collection: cfg.Cache.MongoCollection,
	})
}

// =============================================================================
// Options Helpers
// =============================================================================

// hashOptions resolves a --mode flag value, falling back to the configured
// default when the flag is empty.
func (c *CLI) hashOptions(mode string) (fingerprint.Options, error) {
	cfg := c.config()
	if mode == "" {
		mode = cfg.Mode
	}

	opts := fingerprint.Options{TTL: cfg.Cache.TTL}
	if strings.EqualFold(strings.TrimSpace(mode), config.ModeAuto) {
		opts.Auto = true
		return opts, nil
	}

	m, err := hasher.ParseMode(mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = m
	return opts, nil
}
