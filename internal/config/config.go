// Package config loads soulhash settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/soulhash/config.toml, falling back
// to ~/.config/soulhash/config.toml. A missing default file is not an error;
// built-in defaults apply. Environment variables override file values:
//
//	SOULHASH_MODE        default hash mode (text, semantic, dual, auto)
//	SOULHASH_CACHE       cache backend (file, redis, mongo, none)
//	SOULHASH_REDIS_ADDR  Redis address, implies the redis backend
//	SOULHASH_MONGO_URI   MongoDB URI, implies the mongo backend
//
// Example file:
//
//	mode = "dual"
//	workers = 8
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache.internal:6379"
//	prefix = "ci:"
//	ttl = "168h"
//
//	[server]
//	addr = "0.0.0.0:7457"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/hasher"
)

const appName = "soulhash"

// ModeAuto selects per-file mode detection.
const ModeAuto = "auto"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Mode    string       `toml:"mode"`
	Workers int          `toml:"workers"`
	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`
}

// ServerConfig configures "soulhash serve".
type ServerConfig struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"` // bytes; 0 uses the server default
}

// CacheConfig selects and configures the fingerprint cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	Prefix        string        `toml:"prefix"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Mode:    hasher.Textual.String(),
		Workers: 0,
		Cache: CacheConfig{
			Backend:         BackendFile,
			TTL:             7 * 24 * time.Hour,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "soulhash",
			MongoCollection: "fingerprints",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7457",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/soulhash/).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path loads the default location, which may
// be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "resolve config path")
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
	case err != nil:
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("SOULHASH_MODE")); v != "" {
		c.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("SOULHASH_CACHE")); v != "" {
		c.Cache.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("SOULHASH_REDIS_ADDR")); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = BackendRedis
	}
	if v := strings.TrimSpace(os.Getenv("SOULHASH_MONGO_URI")); v != "" {
		c.Cache.MongoURI = v
		c.Cache.Backend = BackendMongo
	}
}

// Validate checks every field and normalizes names to lowercase.
func (c *Config) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode != ModeAuto {
		if _, err := hasher.ParseMode(c.Mode); err != nil {
			return err
		}
	}

	if c.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "workers must be >= 0, got %d", c.Workers)
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if err := errs.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return err
		}
		if c.Cache.RedisDB < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "redis_db must be >= 0, got %d", c.Cache.RedisDB)
		}
	case BackendMongo:
		if !strings.HasPrefix(c.Cache.MongoURI, "mongodb://") && !strings.HasPrefix(c.Cache.MongoURI, "mongodb+srv://") {
			return errs.New(errs.ErrCodeInvalidConfig, "mongo_uri must start with mongodb:// or mongodb+srv://")
		}
		if c.Cache.MongoDatabase == "" || c.Cache.MongoCollection == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "mongo_database and mongo_collection are required")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis, mongo or none)", c.Cache.Backend)
	}

	if err := errs.ValidateAddr(c.Server.Addr); err != nil {
		return err
	}
	if c.Server.MaxBody < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server max_body must not be negative")
	}

	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return errs.ValidateKeyPrefix(c.Cache.Prefix)
}

// CacheDir returns the configured cache directory or the XDG default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
