// Package config loads freehand's optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/freehand/config.toml (falling back to
// ~/.config/freehand/config.toml) unless a path is given explicitly. A
// missing file is not an error: [Default] values are used instead.
//
//	max_offset   = 1.5
//	double_line  = true
//	seed         = 42
//	stroke       = "#222222"
//	stroke_width = 1.5
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//	ttl        = "24h"
//
//	[server]
//	addr = ":8080"
//
// Environment variables FREEHAND_CACHE_BACKEND, FREEHAND_REDIS_ADDR and
// FREEHAND_MONGO_URI override the corresponding file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/freehand"
)

// AppName is used for the config, cache and data directory names.
const AppName = "freehand"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variable names.
const (
	EnvCacheBackend = "FREEHAND_CACHE_BACKEND"
	EnvRedisAddr    = "FREEHAND_REDIS_ADDR"
	EnvMongoURI     = "FREEHAND_MONGO_URI"
)

// Config is the decoded configuration file. Seed is used for scenes that
// set none; zero means the built-in seed.
type Config struct {
	MaxOffset   float64 `toml:"max_offset"`
	DoubleLine  bool    `toml:"double_line"`
	Seed        uint64  `toml:"seed"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`

	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Cache configures the artifact cache backend.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server configures `freehand serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration decoded from a TOML string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxOffset:   freehand.DefaultMaxOffset,
		DoubleLine:  freehand.DefaultDoubleLine,
		Stroke:      "#000000",
		StrokeWidth: 1,
		Cache: Cache{
			Backend:         BackendFile,
			TTL:             Duration{24 * time.Hour},
			RedisAddr:       "localhost:6379",
			MongoDatabase:   AppName,
			MongoCollection: "artifacts",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.applyEnv()
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		// fall through with defaults
	case os.IsNotExist(err):
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	case err != nil:
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config %s", path)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Cache.MongoURI = v
	}
}

// Validate checks value ranges and the cache backend name.
func (c Config) Validate() error {
	if err := errors.ValidateNonNegative("max_offset", c.MaxOffset); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("stroke_width", c.StrokeWidth); err != nil {
		return err
	}
	if err := errors.ValidateColor(c.Stroke); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend mongo requires mongo_uri")
	}
	return nil
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the directory used by the file cache: the configured
// dir, or the XDG cache location (~/.cache/freehand/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
