package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conduit-lang/classview/internal/api"
	"github.com/conduit-lang/classview/internal/logging"
	"github.com/conduit-lang/classview/internal/snapshot"
	"github.com/conduit-lang/classview/internal/web/cache"
	"github.com/conduit-lang/classview/internal/web/ratelimit"
	"github.com/conduit-lang/classview/runtime/query"
)

// EnvPrefix prefixes every environment override, e.g. CLASSVIEW_SERVER_PORT.
const EnvPrefix = "CLASSVIEW"

// Config represents the classview configuration
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Server    ServerConfig    `mapstructure:"server"`
	Query     QueryConfig     `mapstructure:"query"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataConfig locates the catalogue files.
type DataConfig struct {
	Native       string `mapstructure:"native"`
	Blueprint    string `mapstructure:"blueprint"`
	Descriptions string `mapstructure:"descriptions"`
	Watch        bool   `mapstructure:"watch"`
}

// SnapshotConfig controls snapshot lifetime and build strictness.
type SnapshotConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Strict bool          `mapstructure:"strict"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	Pprof           bool          `mapstructure:"pprof"`
}

// QueryConfig bounds filtered queries.
type QueryConfig struct {
	DefaultPageSize int    `mapstructure:"default_page_size"`
	MaxPageSize     int    `mapstructure:"max_page_size"`
	MaxClauses      int    `mapstructure:"max_clauses"`
	MaxDepth        int    `mapstructure:"max_depth"`
	Totals          string `mapstructure:"totals"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig represents the redis cache connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig limits requests per client. The redis backend shares the
// cache.redis connection settings.
type RateLimitConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Backend    string        `mapstructure:"backend"`
	Limit      int           `mapstructure:"limit"`
	Window     time.Duration `mapstructure:"window"`
	TrustProxy bool          `mapstructure:"trust_proxy"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.native", "data/cpp-classes.json")
	v.SetDefault("data.blueprint", "data/blueprint-classes.json")
	v.SetDefault("data.descriptions", "data/cpp-descriptions.json")
	v.SetDefault("data.watch", false)

	v.SetDefault("snapshot.ttl", snapshot.DefaultTTL)
	v.SetDefault("snapshot.strict", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 3500)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.pprof", false)

	v.SetDefault("query.default_page_size", api.DefaultPageSize)
	v.SetDefault("query.max_page_size", api.DefaultMaxPageSize)
	v.SetDefault("query.max_clauses", query.DefaultOptions().MaxClauses)
	v.SetDefault("query.max_depth", query.DefaultOptions().MaxDepth)
	v.SetDefault("query.totals", string(query.TotalsCombined))

	v.SetDefault("cache.backend", cache.BackendMemory)
	v.SetDefault("cache.ttl", api.DefaultCacheTTL)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.backend", ratelimit.BackendMemory)
	v.SetDefault("ratelimit.limit", 600)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ratelimit.trust_proxy", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load loads the configuration from classview.yaml in the working directory,
// if present, then applies CLASSVIEW_* environment overrides.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for classview.yaml; an explicit path must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("classview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Address returns host:port for the HTTP listener.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Paths returns the catalogue file locations for the snapshot loader.
func (d DataConfig) Paths() snapshot.Paths {
	return snapshot.Paths{
		Native:       d.Native,
		Blueprint:    d.Blueprint,
		Descriptions: d.Descriptions,
	}
}

// Options returns the query engine limits.
func (q QueryConfig) Options() query.Options {
	// Totals was validated by Load.
	totals, _ := query.ParseTotalsMode(q.Totals)
	return query.Options{
		MaxClauses: q.MaxClauses,
		MaxDepth:   q.MaxDepth,
		Totals:     totals,
	}
}

// CacheBackend returns the response cache configuration.
func (c *Config) CacheBackend() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		TTL:     c.Cache.TTL,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// Limiter returns the rate limiter configuration.
func (c *Config) Limiter() ratelimit.Config {
	return ratelimit.Config{
		Backend: c.RateLimit.Backend,
		Limit:   c.RateLimit.Limit,
		Window:  c.RateLimit.Window,
		Redis: ratelimit.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// Logging returns the logger configuration.
func (l LogConfig) Logging() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format}
}

// API returns the HTTP handler configuration.
func (c *Config) API() api.Config {
	return api.Config{
		DefaultPageSize: c.Query.DefaultPageSize,
		MaxPageSize:     c.Query.MaxPageSize,
		CacheTTL:        c.Cache.TTL,
		RequestTimeout:  c.Server.RequestTimeout,
		Profiling:       c.Server.Pprof,
		TrustProxy:      c.RateLimit.TrustProxy,
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Data.Native == "" {
		return fmt.Errorf("data.native must be set")
	}

	if cfg.Snapshot.TTL <= 0 {
		return fmt.Errorf("snapshot.ttl must be positive, got: %s", cfg.Snapshot.TTL)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got: %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative, got: %s", cfg.Server.RequestTimeout)
	}

	if cfg.Query.DefaultPageSize <= 0 {
		return fmt.Errorf("query.default_page_size must be positive, got: %d", cfg.Query.DefaultPageSize)
	}
	if cfg.Query.MaxPageSize < cfg.Query.DefaultPageSize {
		return fmt.Errorf("query.max_page_size (%d) must be at least query.default_page_size (%d)",
			cfg.Query.MaxPageSize, cfg.Query.DefaultPageSize)
	}
	if cfg.Query.MaxClauses < 0 {
		return fmt.Errorf("query.max_clauses must not be negative, got: %d", cfg.Query.MaxClauses)
	}
	if cfg.Query.MaxDepth < 0 {
		return fmt.Errorf("query.max_depth must not be negative, got: %d", cfg.Query.MaxDepth)
	}
	if _, err := query.ParseTotalsMode(cfg.Query.Totals); err != nil {
		return fmt.Errorf("query.totals: %w", err)
	}

	if !slices.Contains(cache.Backends, strings.ToLower(cfg.Cache.Backend)) {
		return fmt.Errorf("cache.backend must be one of %s, got: %s", strings.Join(cache.Backends, ", "), cfg.Cache.Backend)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got: %s", cfg.Cache.TTL)
	}

	if cfg.RateLimit.Enabled {
		if !slices.Contains(ratelimit.Backends, strings.ToLower(cfg.RateLimit.Backend)) {
			return fmt.Errorf("ratelimit.backend must be one of %s, got: %s", strings.Join(ratelimit.Backends, ", "), cfg.RateLimit.Backend)
		}
		if cfg.RateLimit.Limit <= 0 {
			return fmt.Errorf("ratelimit.limit must be positive, got: %d", cfg.RateLimit.Limit)
		}
		if cfg.RateLimit.Window <= 0 {
			return fmt.Errorf("ratelimit.window must be positive, got: %s", cfg.RateLimit.Window)
		}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got: %s", cfg.Log.Format)
	}

	return nil
}
