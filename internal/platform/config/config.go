// Package config loads service configuration from an optional YAML file and
// RDAP_* environment variables, then validates it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: server.addr is RDAP_SERVER_ADDR.
const EnvPrefix = "RDAP"

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig captures HTTP server level configuration. An empty AdminToken
// disables the policy administration endpoints.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" validate:"required"`
	AdminToken        string        `mapstructure:"admin_token"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	Migrate         bool          `mapstructure:"migrate"`
}

// RedisConfig is optional; an empty URL leaves the cache and policy fan-out off.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size" validate:"gte=0"`
	MinIdleConns int           `mapstructure:"min_idle_conns" validate:"gte=0"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" validate:"gte=0"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
}

// Policy sources.
const (
	PolicySourcePostgres = "postgres"
	PolicySourceFile     = "file"
	PolicySourceNone     = "none"
)

type PolicyConfig struct {
	Source      string `mapstructure:"source" validate:"oneof=postgres file none"`
	File        string `mapstructure:"file" validate:"required_if=Source file"`
	Channel     string `mapstructure:"channel"`
	LoadOnStart bool   `mapstructure:"load_on_start"`
}

// Lookup stores.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// LookupConfig tunes the query path. RateLimit is the number of lookups one
// client address may make per RateLimitWindow; zero turns limiting off.
type LookupConfig struct {
	Store             string        `mapstructure:"store" validate:"oneof=postgres memory"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
	QueryTimeout      time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
	MaxRedactionDepth int           `mapstructure:"max_redaction_depth" validate:"gte=1,lte=256"`
	RateLimit         int           `mapstructure:"rate_limit" validate:"gte=0"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.admin_token", "")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.migrate", false)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("policy.source", PolicySourceNone)
	v.SetDefault("policy.file", "")
	v.SetDefault("policy.channel", "rdap:policy")
	v.SetDefault("policy.load_on_start", true)

	v.SetDefault("lookup.store", StoreMemory)
	v.SetDefault("lookup.cache_ttl", 5*time.Minute)
	v.SetDefault("lookup.query_timeout", 3*time.Second)
	v.SetDefault("lookup.max_redaction_depth", 32)
	v.SetDefault("lookup.rate_limit", 120)
	v.SetDefault("lookup.rate_limit_window", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads path (when non-empty), applies RDAP_* overrides and validates
// the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the dependencies between sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Database.URL == "" {
		if c.Policy.Source == PolicySourcePostgres {
			return errors.New("invalid config: policy.source postgres requires database.url")
		}
		if c.Lookup.Store == StorePostgres {
			return errors.New("invalid config: lookup.store postgres requires database.url")
		}
	}
	return nil
}
