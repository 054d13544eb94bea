// Package config loads superdense settings from defaults, an optional YAML
// file and SUPERDENSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/superdense/internal/logging"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SUPERDENSE_SERVER_ADDR.
const EnvPrefix = "SUPERDENSE"

// Config is the root configuration.
type Config struct {
	Protocol ProtocolConfig `mapstructure:"protocol"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ProtocolConfig controls the simulation itself.
type ProtocolConfig struct {
	// Period is the delay between phases.
	Period time.Duration `mapstructure:"period"`
	// Seed makes gate-cutting faults reproducible. Zero seeds from the OS.
	Seed uint64 `mapstructure:"seed"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	CORS bool   `mapstructure:"cors"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RedisConfig enables mirroring session events to Redis Pub/Sub.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	StateTTL time.Duration `mapstructure:"state_ttl"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig controls idle session pruning.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Protocol: ProtocolConfig{
			Period: domain.DefaultTickPeriod,
		},
		Server: ServerConfig{
			Addr: ":8080",
			CORS: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "superdense:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			PruneInterval: time.Minute,
		},
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("protocol.period", defaults.Protocol.Period)
	v.SetDefault("protocol.seed", defaults.Protocol.Seed)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.cors", defaults.Server.CORS)

	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)

	v.SetDefault("redis.enabled", defaults.Redis.Enabled)
	v.SetDefault("redis.addr", defaults.Redis.Addr)
	v.SetDefault("redis.password", defaults.Redis.Password)
	v.SetDefault("redis.db", defaults.Redis.DB)
	v.SetDefault("redis.prefix", defaults.Redis.Prefix)
	v.SetDefault("redis.state_ttl", defaults.Redis.StateTTL)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("session.ttl", defaults.Session.TTL)
	v.SetDefault("session.prune_interval", defaults.Session.PruneInterval)
}

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes it. An empty path searches
// ./superdense.yaml and the user config directory; a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("superdense")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := ConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "superdense")
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Protocol.Period <= 0 {
		errs = append(errs, ValidationError{Field: "protocol.period", Message: "must be positive"})
	}
	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{Field: "server.addr", Message: "must not be empty"})
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, ValidationError{Field: "redis.addr", Message: "required when redis is enabled"})
	}
	if c.Redis.DB < 0 {
		errs = append(errs, ValidationError{Field: "redis.db", Message: "must not be negative"})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, ValidationError{Field: "logging.level", Message: err.Error()})
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		errs = append(errs, ValidationError{Field: "logging.format", Message: err.Error()})
	}
	if c.Session.TTL < 0 {
		errs = append(errs, ValidationError{Field: "session.ttl", Message: "must not be negative"})
	}
	return errs
}
