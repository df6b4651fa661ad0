// Package config loads the CLI's settings from QUORA_-prefixed environment
// variables. A .env file in the working directory is loaded first.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/marshallshelly/pebble-quora/pkg/runtime"
)

// EnvPrefix prefixes every recognized variable. Nested keys use ".", for
// example QUORA_DATABASE.URL or QUORA_LOG.LEVEL.
const EnvPrefix = "QUORA_"

// Config is the root configuration object.
type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
}

// DatabaseConfig locates the store. Either URL or Host must be set.
type DatabaseConfig struct {
	URL      string `koanf:"url" validate:"required_without=Host"`
	Host     string `koanf:"host" validate:"required_without=URL"`
	Port     int    `koanf:"port" validate:"omitempty,min=1,max=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level    string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format   string `koanf:"format" validate:"oneof=console json"`
	TraceSQL bool   `koanf:"trace_sql"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	d := runtime.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{
			Host:    d.Host,
			Port:    d.Port,
			User:    d.User,
			Name:    d.Database,
			SSLMode: d.SSLMode,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the environment over Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Runtime converts the discrete database settings for runtime.Connect.
func (d DatabaseConfig) Runtime() *runtime.Config {
	return &runtime.Config{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Name,
		User:     d.User,
		Password: d.Password,
		SSLMode:  d.SSLMode,
	}
}
