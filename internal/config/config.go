// Package config loads process configuration from the environment.
//
// Sources, later wins: built-in defaults, an optional config.yaml in the
// working directory, .env / .env.local files, real environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=text json"`

	DBDriver    string        `mapstructure:"DB_DRIVER" validate:"required,oneof=sqlite postgres"`
	DatabaseURL string        `mapstructure:"DATABASE_URL" validate:"required"`
	TxTimeout   time.Duration `mapstructure:"TX_TIMEOUT" validate:"gt=0"`

	// JWTSecret empty disables the /auth routes.
	JWTSecret  string        `mapstructure:"JWT_SECRET" validate:"omitempty,min=16"`
	TokenTTL   time.Duration `mapstructure:"TOKEN_TTL" validate:"gt=0"`
	BcryptCost int           `mapstructure:"BCRYPT_COST" validate:"gte=4,lte=31"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	keys = []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DB_DRIVER",
		"DATABASE_URL",
		"TX_TIMEOUT",
		"JWT_SECRET",
		"TOKEN_TTL",
		"BCRYPT_COST",
	}
)

// Load reads, defaults and validates the configuration.
func Load() (*Config, error) {
	// Missing .env files are fine. godotenv never overrides variables that
	// are already set.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "data/habitrack.db")
	v.SetDefault("TX_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "15m")
	v.SetDefault("BCRYPT_COST", 12)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &c, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// AuthEnabled reports whether a JWT secret is configured.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
