// Package config loads runtime settings from the environment with viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the application reads at startup.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	CookieSecure   bool
	RabbitMQURL    string
}

// Development reports whether the app runs in development mode.
func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:blog.db?_foreign_keys=on")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("RABBITMQ_URL", "")
}

// Load reads the configuration from v. Environment variables override defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}

	if cfg.JWTSecret == "" {
		if !cfg.Development() {
			return Config{}, fmt.Errorf("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = "development-secret"
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES"))
	}
	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}
