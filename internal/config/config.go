// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env        string `mapstructure:"APP_ENV"`
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	RedisURL   string `mapstructure:"REDIS_URL"`

	// MediaRoot is the single storage root for uploaded media. Environment
	// differences live here, in configuration, never in code branches.
	MediaRoot    string `mapstructure:"MEDIA_ROOT"`
	MediaBaseURL string `mapstructure:"MEDIA_BASE_URL"`
	// DefaultImage must exist under MediaRoot at deployment time.
	DefaultImage string `mapstructure:"DEFAULT_IMAGE"`
	// StalePrefixes lists path prefixes once stored on post image references
	// and now implicit, comma-separated (e.g. "uploads/,static/uploads/").
	StalePrefixes string `mapstructure:"STALE_PREFIXES"`

	FeatureFlags string `mapstructure:"FEATURE_FLAGS"`
	MetricsAddr  string `mapstructure:"METRICS_ADDR"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config.
	// The config file may not exist yet; env vars and defaults still apply.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Development defaults.
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "hikaye")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "hikaye.db")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("MEDIA_ROOT", "/tmp/hikaye/uploads")
	viper.SetDefault("MEDIA_BASE_URL", "/uploads")
	viper.SetDefault("DEFAULT_IMAGE", "default.jpg")
	viper.SetDefault("STALE_PREFIXES", "uploads/,static/uploads/,/static/uploads/")
	viper.SetDefault("FEATURE_FLAGS", "category_sweep=on,media_sweep=on,media_repair=on")
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and coherent.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (expected postgres or sqlite)", c.DBDriver)
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required when DB_DRIVER is sqlite")
	}
	if c.MediaRoot == "" {
		return errors.New("MEDIA_ROOT is required")
	}
	if c.DefaultImage == "" {
		return errors.New("DEFAULT_IMAGE is required")
	}
	if strings.ContainsAny(c.DefaultImage, "/\\") {
		return errors.New("DEFAULT_IMAGE must be a bare filename inside MEDIA_ROOT")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.DBDriver == "postgres" && (c.DBPassword == "password" || c.DBPassword == "") {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBDriver == "postgres" && (c.DBSSLMode == "disable" || c.DBSSLMode == "") {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
	}

	return nil
}

// StalePrefixList returns the configured stale prefixes as a cleaned slice.
func (c *Config) StalePrefixList() []string {
	var out []string
	for _, p := range strings.Split(c.StalePrefixes, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
