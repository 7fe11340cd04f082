package config

import (
	"fmt"
	"strings"

	"github.com/anonto42/foodgram/backend/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	Env  string `koanf:"env"`
	// PublicHost prefixes short links, e.g. https://foodgram.example.com
	PublicHost string `koanf:"public_host"`
}

type DatabaseConfig struct {
	// URL is a postgres:// DSN or sqlite://<path>
	URL string `koanf:"url"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:       "8080",
			Env:        "development",
			PublicHost: "http://localhost:8080",
		},
		Database: DatabaseConfig{URL: "sqlite://foodgram.db"},
		Logging:  LoggingConfig{Level: "info", Format: "json"},
	}
}

var envMappings = map[string]string{
	"port":         "server.port",
	"env":          "server.env",
	"public_host":  "server.public_host",
	"database_url": "database.url",
	"jwt_secret":   "auth.jwt_secret",
	"log_level":    "logging.level",
	"log_format":   "logging.format",
}

// envTransform maps environment variable names onto config paths. Unknown
// variables return "" and are skipped.
func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load reads .env when present, then layers defaults and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using process environment")
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
