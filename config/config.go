package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultPort           = "5000"
	defaultDriver         = DriverPostgres
	defaultDatabaseURL    = "user=postgres password=password dbname=shiftmate host=localhost port=5432 sslmode=disable"
	defaultSQLitePath     = "shiftmate.db"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 60 * time.Second
)

type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	SQLitePath     string
	LogLevel       string
	RequestTimeout time.Duration
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults, and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:        getOr(getenv, "PORT", defaultPort),
		DBDriver:    strings.ToLower(getOr(getenv, "DB_DRIVER", defaultDriver)),
		DatabaseURL: getenv("DB_CONNECTION_STRING"),
		SQLitePath:  getOr(getenv, "SQLITE_PATH", defaultSQLitePath),
		LogLevel:    strings.ToLower(getOr(getenv, "LOG_LEVEL", defaultLogLevel)),
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}

	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
		slog.Warn("DB_CONNECTION_STRING not set, using default local connection string")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DB_CONNECTION_STRING is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: %s, %s", DriverPostgres, DriverSQLite)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	return level, nil
}

func getOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
