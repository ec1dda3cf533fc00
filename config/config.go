/*
Package config loads server and CLI settings.

SOURCES (later wins):
  1. Built-in defaults (Default)
  2. TOML file, if present (missing file is not an error)
  3. .env file in the working directory, if present
  4. Environment variables:
       CASHFLOW_PORT          server port
       CASHFLOW_LOG_LEVEL     debug, info, warn, error
       CASHFLOW_LOG_FORMAT    json or text
       CASHFLOW_PRESETS_FILE  extra presets (YAML)

EXAMPLE config.toml:
  [server]
  port = 8080
  allowed_origins = ["http://localhost:5173"]

  [log]
  level = "debug"

  [forecast]
  default_months = 12
  max_months = 120
  default_term_days = 30
  default_opening_balance = 1000
  presets_file = "./presets.yaml"
  presets_reload_interval = "30s"
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ErrTooManyMonths is returned when a requested month count exceeds
// forecast.max_months.
var ErrTooManyMonths = errors.New("month count exceeds limit")

// Config holds all settings.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Forecast ForecastConfig `toml:"forecast"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
	IdleTimeout    Duration `toml:"idle_timeout"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json or text
}

// ForecastConfig holds the defaults a fresh forecast starts from.
type ForecastConfig struct {
	DefaultMonths         int     `toml:"default_months"`
	MaxMonths             int     `toml:"max_months"`
	DefaultTermDays       int     `toml:"default_term_days"`
	DefaultOpeningBalance float64 `toml:"default_opening_balance"`
	PresetsFile           string  `toml:"presets_file,omitempty"`

	// PresetsReloadInterval re-reads PresetsFile while serving. Zero disables.
	PresetsReloadInterval Duration `toml:"presets_reload_interval"`
}

// CheckMonths rejects month counts above MaxMonths.
func (f ForecastConfig) CheckMonths(n int) error {
	if n > f.MaxMonths {
		return fmt.Errorf("%w: %d > %d", ErrTooManyMonths, n, f.MaxMonths)
	}
	return nil
}

// Duration decodes TOML strings like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    Duration{15 * time.Second},
			WriteTimeout:   Duration{15 * time.Second},
			IdleTimeout:    Duration{60 * time.Second},
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Forecast: ForecastConfig{
			DefaultMonths:         12,
			MaxMonths:             120,
			DefaultTermDays:       30,
			DefaultOpeningBalance: 1000,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path
// (skipped when path is empty or missing), .env and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("CASHFLOW_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CASHFLOW_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	cfg.Log.Level = getEnv("CASHFLOW_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("CASHFLOW_LOG_FORMAT", cfg.Log.Format)
	cfg.Forecast.PresetsFile = getEnv("CASHFLOW_PRESETS_FILE", cfg.Forecast.PresetsFile)
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if c.Forecast.PresetsReloadInterval.Duration < 0 {
		return fmt.Errorf("forecast.presets_reload_interval must not be negative")
	}
	if c.Forecast.DefaultMonths <= 0 {
		return fmt.Errorf("forecast.default_months must be positive, got %d", c.Forecast.DefaultMonths)
	}
	if c.Forecast.MaxMonths < c.Forecast.DefaultMonths {
		return fmt.Errorf("forecast.max_months (%d) must be at least default_months (%d)",
			c.Forecast.MaxMonths, c.Forecast.DefaultMonths)
	}
	return nil
}

// NewLogger builds the logrus logger described by the log section.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
