package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration. Values come from an optional
// YAML file, then environment variables override, then validation runs.
type Config struct {
	DatabaseURL string `yaml:"database_url" validate:"required"`

	APIURL      string `yaml:"api_url" validate:"required,url"`
	APIKey      string `yaml:"api_key"`
	TargetState string `yaml:"target_state" validate:"required"`
	FinYear     string `yaml:"fin_year" validate:"required"`
	FetchLimit  int    `yaml:"fetch_limit" validate:"min=1"`

	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" validate:"min=1"`
	FetchIntervalHours  int `yaml:"fetch_interval_hours" validate:"min=1"`
	BatchSize           int `yaml:"batch_size" validate:"min=1"`

	HTTPHost       string `yaml:"http_host"`
	HTTPPort       int    `yaml:"http_port" validate:"min=1,max=65535"`
	MaxConnections int    `yaml:"max_connections" validate:"min=1"`
}

// Default returns the baseline configuration before file/env overrides.
func Default() *Config {
	return &Config{
		TargetState:         "MAHARASHTRA",
		FinYear:             "2024-2025",
		FetchLimit:          1000,
		FetchTimeoutSeconds: 120,
		FetchIntervalHours:  24,
		BatchSize:           500,
		HTTPHost:            "0.0.0.0",
		HTTPPort:            8000,
		MaxConnections:      10,
	}
}

// Load builds the configuration: defaults, optional YAML file (path may be
// empty or missing), environment overrides, then struct validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DatabaseURL = GetEnv("DATABASE_URL", c.DatabaseURL)
	c.APIURL = GetEnv("MGNREGA_API_URL", c.APIURL)
	c.APIKey = GetEnv("MGNREGA_API_KEY", c.APIKey)
	c.TargetState = GetEnv("TARGET_STATE", c.TargetState)
	c.FinYear = GetEnv("FIN_YEAR", c.FinYear)
	c.FetchLimit = GetEnvInt("FETCH_LIMIT", c.FetchLimit)
	c.FetchTimeoutSeconds = GetEnvInt("FETCH_TIMEOUT_SECONDS", c.FetchTimeoutSeconds)
	c.FetchIntervalHours = GetEnvInt("FETCH_INTERVAL_HOURS", c.FetchIntervalHours)
	c.BatchSize = GetEnvInt("BATCH_SIZE", c.BatchSize)
	c.HTTPHost = GetEnv("HTTP_HOST", c.HTTPHost)
	c.HTTPPort = GetEnvInt("HTTP_PORT", c.HTTPPort)
	c.MaxConnections = GetEnvInt("DB_MAX_CONNECTIONS", c.MaxConnections)
}

// FetchTimeout returns the upstream request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// FetchInterval returns the scheduler interval between pipeline runs.
func (c *Config) FetchInterval() time.Duration {
	return time.Duration(c.FetchIntervalHours) * time.Hour
}

// HTTPAddr returns the listen address for the read API.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
