// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dvloznov/budgetwise/internal/budget"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvPort          = "BUDGETWISE_PORT"
	EnvLogLevel      = "BUDGETWISE_LOG_LEVEL"
	EnvLogFormat     = "BUDGETWISE_LOG_FORMAT"
	EnvCurrency      = "BUDGETWISE_CURRENCY"
	EnvTimezone      = "BUDGETWISE_TIMEZONE"
	EnvDefaultPeriod = "BUDGETWISE_PERIOD"
	EnvGCPProject    = "BUDGETWISE_GCP_PROJECT"
	EnvBQDataset     = "BUDGETWISE_BQ_DATASET"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultTimezone  = "UTC"
	DefaultDataset   = "budgetwise"
)

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	Currency      string
	Timezone      *time.Location
	DefaultPeriod period.Period

	// GCPProject enables the BigQuery source when set.
	GCPProject      string
	BigQueryDataset string
}

// LoadDotEnv loads the given .env files (".env" when none are named) into
// the process environment. Missing files are not an error; variables that
// are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("LoadDotEnv: %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a Config from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv(EnvPort, DefaultPort),
		LogLevel:        getenv(EnvLogLevel, DefaultLogLevel),
		LogFormat:       getenv(EnvLogFormat, DefaultLogFormat),
		Currency:        getenv(EnvCurrency, budget.DefaultCurrency),
		GCPProject:      os.Getenv(EnvGCPProject),
		BigQueryDataset: getenv(EnvBQDataset, DefaultDataset),
	}

	loc, err := time.LoadLocation(getenv(EnvTimezone, DefaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", EnvTimezone, err)
	}
	cfg.Timezone = loc

	p, err := period.Parse(getenv(EnvDefaultPeriod, string(period.Monthly)))
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", EnvDefaultPeriod, err)
	}
	cfg.DefaultPeriod = p

	return cfg, nil
}

// BigQueryEnabled reports whether a GCP project is configured.
func (c *Config) BigQueryEnabled() bool {
	return c.GCPProject != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
