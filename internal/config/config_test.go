package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dvloznov/budgetwise/internal/budget"
	"github.com/dvloznov/budgetwise/internal/period"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPort, EnvLogLevel, EnvLogFormat, EnvCurrency, EnvTimezone, EnvDefaultPeriod, EnvGCPProject, EnvBQDataset} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Currency != budget.DefaultCurrency {
		t.Errorf("Currency = %q, want %q", cfg.Currency, budget.DefaultCurrency)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Timezone = %s, want UTC", cfg.Timezone)
	}
	if cfg.DefaultPeriod != period.Monthly {
		t.Errorf("DefaultPeriod = %q, want monthly", cfg.DefaultPeriod)
	}
	if cfg.BigQueryDataset != DefaultDataset {
		t.Errorf("BigQueryDataset = %q, want %q", cfg.BigQueryDataset, DefaultDataset)
	}
	if cfg.BigQueryEnabled() {
		t.Error("BigQueryEnabled() = true without a project")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvCurrency, "$")
	t.Setenv(EnvTimezone, "Asia/Jerusalem")
	t.Setenv(EnvDefaultPeriod, "weekly")
	t.Setenv(EnvGCPProject, "my-project")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Currency != "$" {
		t.Errorf("Currency = %q, want $", cfg.Currency)
	}
	if cfg.Timezone.String() != "Asia/Jerusalem" {
		t.Errorf("Timezone = %s, want Asia/Jerusalem", cfg.Timezone)
	}
	if cfg.DefaultPeriod != period.Weekly {
		t.Errorf("DefaultPeriod = %q, want weekly", cfg.DefaultPeriod)
	}
	if !cfg.BigQueryEnabled() {
		t.Error("BigQueryEnabled() = false with a project set")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timezone", EnvTimezone, "Mars/Olympus"},
		{"bad period", EnvDefaultPeriod, "fortnightly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.val)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BUDGETWISE_CURRENCY=€\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// t.Setenv("", ...) above leaves the key set to empty, which godotenv
	// treats as already present; unset it so the file can populate it.
	os.Unsetenv(EnvCurrency)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	defer os.Unsetenv(EnvCurrency)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Currency != "€" {
		t.Errorf("Currency = %q, want €", cfg.Currency)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("LoadDotEnv() on a missing file error = %v", err)
	}
}
