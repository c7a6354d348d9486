package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultsWithoutFile(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Pricing.DaysPerYear != 365 {
		t.Errorf("Expected 365 days per year, got %v", cfg.Pricing.DaysPerYear)
	}
	if cfg.Indicator.DefaultPeriod != 10 {
		t.Errorf("Expected default EMA period 10, got %d", cfg.Indicator.DefaultPeriod)
	}
	if cfg.ReadTimeout() != 15*time.Second {
		t.Errorf("Expected 15s read timeout, got %v", cfg.ReadTimeout())
	}
}

func TestYAMLOverlay(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  write_timeout_seconds: 30
logging:
  log_level: debug
  log_file: ""
pricing:
  days_per_year: 252
  default_risk_free: 0.045
indicator:
  default_period: 20
  max_series_length: 500
  max_streams: 0
`)

	cfg := LoadFrom(path)

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port from YAML, got %s", cfg.Server.Port)
	}
	if cfg.WriteTimeout() != 30*time.Second {
		t.Errorf("Expected 30s write timeout, got %v", cfg.WriteTimeout())
	}
	if cfg.Server.ReadTimeoutSeconds != 15 {
		t.Errorf("Unset YAML field should keep default, got %d", cfg.Server.ReadTimeoutSeconds)
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %s", cfg.Logging.LogLevel)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("Explicit empty log file should mean stderr only, got %q", cfg.Logging.LogFile)
	}
	if cfg.Pricing.DaysPerYear != 252 || cfg.Pricing.DefaultRiskFree != 0.045 {
		t.Errorf("Unexpected pricing config %+v", cfg.Pricing)
	}
	if cfg.Indicator.DefaultPeriod != 20 || cfg.Indicator.MaxSeriesLength != 500 || cfg.Indicator.MaxStreams != 0 {
		t.Errorf("Unexpected indicator config %+v", cfg.Indicator)
	}
}

func TestPartialYAMLKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg := LoadFrom(path)

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port from YAML, got %s", cfg.Server.Port)
	}
	if cfg.Indicator.MaxSeriesLength != 100000 || cfg.Indicator.MaxStreams != 1000 {
		t.Errorf("Missing indicator section should keep default limits, got %+v", cfg.Indicator)
	}
	if cfg.Logging.LogFile != "finengine.log" {
		t.Errorf("Missing log_file should keep default, got %q", cfg.Logging.LogFile)
	}
	if cfg.Pricing.DaysPerYear != 365 {
		t.Errorf("Missing pricing section should keep 365, got %v", cfg.Pricing.DaysPerYear)
	}
}

func TestYAMLUnusableValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
server:
  read_timeout_seconds: -1
pricing:
  days_per_year: 0
indicator:
  default_period: 0
  max_series_length: -5
  max_streams: 0
`)

	cfg := LoadFrom(path)

	if cfg.Server.ReadTimeoutSeconds != 15 {
		t.Errorf("Negative timeout should keep default, got %d", cfg.Server.ReadTimeoutSeconds)
	}
	if cfg.Pricing.DaysPerYear != 365 || cfg.Indicator.DefaultPeriod != 10 {
		t.Errorf("Zero day count or period should keep defaults, got %+v %+v", cfg.Pricing, cfg.Indicator)
	}
	if cfg.Indicator.MaxSeriesLength != 100000 {
		t.Errorf("Negative limit should keep default, got %d", cfg.Indicator.MaxSeriesLength)
	}
	if cfg.Indicator.MaxStreams != 0 {
		t.Errorf("Explicit 0 should mean unlimited, got %d", cfg.Indicator.MaxStreams)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\nlogging:\n  log_level: warn\n")

	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("EMA_MAX_STREAMS", "5")
	t.Setenv("REQUIRE_RISK_FREE", "true")

	cfg := LoadFrom(path)

	if cfg.Server.Port != "7070" {
		t.Errorf("Expected env port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Logging.LogLevel != "verbose" {
		t.Errorf("Expected env log level, got %s", cfg.Logging.LogLevel)
	}
	if cfg.Indicator.MaxStreams != 5 {
		t.Errorf("Expected 5 max streams, got %d", cfg.Indicator.MaxStreams)
	}
	if !cfg.Pricing.RequireRiskFree {
		t.Errorf("Expected REQUIRE_RISK_FREE=true to be honoured")
	}
}

func TestInvalidEnvKeepsValue(t *testing.T) {
	t.Setenv("EMA_DEFAULT_PERIOD", "ten")
	t.Setenv("DAYS_PER_YEAR", "not-a-number")

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Indicator.DefaultPeriod != 10 {
		t.Errorf("Expected unparsable env to keep default 10, got %d", cfg.Indicator.DefaultPeriod)
	}
	if cfg.Pricing.DaysPerYear != 365 {
		t.Errorf("Expected unparsable env to keep 365, got %v", cfg.Pricing.DaysPerYear)
	}
}

func TestMalformedYAMLIgnored(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	cfg := LoadFrom(path)
	if cfg.Server.Port != "8080" {
		t.Errorf("Malformed YAML should fall back to defaults, got port %s", cfg.Server.Port)
	}
}

func TestLoadUsesConfigFileEnv(t *testing.T) {
	path := writeConfig(t, "indicator:\n  default_period: 3\n")
	t.Setenv("CONFIG_FILE", path)

	if cfg := Load(); cfg.Indicator.DefaultPeriod != 3 {
		t.Errorf("Expected CONFIG_FILE to be read, got period %d", cfg.Indicator.DefaultPeriod)
	}
}
