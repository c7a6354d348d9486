package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// PricingConfig represents option pricing defaults
type PricingConfig struct {
	DaysPerYear     float64 `yaml:"days_per_year"`     // day count for expiration dates
	DefaultRiskFree float64 `yaml:"default_risk_free"` // used when a request omits the rate
	RequireRiskFree bool    `yaml:"require_risk_free"` // reject requests without a rate
}

// IndicatorConfig represents EMA service limits
type IndicatorConfig struct {
	DefaultPeriod   int `yaml:"default_period"`
	MaxSeriesLength int `yaml:"max_series_length"` // 0 = unlimited
	MaxStreams      int `yaml:"max_streams"`       // 0 = unlimited
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Indicator IndicatorConfig `yaml:"indicator"`
}

// ReadTimeout returns the server read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                "8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			LogLevel: "info",
			LogFile:  "finengine.log",
		},
		Pricing: PricingConfig{
			DaysPerYear:     365,
			DefaultRiskFree: 0,
		},
		Indicator: IndicatorConfig{
			DefaultPeriod:   10,
			MaxSeriesLength: 100000,
			MaxStreams:      1000,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (default config.yaml) if it exists, then environment variables.
func Load() *Config {
	return LoadFrom(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadFrom is Load with an explicit YAML path. Keys missing from the file
// keep their defaults; an explicit empty log_file logs to stderr only.
func LoadFrom(path string) *Config {
	cfg := Default()

	// Try to load from YAML file
	if yamlCfg := loadYAMLConfig(path, cfg); yamlCfg != nil {
		cfg = yamlCfg
	}

	// Environment variables win over the file
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeoutSeconds = getEnvInt("READ_TIMEOUT_SECONDS", cfg.Server.ReadTimeoutSeconds)
	cfg.Server.WriteTimeoutSeconds = getEnvInt("WRITE_TIMEOUT_SECONDS", cfg.Server.WriteTimeoutSeconds)
	cfg.Logging.LogLevel = getEnv("LOG_LEVEL", cfg.Logging.LogLevel)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)
	cfg.Pricing.DaysPerYear = getEnvFloat("DAYS_PER_YEAR", cfg.Pricing.DaysPerYear)
	cfg.Pricing.DefaultRiskFree = getEnvFloat("DEFAULT_RISK_FREE", cfg.Pricing.DefaultRiskFree)
	cfg.Pricing.RequireRiskFree = getEnvBool("REQUIRE_RISK_FREE", cfg.Pricing.RequireRiskFree)
	cfg.Indicator.DefaultPeriod = getEnvInt("EMA_DEFAULT_PERIOD", cfg.Indicator.DefaultPeriod)
	cfg.Indicator.MaxSeriesLength = getEnvInt("EMA_MAX_SERIES_LENGTH", cfg.Indicator.MaxSeriesLength)
	cfg.Indicator.MaxStreams = getEnvInt("EMA_MAX_STREAMS", cfg.Indicator.MaxStreams)

	return cfg
}

// loadYAMLConfig decodes path over a copy of base, then puts back any
// value the file set to something unusable.
func loadYAMLConfig(path string, base *Config) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	yamlCfg := *base
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	if yamlCfg.Server.Port == "" {
		yamlCfg.Server.Port = base.Server.Port
	}
	if yamlCfg.Server.ReadTimeoutSeconds <= 0 {
		yamlCfg.Server.ReadTimeoutSeconds = base.Server.ReadTimeoutSeconds
	}
	if yamlCfg.Server.WriteTimeoutSeconds <= 0 {
		yamlCfg.Server.WriteTimeoutSeconds = base.Server.WriteTimeoutSeconds
	}
	if yamlCfg.Logging.LogLevel == "" {
		yamlCfg.Logging.LogLevel = base.Logging.LogLevel
	}
	if yamlCfg.Pricing.DaysPerYear <= 0 {
		yamlCfg.Pricing.DaysPerYear = base.Pricing.DaysPerYear
	}
	if yamlCfg.Indicator.DefaultPeriod <= 0 {
		yamlCfg.Indicator.DefaultPeriod = base.Indicator.DefaultPeriod
	}
	// Limits below zero mean nothing; 0 is an explicit "unlimited"
	if yamlCfg.Indicator.MaxSeriesLength < 0 {
		yamlCfg.Indicator.MaxSeriesLength = base.Indicator.MaxSeriesLength
	}
	if yamlCfg.Indicator.MaxStreams < 0 {
		yamlCfg.Indicator.MaxStreams = base.Indicator.MaxStreams
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
