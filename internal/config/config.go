// Package config loads answercheck settings from a YAML file, a .env file
// and ANSWERCHECK_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ANSWERCHECK_"

// HTTPConfig configures the HTTP service
type HTTPConfig struct {
	// Addr is the listen address
	Addr string `yaml:"addr"`

	// MaxBodyBytes bounds request bodies
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Config represents answercheck configuration options
type Config struct {
	// Tolerance is the relative tolerance of numeric comparisons
	Tolerance float64 `yaml:"tolerance"`

	// Timeout bounds one validation (0 = unbounded)
	Timeout time.Duration `yaml:"timeout"`

	// Workers is the number of concurrent validations in a batch
	Workers int `yaml:"workers"`

	// LogLevel sets the logging verbosity (debug, info, warn, error, disabled)
	LogLevel string `yaml:"log_level"`

	// LogJSON switches log output to JSON lines
	LogJSON bool `yaml:"log_json"`

	// Metrics exposes Prometheus metrics on the HTTP service
	Metrics bool `yaml:"metrics"`

	HTTP HTTPConfig `yaml:"http"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Tolerance: 1e-6,
		Timeout:   5 * time.Second,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  "info",
		LogJSON:   false,
		Metrics:   true,
		HTTP: HTTPConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// fileConfig mirrors Config with pointers so that keys present in the file
// override defaults even when they hold zero values.
type fileConfig struct {
	Tolerance *float64 `yaml:"tolerance"`
	Timeout   *string  `yaml:"timeout"`
	Workers   *int     `yaml:"workers"`
	LogLevel  *string  `yaml:"log_level"`
	LogJSON   *bool    `yaml:"log_json"`
	Metrics   *bool    `yaml:"metrics"`
	HTTP      *struct {
		Addr         *string `yaml:"addr"`
		MaxBodyBytes *int64  `yaml:"max_body_bytes"`
	} `yaml:"http"`
}

// LoadConfig loads configuration from path merged over the defaults.
// A missing file yields the defaults; an empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.merge(&fc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(fc *fileConfig) error {
	if fc.Tolerance != nil {
		c.Tolerance = *fc.Tolerance
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout format %q: %w", *fc.Timeout, err)
		}
		c.Timeout = d
	}
	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.LogJSON != nil {
		c.LogJSON = *fc.LogJSON
	}
	if fc.Metrics != nil {
		c.Metrics = *fc.Metrics
	}
	if fc.HTTP != nil {
		if fc.HTTP.Addr != nil {
			c.HTTP.Addr = *fc.HTTP.Addr
		}
		if fc.HTTP.MaxBodyBytes != nil {
			c.HTTP.MaxBodyBytes = *fc.HTTP.MaxBodyBytes
		}
	}
	return nil
}

// Load reads path, then .env files, then the environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadEnvFiles loads the named .env files, or ./.env when none are named.
// Existing variables are not overwritten. Missing files are skipped.
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from ANSWERCHECK_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("TOLERANCE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sTOLERANCE %q: %w", EnvPrefix, v, err)
		}
		c.Tolerance = f
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT %q: %w", EnvPrefix, v, err)
		}
		c.Timeout = d
	}
	if v, ok := get("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS %q: %w", EnvPrefix, v, err)
		}
		c.Workers = n
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("LOG_JSON"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sLOG_JSON %q: %w", EnvPrefix, v, err)
		}
		c.LogJSON = b
	}
	if v, ok := get("METRICS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sMETRICS %q: %w", EnvPrefix, v, err)
		}
		c.Metrics = b
	}
	if v, ok := get("HTTP_ADDR"); ok {
		c.HTTP.Addr = v
	}
	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in (0, 1), got %g", c.Tolerance)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error, disabled", c.LogLevel)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be > 0, got %d", c.HTTP.MaxBodyBytes)
	}
	return nil
}
