package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should return defaults for a missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})
	t.Run("Should merge file values over defaults", func(t *testing.T) {
		path := writeFile(t, "answercheck.yaml", `
tolerance: 0.001
timeout: 250ms
workers: 3
metrics: false
http:
  addr: ":9090"
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0.001, cfg.Tolerance)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
		assert.Equal(t, 3, cfg.Workers)
		assert.False(t, cfg.Metrics)
		assert.Equal(t, ":9090", cfg.HTTP.Addr)
		assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
		assert.Equal(t, "info", cfg.LogLevel)
	})
	t.Run("Should reject a bad duration", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "timeout: soon\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid timeout format")
	})
	t.Run("Should reject malformed YAML", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "tolerance: [\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ANSWERCHECK_TOLERANCE": "1e-4",
		"ANSWERCHECK_TIMEOUT":   "2s",
		"ANSWERCHECK_LOG_LEVEL": "DEBUG",
		"ANSWERCHECK_LOG_JSON":  "true",
		"ANSWERCHECK_HTTP_ADDR": "127.0.0.1:8000",
		"ANSWERCHECK_WORKERS":   " ",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	t.Run("Should override from the environment", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(lookup))
		assert.Equal(t, 1e-4, cfg.Tolerance)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.LogJSON)
		assert.Equal(t, "127.0.0.1:8000", cfg.HTTP.Addr)
		assert.Equal(t, DefaultConfig().Workers, cfg.Workers)
	})
	t.Run("Should reject a malformed number", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.ApplyEnv(func(k string) (string, bool) {
			if k == "ANSWERCHECK_WORKERS" {
				return "many", true
			}
			return "", false
		})
		assert.ErrorContains(t, err, "invalid ANSWERCHECK_WORKERS")
	})
}

func TestLoad(t *testing.T) {
	t.Run("Should read .env files without overwriting the environment", func(t *testing.T) {
		t.Setenv("ANSWERCHECK_WORKERS", "2")
		envFile := writeFile(t, "test.env", "ANSWERCHECK_WORKERS=7\nANSWERCHECK_METRICS=false\n")
		t.Cleanup(func() { os.Unsetenv("ANSWERCHECK_METRICS") })
		cfg, err := Load("", envFile)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Workers)
		assert.False(t, cfg.Metrics)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"Should reject a zero tolerance", func(c *Config) { c.Tolerance = 0 }, "tolerance"},
		{"Should reject a negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"Should reject zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"Should reject an unknown level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
	t.Run("Should accept the defaults", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})
}
