package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYamlFile_Success(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  address: "127.0.0.1"
  port: 9123
  read_timeout: 10s
  write_timeout: 10s

chrony:
  socket_path: "/run/chrony/chronyd.sock"
  scrape_interval: 15s

crosscheck:
  enabled: true
  servers:
    - "pool.ntp.org"
  timeout: 5s
  max_divergence: 100ms

logging:
  level: "info"
  format: "json"

metrics:
  namespace: "chrony"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromYamlFile(configFile)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 9123, cfg.Server.Port)
	assert.Equal(t, "/run/chrony/chronyd.sock", cfg.Chrony.SocketPath)
	assert.Equal(t, 15*time.Second, cfg.Chrony.ScrapeInterval)
	assert.True(t, cfg.Crosscheck.Enabled)
	assert.Equal(t, []string{"pool.ntp.org"}, cfg.Crosscheck.Servers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "chrony", cfg.Metrics.Namespace)
}

func TestLoadFromYamlFile_FileNotFound(t *testing.T) {
	cfg, err := LoadFromYamlFile("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromYamlFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "bad.yaml")

	// This is truly invalid YAML - unmatched bracket with indentation error
	err := os.WriteFile(configFile, []byte("server:\n  port: [\n    invalid"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromYamlFile(configFile)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	if err != nil {
		assert.Contains(t, err.Error(), "failed to parse")
	}
}

func TestLoadFromYamlFile_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "invalid.yaml")

	// Config with invalid port
	configContent := `
server:
  port: 99999
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromYamlFile(configFile)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadFromEnvVarsOnly_Defaults(t *testing.T) {
	// Clear environment
	os.Unsetenv("CHRONY_EXPORTER_ADDRESS")
	os.Unsetenv("CHRONY_EXPORTER_PORT")
	os.Unsetenv("CHRONY_SOCKET_PATH")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := LoadFromEnvVarsOnly()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9123, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Chrony.SocketPath)
	assert.Equal(t, 15*time.Second, cfg.Chrony.ScrapeInterval)
}

func TestLoadFromEnvVarsOnly_WithOverrides(t *testing.T) {
	// Set environment variables
	t.Setenv("CHRONY_EXPORTER_ADDRESS", "192.168.1.1")
	t.Setenv("CHRONY_EXPORTER_PORT", "8080")
	t.Setenv("CHRONY_SOCKET_PATH", "/var/run/chrony/chronyd.sock")
	t.Setenv("CHRONY_SCRAPE_INTERVAL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnvVarsOnly()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "192.168.1.1", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/var/run/chrony/chronyd.sock", cfg.Chrony.SocketPath)
	assert.Equal(t, 30*time.Second, cfg.Chrony.ScrapeInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvVarsOnly_InvalidValuesIgnored(t *testing.T) {
	// Invalid values fall back to defaults instead of failing
	t.Setenv("CHRONY_EXPORTER_PORT", "not-a-number")
	t.Setenv("CHRONY_SCRAPE_INTERVAL", "not-a-duration")

	cfg, err := LoadFromEnvVarsOnly()

	require.NoError(t, err)
	assert.Equal(t, 9123, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Chrony.ScrapeInterval)
}

func TestLoadFromEnvVarsOnly_CrosscheckOverrides(t *testing.T) {
	t.Setenv("CROSSCHECK_ENABLED", "true")
	t.Setenv("CROSSCHECK_SERVERS", "ntp1.example.com, ntp2.example.com")
	t.Setenv("CROSSCHECK_TIMEOUT", "10s")
	t.Setenv("CROSSCHECK_MAX_DIVERGENCE", "50ms")

	cfg, err := LoadFromEnvVarsOnly()

	require.NoError(t, err)
	assert.True(t, cfg.Crosscheck.Enabled)
	assert.Equal(t, []string{"ntp1.example.com", "ntp2.example.com"}, cfg.Crosscheck.Servers)
	assert.Equal(t, 10*time.Second, cfg.Crosscheck.Timeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Crosscheck.MaxDivergence)
}

func TestLoadFromEnvVarsOnly_RateLimitAndBreakerOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RATE", "20")
	t.Setenv("RATE_LIMIT_BURST_SIZE", "8")
	t.Setenv("CIRCUIT_BREAKER_MAX_REQUESTS", "5")
	t.Setenv("CIRCUIT_BREAKER_TIMEOUT", "45s")
	t.Setenv("CIRCUIT_BREAKER_FAILURE_THRESHOLD", "0.8")

	cfg, err := LoadFromEnvVarsOnly()

	require.NoError(t, err)
	assert.True(t, cfg.Chrony.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.Chrony.RateLimit.Rate)
	assert.Equal(t, 8, cfg.Chrony.RateLimit.BurstSize)
	assert.Equal(t, uint32(5), cfg.Chrony.CircuitBreaker.MaxRequests)
	assert.Equal(t, 45*time.Second, cfg.Chrony.CircuitBreaker.Timeout)
	assert.Equal(t, 0.8, cfg.Chrony.CircuitBreaker.FailureThreshold)
}

func TestLoadFromYamlWithEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  address: "127.0.0.1"
  port: 9123

chrony:
  socket_path: "/run/chrony/chronyd.sock"
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Env var should win over YAML
	t.Setenv("CHRONY_EXPORTER_PORT", "8123")
	t.Setenv("CHRONY_SOCKET_PATH", "/var/run/chrony/chronyd.sock")

	cfg, err := LoadFromYamlWithEnvOverrides(configFile)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "/var/run/chrony/chronyd.sock", cfg.Chrony.SocketPath)
}

func TestLoadFromYamlWithEnvOverrides_MissingFile(t *testing.T) {
	// Missing file falls back to defaults + env vars
	t.Setenv("CHRONY_EXPORTER_PORT", "7123")

	cfg, err := LoadFromYamlWithEnvOverrides("/nonexistent/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, 7123, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "a", []string{"a"}},
		{"multiple", "a,b,c", []string{"a", "b", "c"}},
		{"with_spaces", " a , b , c ", []string{"a", "b", "c"}},
		{"empty_items", "a,,b", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommaSeparated(tt.input))
		})
	}
}
