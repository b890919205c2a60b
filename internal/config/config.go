// Package config provides configuration loading with explicit naming
//
// Available functions:
//
//   LoadFromEnvVarsOnly()                     - Environment variables ONLY
//                                               Use: Docker, Kubernetes (no ConfigMap)
//
//   LoadFromYamlFile(path)                    - YAML file ONLY (no env overrides)
//                                               Use: Local development, testing
//
//   LoadFromYamlWithEnvOverrides(path)        - YAML base + Environment overrides
//                                               Use: Kubernetes (ConfigMap + env vars)
//                                               Priority: Env Vars > YAML > Defaults
//
// Environment variables supported:
//
//   SERVER:
//     - CHRONY_EXPORTER_ADDRESS, CHRONY_EXPORTER_PORT
//     - SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT
//
//   CHRONY:
//     - CHRONY_SOCKET_PATH, CHRONY_SCRAPE_INTERVAL
//
//   RATE_LIMIT:
//     - RATE_LIMIT_ENABLED, RATE_LIMIT_RATE, RATE_LIMIT_BURST_SIZE
//
//   CIRCUIT_BREAKER:
//     - CIRCUIT_BREAKER_ENABLED, CIRCUIT_BREAKER_MAX_REQUESTS
//     - CIRCUIT_BREAKER_INTERVAL, CIRCUIT_BREAKER_TIMEOUT
//     - CIRCUIT_BREAKER_FAILURE_THRESHOLD
//
//   CROSSCHECK:
//     - CROSSCHECK_ENABLED, CROSSCHECK_SERVERS (comma-separated)
//     - CROSSCHECK_TIMEOUT, CROSSCHECK_MAX_DIVERGENCE
//
//   LOGGING:
//     - LOG_LEVEL (trace|debug|info|warn|error|fatal|panic)
//     - LOG_ENABLE_FILE, LOG_FILE_PATH
//     - Note: LOG_FORMAT is NOT supported (JSON only)
//
//   METRICS:
//     - METRICS_NAMESPACE, METRICS_SUBSYSTEM
//
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Chrony     ChronyConfig     `yaml:"chrony"`
	Crosscheck CrosscheckConfig `yaml:"crosscheck"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Address      string        `yaml:"address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ChronyConfig contains chronyd query configuration
type ChronyConfig struct {
	SocketPath     string               `yaml:"socket_path"` // empty = probe default locations
	ScrapeInterval time.Duration        `yaml:"scrape_interval"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"`
	Rate      int  `yaml:"rate"` // queries per second against chronyd
	BurstSize int  `yaml:"burst_size"`
}

// CircuitBreakerConfig contains circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold"`
}

// CrosscheckConfig contains configuration for validating chronyd against direct NTP queries
type CrosscheckConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Servers       []string      `yaml:"servers"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxDivergence time.Duration `yaml:"max_divergence"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	EnableFile bool   `yaml:"enable_file"`
	FilePath   string `yaml:"file_path"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Namespace string            `yaml:"namespace"`
	Subsystem string            `yaml:"subsystem"`
	Labels    map[string]string `yaml:"labels"`
}

// LoadFromYamlFile reads configuration from a YAML file only (no env var overrides)
// Use case: Local development, testing
func LoadFromYamlFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("config", "Failed to read config file", err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.Error("config", "Failed to parse config file", err)
		return nil, fmt.Errorf("failed to parse YAML config file %s: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(cfg)

	// Validate configuration
	if err := Validate(cfg); err != nil {
		logger.Error("config", "Invalid configuration", err)
		return nil, fmt.Errorf("configuration validation failed for %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromYamlWithEnvOverrides loads base config from YAML, then overrides with environment variables
// Use case: Kubernetes with ConfigMaps + env vars, Docker with config file + env vars
// Priority: Environment Variables > YAML File > Defaults
func LoadFromYamlWithEnvOverrides(path string) (*Config, error) {
	// First, try to load from YAML file
	cfg, err := LoadFromYamlFile(path)
	if err != nil {
		logger.Warn("config", "Failed to load YAML config file, falling back to env vars only")
		// If file doesn't exist, start from defaults
		cfg = &Config{}
		ApplyDefaults(cfg)
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	// Validate final configuration
	if err := Validate(cfg); err != nil {
		logger.Error("config", "Invalid configuration after env overrides", err)
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to an existing config
func applyEnvOverrides(cfg *Config) {
	// ---------------------------------------------------------------------------
	// SERVER - HTTP Server configuration
	// ---------------------------------------------------------------------------
	if addr := os.Getenv("CHRONY_EXPORTER_ADDRESS"); addr != "" {
		cfg.Server.Address = addr
	}
	if port := os.Getenv("CHRONY_EXPORTER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if readTimeout := os.Getenv("SERVER_READ_TIMEOUT"); readTimeout != "" {
		if t, err := time.ParseDuration(readTimeout); err == nil {
			cfg.Server.ReadTimeout = t
		}
	}
	if writeTimeout := os.Getenv("SERVER_WRITE_TIMEOUT"); writeTimeout != "" {
		if t, err := time.ParseDuration(writeTimeout); err == nil {
			cfg.Server.WriteTimeout = t
		}
	}

	// ---------------------------------------------------------------------------
	// CHRONY - chronyd query configuration
	// ---------------------------------------------------------------------------
	if socketPath := os.Getenv("CHRONY_SOCKET_PATH"); socketPath != "" {
		cfg.Chrony.SocketPath = socketPath
	}
	if scrapeInterval := os.Getenv("CHRONY_SCRAPE_INTERVAL"); scrapeInterval != "" {
		if d, err := time.ParseDuration(scrapeInterval); err == nil {
			cfg.Chrony.ScrapeInterval = d
		}
	}

	// ---------------------------------------------------------------------------
	// RATE LIMIT - Rate limiting configuration
	// ---------------------------------------------------------------------------
	if rateLimitEnabled := os.Getenv("RATE_LIMIT_ENABLED"); rateLimitEnabled != "" {
		if b, err := strconv.ParseBool(rateLimitEnabled); err == nil {
			cfg.Chrony.RateLimit.Enabled = b
		}
	}
	if rate := os.Getenv("RATE_LIMIT_RATE"); rate != "" {
		if r, err := strconv.Atoi(rate); err == nil {
			cfg.Chrony.RateLimit.Rate = r
		}
	}
	if burstSize := os.Getenv("RATE_LIMIT_BURST_SIZE"); burstSize != "" {
		if b, err := strconv.Atoi(burstSize); err == nil {
			cfg.Chrony.RateLimit.BurstSize = b
		}
	}

	// ---------------------------------------------------------------------------
	// CIRCUIT BREAKER - Circuit breaker configuration
	// ---------------------------------------------------------------------------
	if cbEnabled := os.Getenv("CIRCUIT_BREAKER_ENABLED"); cbEnabled != "" {
		if b, err := strconv.ParseBool(cbEnabled); err == nil {
			cfg.Chrony.CircuitBreaker.Enabled = b
		}
	}
	if maxRequests := os.Getenv("CIRCUIT_BREAKER_MAX_REQUESTS"); maxRequests != "" {
		if r, err := strconv.ParseUint(maxRequests, 10, 32); err == nil {
			cfg.Chrony.CircuitBreaker.MaxRequests = uint32(r)
		}
	}
	if cbInterval := os.Getenv("CIRCUIT_BREAKER_INTERVAL"); cbInterval != "" {
		if i, err := time.ParseDuration(cbInterval); err == nil {
			cfg.Chrony.CircuitBreaker.Interval = i
		}
	}
	if cbTimeout := os.Getenv("CIRCUIT_BREAKER_TIMEOUT"); cbTimeout != "" {
		if t, err := time.ParseDuration(cbTimeout); err == nil {
			cfg.Chrony.CircuitBreaker.Timeout = t
		}
	}
	if failureThreshold := os.Getenv("CIRCUIT_BREAKER_FAILURE_THRESHOLD"); failureThreshold != "" {
		if f, err := strconv.ParseFloat(failureThreshold, 64); err == nil {
			cfg.Chrony.CircuitBreaker.FailureThreshold = f
		}
	}

	// ---------------------------------------------------------------------------
	// CROSSCHECK - Direct NTP cross-check configuration
	// ---------------------------------------------------------------------------
	if ccEnabled := os.Getenv("CROSSCHECK_ENABLED"); ccEnabled != "" {
		if b, err := strconv.ParseBool(ccEnabled); err == nil {
			cfg.Crosscheck.Enabled = b
		}
	}
	if servers := os.Getenv("CROSSCHECK_SERVERS"); servers != "" {
		cfg.Crosscheck.Servers = parseCommaSeparated(servers)
	}
	if timeout := os.Getenv("CROSSCHECK_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			cfg.Crosscheck.Timeout = t
		}
	}
	if maxDivergence := os.Getenv("CROSSCHECK_MAX_DIVERGENCE"); maxDivergence != "" {
		if d, err := time.ParseDuration(maxDivergence); err == nil {
			cfg.Crosscheck.MaxDivergence = d
		}
	}

	// ---------------------------------------------------------------------------
	// LOGGING - Logging configuration
	// ---------------------------------------------------------------------------
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if enableFile := os.Getenv("LOG_ENABLE_FILE"); enableFile != "" {
		if b, err := strconv.ParseBool(enableFile); err == nil {
			cfg.Logging.EnableFile = b
		}
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		cfg.Logging.FilePath = filePath
	}

	// ---------------------------------------------------------------------------
	// METRICS - Prometheus metrics configuration
	// ---------------------------------------------------------------------------
	if namespace := os.Getenv("METRICS_NAMESPACE"); namespace != "" {
		cfg.Metrics.Namespace = namespace
	}
	if subsystem := os.Getenv("METRICS_SUBSYSTEM"); subsystem != "" {
		cfg.Metrics.Subsystem = subsystem
	}
}

// LoadFromEnvVarsOnly loads configuration from environment variables only (no YAML file)
// Use case: Docker containers, Kubernetes pods without ConfigMaps
// Priority: Environment Variables > Defaults
func LoadFromEnvVarsOnly() (*Config, error) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		logger.Error("config", "Invalid configuration from environment", err)
		return nil, fmt.Errorf("environment configuration validation failed: %w", err)
	}

	return cfg, nil
}

// parseCommaSeparated splits a comma-separated string
func parseCommaSeparated(s string) []string {
	var result []string
	for _, item := range splitByComma(s) {
		if trimmed := trim(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// splitByComma splits a string by comma delimiters.
// This is a utility function for parsing comma-separated values.
func splitByComma(s string) []string {
	var parts []string
	current := ""
	for _, char := range s {
		if char == ',' {
			parts = append(parts, current)
			current = ""
		} else {
			current += string(char)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// trim removes leading and trailing whitespace characters from a string.
// Handles spaces, tabs, and newlines.
func trim(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n') {
		end--
	}
	return s[start:end]
}
