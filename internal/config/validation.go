package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validate checks if the configuration is valid
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}

	if err := validateChrony(&cfg.Chrony); err != nil {
		return err
	}

	if err := validateCrosscheck(&cfg.Crosscheck); err != nil {
		return err
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}

	if err := validateMetrics(&cfg.Metrics); err != nil {
		return err
	}

	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.New("port must be between 1 and 65535, got " + strconv.Itoa(cfg.Port))
	}

	if cfg.ReadTimeout < 1*time.Second || cfg.ReadTimeout > 60*time.Second {
		return errors.New("read_timeout must be between 1s and 60s")
	}

	if cfg.WriteTimeout < 1*time.Second || cfg.WriteTimeout > 60*time.Second {
		return errors.New("write_timeout must be between 1s and 60s")
	}

	return nil
}

func validateChrony(cfg *ChronyConfig) error {
	if cfg.SocketPath != "" && !strings.HasPrefix(cfg.SocketPath, "/") {
		return errors.New("socket_path must be an absolute path, got " + cfg.SocketPath)
	}

	if cfg.ScrapeInterval < 1*time.Second || cfg.ScrapeInterval > 10*time.Minute {
		return errors.New("scrape_interval must be between 1s and 10m")
	}

	// Validate rate limiting
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Rate < 1 {
			return errors.New("rate_limit.rate must be at least 1")
		}
		if cfg.RateLimit.BurstSize < 1 {
			return errors.New("rate_limit.burst_size must be at least 1")
		}
	}

	// Validate circuit breaker
	if cfg.CircuitBreaker.Enabled {
		if cfg.CircuitBreaker.FailureThreshold <= 0 || cfg.CircuitBreaker.FailureThreshold > 1 {
			return errors.New("circuit_breaker.failure_threshold must be between 0 and 1")
		}
	}

	return nil
}

func validateCrosscheck(cfg *CrosscheckConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if len(cfg.Servers) == 0 {
		return errors.New("at least one crosscheck server must be configured when crosscheck is enabled")
	}

	if cfg.Timeout < 1*time.Second || cfg.Timeout > 60*time.Second {
		return errors.New("crosscheck.timeout must be between 1s and 60s")
	}

	if cfg.MaxDivergence <= 0 {
		return errors.New("crosscheck.max_divergence must be positive")
	}

	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	if !validLevels[cfg.Level] {
		return errors.New("invalid log level (must be trace, debug, info, warn, error, fatal, or panic)")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[cfg.Format] {
		return errors.New("invalid log format (must be json or console)")
	}

	if cfg.EnableFile && cfg.FilePath == "" {
		return errors.New("file_path is required when enable_file is true")
	}

	return nil
}

func validateMetrics(cfg *MetricsConfig) error {
	if cfg.Namespace == "" {
		return errors.New("namespace is required")
	}

	return nil
}
