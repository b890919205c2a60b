package config

import "time"

// ApplyDefaults sets default values for unspecified configuration fields
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9123
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}

	// Chrony defaults
	// SocketPath stays empty by default so the client probes the
	// standard chronyd socket locations.
	if cfg.Chrony.ScrapeInterval == 0 {
		cfg.Chrony.ScrapeInterval = 15 * time.Second
	}

	// Rate limiting defaults
	if cfg.Chrony.RateLimit.Rate == 0 {
		cfg.Chrony.RateLimit.Rate = 10
	}
	if cfg.Chrony.RateLimit.BurstSize == 0 {
		cfg.Chrony.RateLimit.BurstSize = 5
	}

	// Circuit breaker defaults (enabled by default for fault tolerance)
	cfg.Chrony.CircuitBreaker.Enabled = true // Always enabled
	if cfg.Chrony.CircuitBreaker.MaxRequests == 0 {
		cfg.Chrony.CircuitBreaker.MaxRequests = 3
	}
	if cfg.Chrony.CircuitBreaker.Interval == 0 {
		cfg.Chrony.CircuitBreaker.Interval = 60 * time.Second
	}
	if cfg.Chrony.CircuitBreaker.Timeout == 0 {
		cfg.Chrony.CircuitBreaker.Timeout = 30 * time.Second
	}
	if cfg.Chrony.CircuitBreaker.FailureThreshold == 0 {
		cfg.Chrony.CircuitBreaker.FailureThreshold = 0.6 // 60%
	}

	// Cross-check defaults (disabled by default)
	if len(cfg.Crosscheck.Servers) == 0 {
		cfg.Crosscheck.Servers = []string{
			"pool.ntp.org",
			"time.google.com",
		}
	}
	if cfg.Crosscheck.Timeout == 0 {
		cfg.Crosscheck.Timeout = 5 * time.Second
	}
	if cfg.Crosscheck.MaxDivergence == 0 {
		cfg.Crosscheck.MaxDivergence = 100 * time.Millisecond
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "chrony"
	}
	if cfg.Metrics.Labels == nil {
		cfg.Metrics.Labels = make(map[string]string)
	}
}

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
