package collector

import (
	"errors"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

// ErrRateLimited is returned when a scrape is skipped by the local rate limiter
var ErrRateLimited = errors.New("chronyd query rate limit exceeded")

// ChronyQuerier is the subset of the chrony client used by collectors
type ChronyQuerier interface {
	GetTracking() (*chrony.TrackingStatus, error)
	GetSources() ([]chrony.Source, error)
	GetSourceStats() ([]chrony.SourceStats, error)
	GetRTCData() (*chrony.RTCData, error)
}

// CommonCollector provides shared functionality for all collectors
type CommonCollector struct {
	config  *config.Config
	client  ChronyQuerier
	metrics *metrics.ChronyMetrics
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	socket  string
	enabled bool
	name    string
}

// NewCommonCollector creates a new common collector base
func NewCommonCollector(cfg *config.Config, client ChronyQuerier, m *metrics.ChronyMetrics, name string) *CommonCollector {
	c := &CommonCollector{
		config:  cfg,
		client:  client,
		metrics: m,
		socket:  socketLabel(cfg),
		enabled: true,
		name:    name,
	}

	if cfg.Chrony.CircuitBreaker.Enabled {
		threshold := cfg.Chrony.CircuitBreaker.FailureThreshold
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.Chrony.CircuitBreaker.MaxRequests,
			Interval:    cfg.Chrony.CircuitBreaker.Interval,
			Timeout:     cfg.Chrony.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < 3 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= threshold
			},
		})
	}

	if cfg.Chrony.RateLimit.Enabled {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.Chrony.RateLimit.Rate), cfg.Chrony.RateLimit.BurstSize)
	}

	return c
}

// NewChronyClient builds the chrony client from configuration
func NewChronyClient(cfg *config.Config) ChronyQuerier {
	var opts []chrony.Option
	if cfg.Chrony.SocketPath != "" {
		opts = append(opts, chrony.WithSocketPath(cfg.Chrony.SocketPath))
	}
	return chrony.NewClient(opts...)
}

// Name returns the collector name
func (c *CommonCollector) Name() string {
	return c.name
}

// Enabled returns whether the collector is enabled
func (c *CommonCollector) Enabled() bool {
	return c.enabled
}

// GetConfig returns the configuration
func (c *CommonCollector) GetConfig() *config.Config {
	return c.config
}

// GetClient returns the chrony client
func (c *CommonCollector) GetClient() ChronyQuerier {
	return c.client
}

// GetMetrics returns the metrics registry
func (c *CommonCollector) GetMetrics() *metrics.ChronyMetrics {
	return c.metrics
}

// Socket returns the socket label used on daemon-level metrics
func (c *CommonCollector) Socket() string {
	return c.socket
}

// Guard runs a chronyd query through the rate limiter and circuit breaker.
// The breaker state gauge is refreshed after every attempt.
func (c *CommonCollector) Guard(query func() (interface{}, error)) (interface{}, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		logger.SafeWarn("collector", "Query skipped by rate limiter", map[string]interface{}{
			"collector": c.name,
		})
		return nil, ErrRateLimited
	}

	if c.breaker == nil {
		return query()
	}

	result, err := c.breaker.Execute(query)
	c.updateBreakerState()
	return result, err
}

// updateBreakerState mirrors the breaker state into the state gauge
func (c *CommonCollector) updateBreakerState() {
	var value float64
	switch c.breaker.State() {
	case gobreaker.StateClosed:
		value = 0
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	c.metrics.CircuitBreakerState.WithLabelValues(c.name).Set(value)
}

// RecordQueryError increments the query error counter by error kind
func (c *CommonCollector) RecordQueryError(report string, err error) {
	c.metrics.QueryErrorsTotal.WithLabelValues(report, errorKind(err)).Inc()
}

// errorKind maps an error to its counter label
func errorKind(err error) string {
	switch {
	case chrony.IsUnavailable(err):
		return "unavailable"
	case chrony.IsConnection(err):
		return "connection"
	case chrony.IsPermission(err):
		return "permission"
	case chrony.IsData(err):
		return "data"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	default:
		return "other"
	}
}

// socketLabel returns the socket path used as a metric label
func socketLabel(cfg *config.Config) string {
	if cfg.Chrony.SocketPath != "" {
		return cfg.Chrony.SocketPath
	}
	return chrony.DefaultSocketPaths[0]
}
