package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/internal/crosscheck"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

// offsetComparer is the part of crosscheck.Checker the collector uses.
// Replaced in tests.
type offsetComparer interface {
	Compare(chronyOffsetSeconds float64) ([]crosscheck.Result, error)
	Servers() []string
}

// CrosscheckCollector compares the chronyd tracking offset against direct
// NTP queries to independent servers
type CrosscheckCollector struct {
	*CommonCollector

	checker offsetComparer
}

// NewCrosscheckCollector creates a new crosscheck collector. The collector
// is disabled unless crosscheck is enabled in the configuration.
func NewCrosscheckCollector(cfg *config.Config, client ChronyQuerier, m *metrics.ChronyMetrics) *CrosscheckCollector {
	c := &CrosscheckCollector{
		CommonCollector: NewCommonCollector(cfg, client, m, "crosscheck"),
		checker: crosscheck.New(
			cfg.Crosscheck.Servers,
			cfg.Crosscheck.Timeout,
			cfg.Crosscheck.MaxDivergence,
		),
	}
	c.enabled = cfg.Crosscheck.Enabled
	return c
}

// Collect queries the tracking report, then compares its offset against
// the configured NTP servers
func (c *CrosscheckCollector) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.GetMetrics().CollectorDurationSeconds.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	}()

	m := c.GetMetrics()

	result, err := c.Guard(func() (interface{}, error) {
		return c.GetClient().GetTracking()
	})
	if err != nil {
		c.RecordQueryError("tracking", err)
		return fmt.Errorf("failed to query tracking report: %w", err)
	}
	tracking := result.(*chrony.TrackingStatus)

	results, err := c.checker.Compare(tracking.Offset)
	if err != nil {
		for _, server := range c.checker.Servers() {
			m.CrosscheckFailuresTotal.WithLabelValues(server).Inc()
		}
		return fmt.Errorf("crosscheck failed: %w", err)
	}

	answered := make(map[string]bool, len(results))
	for _, r := range results {
		answered[r.Server] = true
		m.CrosscheckNTPOffsetSeconds.WithLabelValues(r.Server).Set(r.NTPOffset.Seconds())
		m.CrosscheckDivergenceSeconds.WithLabelValues(r.Server).Set(r.Divergence.Seconds())
		m.CrosscheckCoherenceScore.WithLabelValues(r.Server).Set(r.Coherence)

		if !r.Within {
			logger.SafeWarn("collector", "Chronyd diverges from crosscheck server", map[string]interface{}{
				"server":     r.Server,
				"divergence": r.Divergence.Seconds(),
				"coherence":  r.Coherence,
			})
		}
	}
	for _, server := range c.checker.Servers() {
		if !answered[server] {
			m.CrosscheckFailuresTotal.WithLabelValues(server).Inc()
		}
	}

	logger.SafeDebug("collector", "Crosscheck completed", map[string]interface{}{
		"servers":  len(c.checker.Servers()),
		"answered": len(results),
	})

	return nil
}
