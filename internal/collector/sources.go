package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

// SourcesCollector collects per-source status and statistics metrics
type SourcesCollector struct {
	*CommonCollector
}

// NewSourcesCollector creates a new sources collector
func NewSourcesCollector(cfg *config.Config, client ChronyQuerier, m *metrics.ChronyMetrics) *SourcesCollector {
	return &SourcesCollector{
		CommonCollector: NewCommonCollector(cfg, client, m, "sources"),
	}
}

// Collect queries the sources and sourcestats reports and updates the
// per-source metrics. Source-labeled series are reset on every run so
// sources removed from the daemon configuration do not linger.
func (c *SourcesCollector) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.GetMetrics().CollectorDurationSeconds.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	}()

	m := c.GetMetrics()

	queryStart := time.Now()
	result, err := c.Guard(func() (interface{}, error) {
		return c.GetClient().GetSources()
	})
	queryDuration := time.Since(queryStart)

	if err != nil {
		m.QueryDurationSeconds.WithLabelValues("sources", "failure").Observe(queryDuration.Seconds())
		c.RecordQueryError("sources", err)
		return fmt.Errorf("failed to query sources report: %w", err)
	}
	m.QueryDurationSeconds.WithLabelValues("sources", "success").Observe(queryDuration.Seconds())

	sources := result.([]chrony.Source)
	c.updateSourceMetrics(sources)

	queryStart = time.Now()
	result, err = c.Guard(func() (interface{}, error) {
		return c.GetClient().GetSourceStats()
	})
	queryDuration = time.Since(queryStart)

	if err != nil {
		m.QueryDurationSeconds.WithLabelValues("sourcestats", "failure").Observe(queryDuration.Seconds())
		c.RecordQueryError("sourcestats", err)
		return fmt.Errorf("failed to query sourcestats report: %w", err)
	}
	m.QueryDurationSeconds.WithLabelValues("sourcestats", "success").Observe(queryDuration.Seconds())

	stats := result.([]chrony.SourceStats)
	c.updateStatsMetrics(stats)

	return nil
}

// updateSourceMetrics updates Prometheus metrics from a sources report
func (c *SourcesCollector) updateSourceMetrics(sources []chrony.Source) {
	m := c.GetMetrics()

	m.SourceInfo.Reset()
	m.SourceStratum.Reset()
	m.SourcePollInterval.Reset()
	m.SourceReachability.Reset()
	m.SourceReachable.Reset()
	m.SourceSelected.Reset()
	m.SourceLastSampleAgo.Reset()
	m.SourceOffsetSeconds.Reset()
	m.SourceOffsetOrig.Reset()
	m.SourceOffsetError.Reset()

	m.SourcesCount.WithLabelValues(c.Socket()).Set(float64(len(sources)))

	for _, s := range sources {
		m.SourceInfo.WithLabelValues(s.Address, s.State.String(), s.Mode.String()).Set(1)
		m.SourceStratum.WithLabelValues(s.Address).Set(float64(s.Stratum))
		m.SourcePollInterval.WithLabelValues(s.Address).Set(float64(s.Poll))
		m.SourceReachability.WithLabelValues(s.Address).Set(float64(s.Reachability))

		reachable := 0.0
		if s.IsReachable() {
			reachable = 1.0
		}
		m.SourceReachable.WithLabelValues(s.Address).Set(reachable)

		selected := 0.0
		if s.IsSelected() {
			selected = 1.0
		}
		m.SourceSelected.WithLabelValues(s.Address).Set(selected)

		m.SourceLastSampleAgo.WithLabelValues(s.Address).Set(float64(s.LastSampleAgo))
		m.SourceOffsetSeconds.WithLabelValues(s.Address).Set(s.LatestMeas)
		m.SourceOffsetOrig.WithLabelValues(s.Address).Set(s.OrigLatestMeas)
		m.SourceOffsetError.WithLabelValues(s.Address).Set(s.LatestMeasErr)
	}

	logger.Chrony("sources", c.Socket(), map[string]interface{}{
		"sources": len(sources),
	})
}

// updateStatsMetrics updates Prometheus metrics from a sourcestats report
func (c *SourcesCollector) updateStatsMetrics(stats []chrony.SourceStats) {
	m := c.GetMetrics()

	m.SourceStatsSamples.Reset()
	m.SourceStatsRuns.Reset()
	m.SourceStatsSpan.Reset()
	m.SourceStatsStdDev.Reset()
	m.SourceStatsResidFreq.Reset()
	m.SourceStatsSkewPPM.Reset()
	m.SourceStatsOffset.Reset()
	m.SourceStatsOffsetErr.Reset()

	for _, s := range stats {
		source := s.Address
		if source == "" {
			// Reference clocks have no address, fall back to the refid
			source = chrony.FormatRefID(s.ReferenceID)
		}

		m.SourceStatsSamples.WithLabelValues(source).Set(float64(s.Samples))
		m.SourceStatsRuns.WithLabelValues(source).Set(float64(s.Runs))
		m.SourceStatsSpan.WithLabelValues(source).Set(float64(s.Span))
		m.SourceStatsStdDev.WithLabelValues(source).Set(s.StdDev)
		m.SourceStatsResidFreq.WithLabelValues(source).Set(s.ResidFreq)
		m.SourceStatsSkewPPM.WithLabelValues(source).Set(s.Skew)
		m.SourceStatsOffset.WithLabelValues(source).Set(s.Offset)
		m.SourceStatsOffsetErr.WithLabelValues(source).Set(s.OffsetErr)
	}

	logger.Chrony("sourcestats", c.Socket(), map[string]interface{}{
		"sources": len(stats),
	})
}
