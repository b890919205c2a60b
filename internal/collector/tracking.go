// Package collector provides the chronyd metrics collectors.
//
// The package includes four collector types:
//   - TrackingCollector: system clock performance from the tracking report
//   - SourcesCollector: per-source status and statistics
//   - RTCCollector: hardware clock calibration data
//   - CrosscheckCollector: chronyd tracking compared against direct NTP queries
//
// All collectors implement the Collector interface and can be managed through
// a Registry for coordinated metrics collection.
//
// Usage:
//
//	cfg := config.LoadFromEnvVarsOnly()
//	client := collector.NewChronyClient(cfg)
//	registry := collector.NewRegistry()
//	registry.Register(collector.NewTrackingCollector(cfg, client, m))
//	if err := registry.CollectAll(ctx); err != nil {
//	    log.Fatal(err)
//	}
package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

// TrackingCollector collects system clock performance metrics
type TrackingCollector struct {
	*CommonCollector

	// lastInfoLabels holds the label set of the previous tracking info
	// series so a reference change does not leave a stale series behind.
	lastInfoLabels []string
}

// NewTrackingCollector creates a new tracking collector
func NewTrackingCollector(cfg *config.Config, client ChronyQuerier, m *metrics.ChronyMetrics) *TrackingCollector {
	return &TrackingCollector{
		CommonCollector: NewCommonCollector(cfg, client, m, "tracking"),
	}
}

// Collect queries the tracking report and updates the tracking metrics
func (c *TrackingCollector) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.GetMetrics().CollectorDurationSeconds.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	}()

	m := c.GetMetrics()

	queryStart := time.Now()
	result, err := c.Guard(func() (interface{}, error) {
		return c.GetClient().GetTracking()
	})
	queryDuration := time.Since(queryStart)

	if err != nil {
		m.QueryDurationSeconds.WithLabelValues("tracking", "failure").Observe(queryDuration.Seconds())
		m.Up.WithLabelValues(c.Socket()).Set(0)
		c.RecordQueryError("tracking", err)
		return fmt.Errorf("failed to query tracking report: %w", err)
	}
	m.QueryDurationSeconds.WithLabelValues("tracking", "success").Observe(queryDuration.Seconds())
	m.Up.WithLabelValues(c.Socket()).Set(1)

	tracking := result.(*chrony.TrackingStatus)
	c.updateMetrics(tracking)

	return nil
}

// updateMetrics updates Prometheus metrics from a tracking report
func (c *TrackingCollector) updateMetrics(t *chrony.TrackingStatus) {
	m := c.GetMetrics()
	socket := c.Socket()

	infoLabels := []string{
		strconv.FormatUint(uint64(t.ReferenceID), 10),
		t.ReferenceName,
		t.ReferenceIP,
		t.LeapStatus.String(),
	}
	if c.lastInfoLabels != nil && !equalLabels(c.lastInfoLabels, infoLabels) {
		m.TrackingInfo.DeleteLabelValues(c.lastInfoLabels...)
	}
	m.TrackingInfo.WithLabelValues(infoLabels...).Set(1)
	c.lastInfoLabels = infoLabels

	synchronized := 0.0
	if t.IsSynchronized() {
		synchronized = 1.0
	}
	m.TrackingSynchronized.WithLabelValues(socket).Set(synchronized)
	m.TrackingStratum.WithLabelValues(socket).Set(float64(t.Stratum))
	m.TrackingLeapIndicator.WithLabelValues(socket).Set(float64(t.LeapStatus))
	m.TrackingRefTimestamp.WithLabelValues(socket).Set(t.RefTime)
	m.TrackingOffsetSeconds.WithLabelValues(socket).Set(t.Offset)
	m.TrackingLastOffset.WithLabelValues(socket).Set(t.LastOffset)
	m.TrackingRMSOffset.WithLabelValues(socket).Set(t.RMSOffset)
	m.TrackingFrequencyPPM.WithLabelValues(socket).Set(t.Frequency)
	m.TrackingResidualFreqPPM.WithLabelValues(socket).Set(t.ResidualFreq)
	m.TrackingSkewPPM.WithLabelValues(socket).Set(t.Skew)
	m.TrackingRootDelay.WithLabelValues(socket).Set(t.RootDelay)
	m.TrackingRootDispersion.WithLabelValues(socket).Set(t.RootDispersion)
	m.TrackingUpdateInterval.WithLabelValues(socket).Set(t.UpdateInterval)

	logger.Chrony("tracking", socket, map[string]interface{}{
		"reference": t.ReferenceName,
		"stratum":   t.Stratum,
		"offset":    t.Offset,
	})
}

// equalLabels compares two label value slices
func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
