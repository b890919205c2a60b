package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maximewewer/chrony-exporter/internal/config"
	"github.com/maximewewer/chrony-exporter/pkg/chrony"
	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/metrics"
)

// RTCCollector collects hardware clock calibration metrics
type RTCCollector struct {
	*CommonCollector
}

// NewRTCCollector creates a new RTC collector
func NewRTCCollector(cfg *config.Config, client ChronyQuerier, m *metrics.ChronyMetrics) *RTCCollector {
	return &RTCCollector{
		CommonCollector: NewCommonCollector(cfg, client, m, "rtc"),
	}
}

// Collect queries the RTC report and updates the RTC metrics. A daemon
// running without the rtcsync or rtcfile directive has no RTC data; that
// is reported through the availability gauge, not as a collection failure.
func (c *RTCCollector) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.GetMetrics().CollectorDurationSeconds.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	}()

	m := c.GetMetrics()
	socket := c.Socket()

	queryStart := time.Now()
	result, err := c.Guard(func() (interface{}, error) {
		return c.GetClient().GetRTCData()
	})
	queryDuration := time.Since(queryStart)

	if err != nil {
		if isRTCUnavailable(err) {
			m.QueryDurationSeconds.WithLabelValues("rtc", "success").Observe(queryDuration.Seconds())
			m.RTCAvailable.WithLabelValues(socket).Set(0)
			logger.SafeDebug("collector", "RTC tracking not enabled in chronyd", map[string]interface{}{
				"socket": socket,
			})
			return nil
		}
		m.QueryDurationSeconds.WithLabelValues("rtc", "failure").Observe(queryDuration.Seconds())
		c.RecordQueryError("rtc", err)
		return fmt.Errorf("failed to query rtc report: %w", err)
	}
	m.QueryDurationSeconds.WithLabelValues("rtc", "success").Observe(queryDuration.Seconds())

	rtc := result.(*chrony.RTCData)
	m.RTCAvailable.WithLabelValues(socket).Set(1)
	m.RTCRefTimestamp.WithLabelValues(socket).Set(rtc.RefTime)
	m.RTCSamples.WithLabelValues(socket).Set(float64(rtc.Samples))
	m.RTCRuns.WithLabelValues(socket).Set(float64(rtc.Runs))
	m.RTCSpanSeconds.WithLabelValues(socket).Set(float64(rtc.Span))
	m.RTCOffsetSeconds.WithLabelValues(socket).Set(rtc.Offset)
	m.RTCFreqOffsetPPM.WithLabelValues(socket).Set(rtc.FreqOffset)

	logger.Chrony("rtcdata", socket, map[string]interface{}{
		"samples":    rtc.Samples,
		"calibrated": rtc.IsCalibrated(),
	})

	return nil
}

// isRTCUnavailable reports whether the error means the daemon has no RTC
// tracking configured, as opposed to a failed query.
func isRTCUnavailable(err error) bool {
	return chrony.IsData(err) && strings.Contains(err.Error(), "RTC tracking is not available")
}
