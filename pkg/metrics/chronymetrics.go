package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChronyMetrics encapsulates all chrony exporter metrics
type ChronyMetrics struct {
	// Daemon availability
	Up *prometheus.GaugeVec // 1 if chronyd answered the last query, 0 otherwise

	// Tracking Metrics
	TrackingInfo            *prometheus.GaugeVec // reference identification, value is always 1
	TrackingSynchronized    *prometheus.GaugeVec
	TrackingStratum         *prometheus.GaugeVec
	TrackingLeapIndicator   *prometheus.GaugeVec
	TrackingRefTimestamp    *prometheus.GaugeVec
	TrackingOffsetSeconds   *prometheus.GaugeVec
	TrackingLastOffset      *prometheus.GaugeVec
	TrackingRMSOffset       *prometheus.GaugeVec
	TrackingFrequencyPPM    *prometheus.GaugeVec
	TrackingResidualFreqPPM *prometheus.GaugeVec
	TrackingSkewPPM         *prometheus.GaugeVec
	TrackingRootDelay       *prometheus.GaugeVec
	TrackingRootDispersion  *prometheus.GaugeVec
	TrackingUpdateInterval  *prometheus.GaugeVec

	// Source Metrics
	SourcesCount        *prometheus.GaugeVec
	SourceInfo          *prometheus.GaugeVec // per-source state and mode, value is always 1
	SourceStratum       *prometheus.GaugeVec
	SourcePollInterval  *prometheus.GaugeVec
	SourceReachability  *prometheus.GaugeVec
	SourceReachable     *prometheus.GaugeVec
	SourceSelected      *prometheus.GaugeVec
	SourceLastSampleAgo *prometheus.GaugeVec
	SourceOffsetSeconds *prometheus.GaugeVec
	SourceOffsetOrig    *prometheus.GaugeVec
	SourceOffsetError   *prometheus.GaugeVec

	// Source Statistics Metrics
	SourceStatsSamples   *prometheus.GaugeVec
	SourceStatsRuns      *prometheus.GaugeVec
	SourceStatsSpan      *prometheus.GaugeVec
	SourceStatsStdDev    *prometheus.GaugeVec
	SourceStatsResidFreq *prometheus.GaugeVec
	SourceStatsSkewPPM   *prometheus.GaugeVec
	SourceStatsOffset    *prometheus.GaugeVec
	SourceStatsOffsetErr *prometheus.GaugeVec

	// RTC Metrics
	RTCAvailable     *prometheus.GaugeVec
	RTCRefTimestamp  *prometheus.GaugeVec
	RTCSamples       *prometheus.GaugeVec
	RTCRuns          *prometheus.GaugeVec
	RTCSpanSeconds   *prometheus.GaugeVec
	RTCOffsetSeconds *prometheus.GaugeVec
	RTCFreqOffsetPPM *prometheus.GaugeVec

	// Cross-check Metrics - chronyd tracking vs direct NTP queries
	CrosscheckNTPOffsetSeconds  *prometheus.GaugeVec
	CrosscheckDivergenceSeconds *prometheus.GaugeVec
	CrosscheckCoherenceScore    *prometheus.GaugeVec
	CrosscheckFailuresTotal     *prometheus.CounterVec

	// Exporter Operational Metrics
	ExporterBuildInfo        *prometheus.GaugeVec
	ExporterScrapeDuration   prometheus.Histogram
	ExporterScrapesTotal     *prometheus.CounterVec
	QueryDurationSeconds     *prometheus.HistogramVec
	QueryErrorsTotal         *prometheus.CounterVec
	CollectorDurationSeconds *prometheus.HistogramVec
	CircuitBreakerState      *prometheus.GaugeVec
}

// NewChronyMetricsWithConfig creates and initializes all chrony exporter metrics with custom namespace and subsystem
func NewChronyMetricsWithConfig(namespace, subsystem string) *ChronyMetrics {
	return &ChronyMetrics{
		Up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "up",
				Help:      "Whether the last chronyd query succeeded (1) or not (0)",
			},
			[]string{"socket"},
		),

		// Tracking Metrics
		TrackingInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "info",
				Help:      "Reference identification of the current synchronization source (value is always 1)",
			},
			[]string{"reference_id", "reference_name", "reference_ip", "leap_status"},
		),
		TrackingSynchronized: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "synchronized",
				Help:      "Whether chronyd is synchronized to a time source (1) or not (0)",
			},
			[]string{"socket"},
		),
		TrackingStratum: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "stratum",
				Help:      "Stratum of the local clock (0-15, 16 when unsynchronized)",
			},
			[]string{"socket"},
		),
		TrackingLeapIndicator: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "leap_indicator",
				Help:      "Leap second status (0=normal, 1=insert second, 2=delete second, 3=not synchronised)",
			},
			[]string{"socket"},
		),
		TrackingRefTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "reference_timestamp_seconds",
				Help:      "Time of the last clock update in Unix seconds",
			},
			[]string{"socket"},
		),
		TrackingOffsetSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "offset_seconds",
				Help:      "Current correction between system clock and reference in seconds",
			},
			[]string{"socket"},
		),
		TrackingLastOffset: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "last_offset_seconds",
				Help:      "Estimated local offset on the last clock update in seconds",
			},
			[]string{"socket"},
		),
		TrackingRMSOffset: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "rms_offset_seconds",
				Help:      "Long-term average of offset magnitude in seconds",
			},
			[]string{"socket"},
		),
		TrackingFrequencyPPM: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "frequency_ppm",
				Help:      "Rate the system clock would drift without correction in parts per million",
			},
			[]string{"socket"},
		),
		TrackingResidualFreqPPM: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "residual_frequency_ppm",
				Help:      "Residual frequency for the current reference source in parts per million",
			},
			[]string{"socket"},
		),
		TrackingSkewPPM: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "skew_ppm",
				Help:      "Estimated error bound on the frequency in parts per million",
			},
			[]string{"socket"},
		),
		TrackingRootDelay: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "root_delay_seconds",
				Help:      "Total network path delay to the stratum-1 source in seconds",
			},
			[]string{"socket"},
		),
		TrackingRootDispersion: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "root_dispersion_seconds",
				Help:      "Total dispersion accumulated through all servers to the stratum-1 source in seconds",
			},
			[]string{"socket"},
		),
		TrackingUpdateInterval: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tracking",
				Name:      "update_interval_seconds",
				Help:      "Interval between the last two clock updates in seconds",
			},
			[]string{"socket"},
		),

		// Source Metrics
		SourcesCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sources",
				Name:      "count",
				Help:      "Number of time sources known to chronyd",
			},
			[]string{"socket"},
		),
		SourceInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "info",
				Help:      "Per-source selection state and mode (value is always 1)",
			},
			[]string{"source", "state", "mode"},
		),
		SourceStratum: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "stratum",
				Help:      "Stratum of the source",
			},
			[]string{"source"},
		),
		SourcePollInterval: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "poll_interval",
				Help:      "Polling interval of the source as a base-2 logarithm of seconds",
			},
			[]string{"source"},
		),
		SourceReachability: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "reachability",
				Help:      "Reachability register of the source (0-255)",
			},
			[]string{"source"},
		),
		SourceReachable: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "reachable",
				Help:      "Whether the last poll of the source succeeded (1) or not (0)",
			},
			[]string{"source"},
		),
		SourceSelected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "selected",
				Help:      "Whether the source is the current synchronization source (1) or not (0)",
			},
			[]string{"source"},
		),
		SourceLastSampleAgo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "last_sample_age_seconds",
				Help:      "Time since the last sample was received from the source in seconds",
			},
			[]string{"source"},
		),
		SourceOffsetSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "offset_seconds",
				Help:      "Adjusted offset of the last sample in seconds",
			},
			[]string{"source"},
		),
		SourceOffsetOrig: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "offset_orig_seconds",
				Help:      "Offset of the last sample as measured in seconds",
			},
			[]string{"source"},
		),
		SourceOffsetError: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "offset_error_seconds",
				Help:      "Error bound on the offset of the last sample in seconds",
			},
			[]string{"source"},
		),

		// Source Statistics Metrics
		SourceStatsSamples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "samples",
				Help:      "Number of sample points in the measurement set of the source",
			},
			[]string{"source"},
		),
		SourceStatsRuns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "runs",
				Help:      "Number of residual runs with the same sign in the measurement set",
			},
			[]string{"source"},
		),
		SourceStatsSpan: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "span_seconds",
				Help:      "Interval between the oldest and newest sample in seconds",
			},
			[]string{"source"},
		),
		SourceStatsStdDev: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "stddev_seconds",
				Help:      "Estimated sample standard deviation in seconds",
			},
			[]string{"source"},
		),
		SourceStatsResidFreq: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "residual_frequency_ppm",
				Help:      "Residual frequency of the source in parts per million",
			},
			[]string{"source"},
		),
		SourceStatsSkewPPM: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "skew_ppm",
				Help:      "Estimated error bound on the residual frequency in parts per million",
			},
			[]string{"source"},
		),
		SourceStatsOffset: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "offset_seconds",
				Help:      "Estimated offset of the source in seconds",
			},
			[]string{"source"},
		),
		SourceStatsOffsetErr: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sourcestats",
				Name:      "offset_error_seconds",
				Help:      "Error bound on the estimated offset of the source in seconds",
			},
			[]string{"source"},
		),

		// RTC Metrics
		RTCAvailable: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "available",
				Help:      "Whether RTC tracking data is available from chronyd (1) or not (0)",
			},
			[]string{"socket"},
		),
		RTCRefTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "reference_timestamp_seconds",
				Help:      "RTC reading at the last RTC measurement in Unix seconds",
			},
			[]string{"socket"},
		),
		RTCSamples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "samples",
				Help:      "Number of RTC measurements used for the coefficients",
			},
			[]string{"socket"},
		),
		RTCRuns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "runs",
				Help:      "Number of residual runs with the same sign in the RTC measurement set",
			},
			[]string{"socket"},
		),
		RTCSpanSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "span_seconds",
				Help:      "Interval covered by the RTC measurements in seconds",
			},
			[]string{"socket"},
		),
		RTCOffsetSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "offset_seconds",
				Help:      "Estimated RTC offset from system time in seconds",
			},
			[]string{"socket"},
		),
		RTCFreqOffsetPPM: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "rtc",
				Name:      "frequency_offset_ppm",
				Help:      "Estimated RTC frequency offset in parts per million",
			},
			[]string{"socket"},
		),

		// Cross-check Metrics
		CrosscheckNTPOffsetSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "crosscheck",
				Name:      "ntp_offset_seconds",
				Help:      "Clock offset reported by a direct NTP query in seconds",
			},
			[]string{"server"},
		),
		CrosscheckDivergenceSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "crosscheck",
				Name:      "divergence_seconds",
				Help:      "Absolute difference between chronyd tracking offset and direct NTP offset in seconds",
			},
			[]string{"server"},
		),
		CrosscheckCoherenceScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "crosscheck",
				Name:      "coherence_score",
				Help:      "Coherence score between chronyd and direct NTP measurements (0-1, higher is better)",
			},
			[]string{"server"},
		),
		CrosscheckFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "crosscheck",
				Name:      "failures_total",
				Help:      "Total number of failed direct NTP queries",
			},
			[]string{"server"},
		),

		// Exporter Operational Metrics
		ExporterBuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "build_info",
				Help:      "Build information for the exporter",
			},
			[]string{"version", "commit", "go_version"},
		),
		ExporterScrapeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "scrape_duration_seconds",
				Help:      "Duration of a full chronyd scrape in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),
		ExporterScrapesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "scrapes_total",
				Help:      "Total number of scrapes",
			},
			[]string{"status"},
		),
		QueryDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "query_duration_seconds",
				Help:      "Chronyd report query duration distribution in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 10), // 100µs to ~100ms
			},
			[]string{"report", "status"},
		),
		QueryErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "query_errors_total",
				Help:      "Total number of failed chronyd queries by error kind",
			},
			[]string{"report", "kind"},
		),
		CollectorDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "collector_duration_seconds",
				Help:      "Collector execution duration in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"collector"},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "exporter",
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state for chronyd queries (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
}

// NewChronyMetrics creates and initializes all chrony exporter metrics with the default namespace
func NewChronyMetrics() *ChronyMetrics {
	return NewChronyMetricsWithConfig("chrony", "")
}

// getAllMetrics returns all metric collectors
func (m *ChronyMetrics) getAllMetrics() []prometheus.Collector {
	return []prometheus.Collector{
		m.Up,

		// Tracking metrics
		m.TrackingInfo,
		m.TrackingSynchronized,
		m.TrackingStratum,
		m.TrackingLeapIndicator,
		m.TrackingRefTimestamp,
		m.TrackingOffsetSeconds,
		m.TrackingLastOffset,
		m.TrackingRMSOffset,
		m.TrackingFrequencyPPM,
		m.TrackingResidualFreqPPM,
		m.TrackingSkewPPM,
		m.TrackingRootDelay,
		m.TrackingRootDispersion,
		m.TrackingUpdateInterval,

		// Source metrics
		m.SourcesCount,
		m.SourceInfo,
		m.SourceStratum,
		m.SourcePollInterval,
		m.SourceReachability,
		m.SourceReachable,
		m.SourceSelected,
		m.SourceLastSampleAgo,
		m.SourceOffsetSeconds,
		m.SourceOffsetOrig,
		m.SourceOffsetError,

		// Source statistics metrics
		m.SourceStatsSamples,
		m.SourceStatsRuns,
		m.SourceStatsSpan,
		m.SourceStatsStdDev,
		m.SourceStatsResidFreq,
		m.SourceStatsSkewPPM,
		m.SourceStatsOffset,
		m.SourceStatsOffsetErr,

		// RTC metrics
		m.RTCAvailable,
		m.RTCRefTimestamp,
		m.RTCSamples,
		m.RTCRuns,
		m.RTCSpanSeconds,
		m.RTCOffsetSeconds,
		m.RTCFreqOffsetPPM,

		// Cross-check metrics
		m.CrosscheckNTPOffsetSeconds,
		m.CrosscheckDivergenceSeconds,
		m.CrosscheckCoherenceScore,
		m.CrosscheckFailuresTotal,

		// Exporter operational metrics
		m.ExporterBuildInfo,
		m.ExporterScrapeDuration,
		m.ExporterScrapesTotal,
		m.QueryDurationSeconds,
		m.QueryErrorsTotal,
		m.CollectorDurationSeconds,
		m.CircuitBreakerState,
	}
}

// Describe implements prometheus.Collector interface
func (m *ChronyMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range m.getAllMetrics() {
		metric.Describe(ch)
	}
}

// Collect implements prometheus.Collector interface
func (m *ChronyMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, metric := range m.getAllMetrics() {
		metric.Collect(ch)
	}
}
