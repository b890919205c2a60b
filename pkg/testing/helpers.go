package testutil

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/maximewewer/chrony-exporter/pkg/chrony"
)

// CreateTrackingStatus creates a synchronized tracking report for testing
func CreateTrackingStatus(offset float64, stratum int) *chrony.TrackingStatus {
	return &chrony.TrackingStatus{
		ReferenceID:    0xC0A80101,
		ReferenceName:  "192.168.1.1",
		ReferenceIP:    "192.168.1.1",
		Stratum:        stratum,
		LeapStatus:     chrony.LeapNormal,
		RefTime:        float64(time.Now().Unix()),
		Offset:         offset,
		LastOffset:     offset / 2,
		RMSOffset:      0.0002,
		Frequency:      -1.25,
		ResidualFreq:   0.001,
		Skew:           0.05,
		RootDelay:      0.012,
		RootDispersion: 0.003,
		UpdateInterval: 64.2,
	}
}

// CreateUnsynchronizedTracking creates a tracking report for an unsynchronized daemon
func CreateUnsynchronizedTracking() *chrony.TrackingStatus {
	st := CreateTrackingStatus(0, 15)
	st.ReferenceID = 0
	st.ReferenceName = ""
	st.ReferenceIP = ""
	st.LeapStatus = chrony.LeapUnsynchronized
	return st
}

// CreateSource creates a reachable selected source for testing
func CreateSource(address string) *chrony.Source {
	return &chrony.Source{
		Address:        address,
		Poll:           6,
		Stratum:        2,
		State:          chrony.StateSelected,
		Mode:           chrony.ModeClient,
		Reachability:   0o377,
		LastSampleAgo:  12,
		OrigLatestMeas: -0.0002,
		LatestMeas:     -0.0001,
		LatestMeasErr:  0.0005,
	}
}

// CreateMockNTPResponse creates a valid mock NTP response for cross-check testing
func CreateMockNTPResponse(offset time.Duration, stratum uint8) *ntp.Response {
	now := time.Now()
	return &ntp.Response{
		Time:           now.Add(offset),
		ClockOffset:    offset,
		RTT:            50 * time.Millisecond,
		Precision:      time.Microsecond,
		Stratum:        stratum,
		ReferenceID:    0x4E495354, // NIST
		ReferenceTime:  now.Add(-1 * time.Hour),
		RootDelay:      10 * time.Millisecond,
		RootDispersion: 5 * time.Millisecond,
		RootDistance:   15 * time.Millisecond,
		Leap:           ntp.LeapNoWarning,
		MinError:       time.Millisecond,
		KissCode:       "",
		Poll:           6,
	}
}

// AssertMetricValue validates a Prometheus metric value
func AssertMetricValue(t *testing.T, registry *prometheus.Registry, metricName string, labels map[string]string, expected float64) {
	t.Helper()

	metrics, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() != metricName {
			continue
		}

		for _, m := range mf.GetMetric() {
			if labelsMatch(m.GetLabel(), labels) {
				var value float64
				switch mf.GetType() {
				case dto.MetricType_GAUGE:
					value = m.GetGauge().GetValue()
				case dto.MetricType_COUNTER:
					value = m.GetCounter().GetValue()
				case dto.MetricType_HISTOGRAM:
					value = m.GetHistogram().GetSampleSum()
				default:
					t.Fatalf("Unsupported metric type: %v", mf.GetType())
				}

				if value != expected {
					t.Errorf("Metric %s with labels %v: expected %f, got %f", metricName, labels, expected, value)
				}
				return
			}
		}
	}

	t.Errorf("Metric %s with labels %v not found", metricName, labels)
}

// AssertMetricExists checks if a metric exists with given labels
func AssertMetricExists(t *testing.T, registry *prometheus.Registry, metricName string, labels map[string]string) {
	t.Helper()

	metrics, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		if mf.GetName() != metricName {
			continue
		}

		for _, m := range mf.GetMetric() {
			if labelsMatch(m.GetLabel(), labels) {
				return
			}
		}
	}

	t.Errorf("Metric %s with labels %v not found", metricName, labels)
}

// labelsMatch checks if metric labels match expected labels
func labelsMatch(metricLabels []*dto.LabelPair, expected map[string]string) bool {
	if len(metricLabels) != len(expected) {
		return false
	}

	for _, label := range metricLabels {
		expectedValue, exists := expected[label.GetName()]
		if !exists || expectedValue != label.GetValue() {
			return false
		}
	}

	return true
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if condition() {
			return
		}

		<-ticker.C
		if time.Now().After(deadline) {
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// NewTestHTTPServer creates a test HTTP server for integration tests
func NewTestHTTPServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
	})

	return server
}

// CreateTestRegistry creates a new Prometheus registry for testing
func CreateTestRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ValidatePrometheusMetricName validates that a metric name follows Prometheus conventions
func ValidatePrometheusMetricName(t *testing.T, name string) {
	t.Helper()

	if len(name) == 0 {
		t.Error("Metric name cannot be empty")
	}

	// Must match regex: [a-zA-Z_:][a-zA-Z0-9_:]*
	validName := regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	if !validName.MatchString(name) {
		t.Errorf("Invalid metric name: %s (must match [a-zA-Z_:][a-zA-Z0-9_:]*)", name)
	}

	// Should contain namespace prefix
	if !strings.HasPrefix(name, "chrony_") && !strings.HasPrefix(name, "chrony_exporter_") {
		t.Errorf("Metric name %s should have chrony_ or chrony_exporter_ prefix", name)
	}

	// Should use underscores, not hyphens
	if strings.Contains(name, "-") {
		t.Errorf("Metric name %s should use underscores, not hyphens", name)
	}
}

// ValidatePrometheusLabelName validates that a label name follows Prometheus conventions
func ValidatePrometheusLabelName(t *testing.T, name string) {
	t.Helper()

	// Must match regex: [a-zA-Z_][a-zA-Z0-9_]*
	validLabel := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	if !validLabel.MatchString(name) {
		t.Errorf("Invalid label name: %s (must match [a-zA-Z_][a-zA-Z0-9_]*)", name)
	}

	// Reserved label names
	reserved := []string{"__name__", "job", "instance"}
	for _, r := range reserved {
		if name == r {
			t.Errorf("Label name %s is reserved", name)
		}
	}
}
