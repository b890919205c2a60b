package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/maximewewer/chrony-exporter/pkg/chrony"
)

func TestCreateTrackingStatus(t *testing.T) {
	st := CreateTrackingStatus(0.000123, 2)

	assert.NotNil(t, st)
	assert.Equal(t, 0.000123, st.Offset)
	assert.Equal(t, 2, st.Stratum)
	assert.True(t, st.IsSynchronized())
	assert.False(t, st.IsLeapPending())
}

func TestCreateUnsynchronizedTracking(t *testing.T) {
	st := CreateUnsynchronizedTracking()

	assert.NotNil(t, st)
	assert.False(t, st.IsSynchronized())
	assert.Equal(t, chrony.LeapUnsynchronized, st.LeapStatus)
}

func TestCreateSource(t *testing.T) {
	src := CreateSource("192.168.1.1")

	assert.NotNil(t, src)
	assert.Equal(t, "192.168.1.1", src.Address)
	assert.True(t, src.IsReachable())
	assert.True(t, src.IsSelected())
}

func TestCreateMockNTPResponse(t *testing.T) {
	offset := 10 * time.Millisecond
	stratum := uint8(2)

	resp := CreateMockNTPResponse(offset, stratum)

	assert.NotNil(t, resp)
	assert.Equal(t, offset, resp.ClockOffset)
	assert.Equal(t, stratum, resp.Stratum)
	assert.Greater(t, resp.RTT, time.Duration(0))
}

func TestWaitForCondition(t *testing.T) {
	count := 0
	condition := func() bool {
		count++
		return count >= 3
	}

	WaitForCondition(t, condition, 1*time.Second, "count to reach 3")
	assert.GreaterOrEqual(t, count, 3)
}

func TestCreateTestRegistry(t *testing.T) {
	reg := CreateTestRegistry()
	assert.NotNil(t, reg)
}

func TestAssertMetricValue(t *testing.T) {
	reg := CreateTestRegistry()

	// Create and register test gauge
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge_value",
		Help: "Test gauge for value assertion",
	})
	reg.MustRegister(gauge)
	gauge.Set(42.5)

	// Test successful assertion
	AssertMetricValue(t, reg, "test_gauge_value", nil, 42.5)

	// Test with labels
	gaugeVec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "test_gauge_with_labels",
			Help: "Test gauge with labels",
		},
		[]string{"source", "status"},
	)
	reg.MustRegister(gaugeVec)
	gaugeVec.WithLabelValues("192.168.1.1", "ok").Set(100)

	labels := map[string]string{
		"source": "192.168.1.1",
		"status": "ok",
	}
	AssertMetricValue(t, reg, "test_gauge_with_labels", labels, 100)
}

func TestAssertMetricExists(t *testing.T) {
	reg := CreateTestRegistry()

	// Register metric
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter_exists",
		Help: "Test counter for existence check",
	})
	reg.MustRegister(counter)
	counter.Inc()

	// Test metric exists
	AssertMetricExists(t, reg, "test_counter_exists", nil)

	// Test with labels
	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_counter_with_labels",
			Help: "Test counter with labels",
		},
		[]string{"endpoint"},
	)
	reg.MustRegister(counterVec)
	counterVec.WithLabelValues("/metrics").Inc()

	labelsWithEndpoint := map[string]string{
		"endpoint": "/metrics",
	}
	AssertMetricExists(t, reg, "test_counter_with_labels", labelsWithEndpoint)
}

func TestNewTestHTTPServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	})

	server := NewTestHTTPServer(t, handler)
	defer server.Close()

	assert.NotNil(t, server)

	// Test server responds
	resp, err := http.Get(server.URL)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidatePrometheusMetricName(t *testing.T) {
	tests := []struct {
		name       string
		metricName string
	}{
		{"valid_basic", "chrony_tracking_offset_seconds"},
		{"valid_with_underscore", "chrony_source_reachable"},
		{"valid_with_numbers", "chrony_stratum_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ValidatePrometheusMetricName(t, tt.metricName)
		})
	}
}

func TestValidatePrometheusLabelName(t *testing.T) {
	tests := []struct {
		name      string
		labelName string
	}{
		{"valid_basic", "source"},
		{"valid_with_underscore", "source_mode"},
		{"valid_with_numbers", "source_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ValidatePrometheusLabelName(t, tt.labelName)
		})
	}
}

func BenchmarkCreateMockNTPResponse(b *testing.B) {
	offset := 10 * time.Millisecond
	stratum := uint8(2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CreateMockNTPResponse(offset, stratum)
	}
}
