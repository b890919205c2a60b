package chrony

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTracking() *TrackingStatus {
	return &TrackingStatus{
		ReferenceID:    0x7F000001,
		ReferenceName:  "127.0.0.1",
		ReferenceIP:    "127.0.0.1",
		Stratum:        2,
		LeapStatus:     LeapNormal,
		RefTime:        1705320000.5,
		Offset:         0.000123,
		LastOffset:     -0.000045,
		RMSOffset:      0.000200,
		Frequency:      -1.25,
		ResidualFreq:   0.001,
		Skew:           0.05,
		RootDelay:      0.012,
		RootDispersion: 0.003,
		UpdateInterval: 64.2,
	}
}

func validSource() *Source {
	return &Source{
		Address:        "192.168.1.1",
		Poll:           6,
		Stratum:        2,
		State:          StateSelected,
		Mode:           ModeClient,
		Flags:          0,
		Reachability:   0o377,
		LastSampleAgo:  12,
		OrigLatestMeas: -0.0002,
		LatestMeas:     -0.0001,
		LatestMeasErr:  0.0005,
	}
}

func validSourceStats() *SourceStats {
	return &SourceStats{
		ReferenceID: 0xC0A80101,
		Address:     "192.168.1.1",
		Samples:     8,
		Runs:        3,
		Span:        450,
		StdDev:      0.0001,
		ResidFreq:   -0.02,
		Skew:        0.4,
		Offset:      -0.0003,
		OffsetErr:   0.0008,
	}
}

func validRTC() *RTCData {
	return &RTCData{
		RefTime:    1705320000.0,
		Samples:    10,
		Runs:       4,
		Span:       3600,
		Offset:     0.012,
		FreqOffset: -1.23,
	}
}

func TestValidateTracking_Valid(t *testing.T) {
	assert.NoError(t, validateTracking(validTracking()))
}

func TestValidateTracking_StratumBounds(t *testing.T) {
	tests := []struct {
		name    string
		stratum int
		wantErr bool
	}{
		{"zero", 0, false},
		{"fifteen", 15, false},
		{"sixteen", 16, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := validTracking()
			st.Stratum = tt.stratum
			err := validateTracking(st)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsData(err))
				assert.Contains(t, err.Error(), "stratum")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTracking_SignPolicy(t *testing.T) {
	// Signed fields accept negative values.
	st := validTracking()
	st.Offset = -0.5
	st.LastOffset = -0.5
	st.Frequency = -12.5
	st.ResidualFreq = -0.3
	assert.NoError(t, validateTracking(st))

	// Non-negative fields reject them.
	for _, mutate := range []func(*TrackingStatus){
		func(s *TrackingStatus) { s.RMSOffset = -0.001 },
		func(s *TrackingStatus) { s.Skew = -0.1 },
		func(s *TrackingStatus) { s.RootDelay = -0.01 },
		func(s *TrackingStatus) { s.RootDispersion = -0.01 },
		func(s *TrackingStatus) { s.UpdateInterval = -1 },
		func(s *TrackingStatus) { s.RefTime = -5 },
	} {
		st := validTracking()
		mutate(st)
		err := validateTracking(st)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be non-negative")
	}
}

func TestValidateTracking_NonFiniteFloats(t *testing.T) {
	fields := []struct {
		name   string
		mutate func(*TrackingStatus, float64)
	}{
		{"ref_time", func(s *TrackingStatus, v float64) { s.RefTime = v }},
		{"offset", func(s *TrackingStatus, v float64) { s.Offset = v }},
		{"last_offset", func(s *TrackingStatus, v float64) { s.LastOffset = v }},
		{"rms_offset", func(s *TrackingStatus, v float64) { s.RMSOffset = v }},
		{"frequency", func(s *TrackingStatus, v float64) { s.Frequency = v }},
		{"residual_freq", func(s *TrackingStatus, v float64) { s.ResidualFreq = v }},
		{"skew", func(s *TrackingStatus, v float64) { s.Skew = v }},
		{"root_delay", func(s *TrackingStatus, v float64) { s.RootDelay = v }},
		{"root_dispersion", func(s *TrackingStatus, v float64) { s.RootDispersion = v }},
		{"update_interval", func(s *TrackingStatus, v float64) { s.UpdateInterval = v }},
	}

	for _, f := range fields {
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			st := validTracking()
			f.mutate(st, bad)
			err := validateTracking(st)
			require.Error(t, err, "field %s value %v", f.name, bad)
			assert.True(t, IsData(err))
			assert.Contains(t, err.Error(), f.name)
		}
	}
}

func TestValidateTracking_Idempotent(t *testing.T) {
	st := validTracking()
	require.NoError(t, validateTracking(st))
	assert.NoError(t, validateTracking(st))
}

func TestValidateSource_Valid(t *testing.T) {
	assert.NoError(t, validateSource(validSource()))
}

func TestValidateSource_ReachabilityBounds(t *testing.T) {
	tests := []struct {
		name         string
		reachability int
		wantErr      bool
	}{
		{"zero", 0, false},
		{"all_polls", 255, false},
		{"too_large", 256, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := validSource()
			src.Reachability = tt.reachability
			err := validateSource(src)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "reachability")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSource_NegativeLastSampleAgo(t *testing.T) {
	src := validSource()
	src.LastSampleAgo = -1
	err := validateSource(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last_sample_ago")
}

func TestValidateSource_MeasurementErrorSign(t *testing.T) {
	// Offsets may be negative, the error bound may not.
	src := validSource()
	src.OrigLatestMeas = -1.5
	src.LatestMeas = -1.5
	assert.NoError(t, validateSource(src))

	src = validSource()
	src.LatestMeasErr = -0.001
	err := validateSource(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latest_meas_err")
}

func TestValidateSource_NonFiniteFloats(t *testing.T) {
	for _, mutate := range []func(*Source, float64){
		func(s *Source, v float64) { s.OrigLatestMeas = v },
		func(s *Source, v float64) { s.LatestMeas = v },
		func(s *Source, v float64) { s.LatestMeasErr = v },
	} {
		src := validSource()
		mutate(src, math.NaN())
		assert.Error(t, validateSource(src))
	}
}

func TestValidateSourceStats_Valid(t *testing.T) {
	assert.NoError(t, validateSourceStats(validSourceStats()))
}

func TestValidateSourceStats_NegativeCounts(t *testing.T) {
	for _, mutate := range []func(*SourceStats){
		func(s *SourceStats) { s.Samples = -1 },
		func(s *SourceStats) { s.Runs = -1 },
		func(s *SourceStats) { s.Span = -1 },
	} {
		stats := validSourceStats()
		mutate(stats)
		err := validateSourceStats(stats)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be non-negative")
	}
}

func TestValidateSourceStats_SignPolicy(t *testing.T) {
	stats := validSourceStats()
	stats.ResidFreq = -3.5
	stats.Offset = -0.01
	assert.NoError(t, validateSourceStats(stats))

	for _, mutate := range []func(*SourceStats){
		func(s *SourceStats) { s.StdDev = -0.1 },
		func(s *SourceStats) { s.Skew = -0.1 },
		func(s *SourceStats) { s.OffsetErr = -0.1 },
	} {
		stats := validSourceStats()
		mutate(stats)
		assert.Error(t, validateSourceStats(stats))
	}
}

func TestValidateSourceStats_NonFinite(t *testing.T) {
	stats := validSourceStats()
	stats.StdDev = math.Inf(1)
	err := validateSourceStats(stats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "std_dev")
}

func TestValidateRTC_Valid(t *testing.T) {
	assert.NoError(t, validateRTC(validRTC()))
}

func TestValidateRTC_NegativeRefTime(t *testing.T) {
	rtc := validRTC()
	rtc.RefTime = -1
	err := validateRTC(rtc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ref_time")
}

func TestValidateRTC_SignedOffsets(t *testing.T) {
	rtc := validRTC()
	rtc.Offset = -0.5
	rtc.FreqOffset = -10.0
	assert.NoError(t, validateRTC(rtc))
}

func TestValidateRTC_NonFinite(t *testing.T) {
	for _, mutate := range []func(*RTCData, float64){
		func(r *RTCData, v float64) { r.RefTime = v },
		func(r *RTCData, v float64) { r.Offset = v },
		func(r *RTCData, v float64) { r.FreqOffset = v },
	} {
		rtc := validRTC()
		mutate(rtc, math.NaN())
		assert.Error(t, validateRTC(rtc))
	}
}

func TestValidateRTC_Idempotent(t *testing.T) {
	rtc := validRTC()
	require.NoError(t, validateRTC(rtc))
	assert.NoError(t, validateRTC(rtc))
}
