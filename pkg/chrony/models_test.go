package chrony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeapStatusFromWire(t *testing.T) {
	tests := []struct {
		name    string
		raw     uint64
		want    LeapStatus
		wantErr bool
	}{
		{"normal", 0, LeapNormal, false},
		{"insert", 1, LeapInsertSecond, false},
		{"delete", 2, LeapDeleteSecond, false},
		{"unsynchronized", 3, LeapUnsynchronized, false},
		{"unknown_value", 4, 0, true},
		{"far_out_of_range", 255, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leapStatusFromWire(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsData(err))
				assert.Contains(t, err.Error(), "leap status")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSourceStateFromWire(t *testing.T) {
	for raw, want := range map[uint64]SourceState{
		0: StateSelected,
		1: StateNonselectable,
		2: StateFalseticker,
		3: StateJittery,
		4: StateUnselected,
		5: StateSelectable,
	} {
		got, err := sourceStateFromWire(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := sourceStateFromWire(6)
	require.Error(t, err)
	assert.True(t, IsData(err))
}

func TestSourceModeFromWire(t *testing.T) {
	for raw, want := range map[uint64]SourceMode{
		0: ModeClient,
		1: ModePeer,
		2: ModeRefClock,
	} {
		got, err := sourceModeFromWire(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := sourceModeFromWire(3)
	require.Error(t, err)
	assert.True(t, IsData(err))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "normal", LeapNormal.String())
	assert.Equal(t, "not synchronised", LeapUnsynchronized.String())
	assert.Equal(t, "selected", StateSelected.String())
	assert.Equal(t, "falseticker", StateFalseticker.String())
	assert.Equal(t, "client", ModeClient.String())
	assert.Equal(t, "reference clock", ModeRefClock.String())
	assert.Equal(t, "unknown(9)", SourceState(9).String())
}

func TestTrackingStatus_IsSynchronized(t *testing.T) {
	tests := []struct {
		name    string
		refID   uint32
		stratum int
		want    bool
	}{
		{"synchronized", 0x7F000001, 2, true},
		{"zero_reference", 0, 2, false},
		{"stratum_sentinel", 0x7F000001, 16, false},
		{"refclock_stratum_zero", 0x47505300, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &TrackingStatus{ReferenceID: tt.refID, Stratum: tt.stratum}
			assert.Equal(t, tt.want, st.IsSynchronized())
		})
	}
}

func TestTrackingStatus_IsLeapPending(t *testing.T) {
	assert.False(t, (&TrackingStatus{LeapStatus: LeapNormal}).IsLeapPending())
	assert.True(t, (&TrackingStatus{LeapStatus: LeapInsertSecond}).IsLeapPending())
	assert.True(t, (&TrackingStatus{LeapStatus: LeapDeleteSecond}).IsLeapPending())
	assert.False(t, (&TrackingStatus{LeapStatus: LeapUnsynchronized}).IsLeapPending())
}

func TestSource_Helpers(t *testing.T) {
	src := &Source{State: StateSelected, Reachability: 0o377}
	assert.True(t, src.IsSelected())
	assert.True(t, src.IsReachable())

	idle := &Source{State: StateUnselected, Reachability: 0}
	assert.False(t, idle.IsSelected())
	assert.False(t, idle.IsReachable())
}

func TestSourceStats_HasSufficientSamples(t *testing.T) {
	stats := &SourceStats{Samples: 4}
	assert.True(t, stats.HasSufficientSamples(4))
	assert.False(t, stats.HasSufficientSamples(5))
}

func TestRTCData_IsCalibrated(t *testing.T) {
	assert.True(t, (&RTCData{Samples: 1}).IsCalibrated())
	assert.False(t, (&RTCData{Samples: 0}).IsCalibrated())
}
