package chrony

import "strconv"

// LeapStatus is the pending leap second adjustment state reported by the
// daemon.
type LeapStatus int

const (
	LeapNormal LeapStatus = iota
	LeapInsertSecond
	LeapDeleteSecond
	LeapUnsynchronized
)

func (l LeapStatus) String() string {
	switch l {
	case LeapNormal:
		return "normal"
	case LeapInsertSecond:
		return "insert second"
	case LeapDeleteSecond:
		return "delete second"
	case LeapUnsynchronized:
		return "not synchronised"
	default:
		return "unknown(" + strconv.Itoa(int(l)) + ")"
	}
}

// leapStatusFromWire converts the raw leap status value. The enumeration is
// closed on the wire, but a newer daemon may report values this client does
// not know; that is surfaced as a Data error rather than a default so the
// caller gets the "update your client" signal.
func leapStatusFromWire(v uint64) (LeapStatus, error) {
	if v > uint64(LeapUnsynchronized) {
		return 0, newError(KindData, "unknown leap status value "+strconv.FormatUint(v, 10)+
			". This may indicate a newer chrony version - please update chrony-exporter.")
	}
	return LeapStatus(v), nil
}

// SourceState is the selection state of a configured time source.
type SourceState int

const (
	StateSelected SourceState = iota
	StateNonselectable
	StateFalseticker
	StateJittery
	StateUnselected
	StateSelectable
)

func (s SourceState) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateNonselectable:
		return "nonselectable"
	case StateFalseticker:
		return "falseticker"
	case StateJittery:
		return "jittery"
	case StateUnselected:
		return "unselected"
	case StateSelectable:
		return "selectable"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

func sourceStateFromWire(v uint64) (SourceState, error) {
	if v > uint64(StateSelectable) {
		return 0, newError(KindData, "unknown state value "+strconv.FormatUint(v, 10)+
			". This may indicate a newer chrony version - please update chrony-exporter.")
	}
	return SourceState(v), nil
}

// SourceMode distinguishes NTP clients, symmetric peers, and hardware
// reference clocks.
type SourceMode int

const (
	ModeClient SourceMode = iota
	ModePeer
	ModeRefClock
)

func (m SourceMode) String() string {
	switch m {
	case ModeClient:
		return "client"
	case ModePeer:
		return "peer"
	case ModeRefClock:
		return "reference clock"
	default:
		return "unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

func sourceModeFromWire(v uint64) (SourceMode, error) {
	if v > uint64(ModeRefClock) {
		return 0, newError(KindData, "unknown mode value "+strconv.FormatUint(v, 10)+
			". This may indicate a newer chrony version - please update chrony-exporter.")
	}
	return SourceMode(v), nil
}

// TrackingStatus is a snapshot of the daemon's synchronization state.
//
// Fields:
//   - ReferenceID: 32-bit NTP reference identifier
//   - ReferenceName: ReferenceID rendered via FormatRefID
//   - ReferenceIP: address string of the reference source
//   - Stratum: NTP stratum level (0 = reference clock)
//   - LeapStatus: pending leap second state
//   - RefTime: time of the last measurement, seconds since epoch
//   - Offset: current offset from the reference in seconds (signed)
//   - LastOffset: offset at the last measurement in seconds (signed)
//   - RMSOffset: root mean square of recent offsets in seconds
//   - Frequency: clock frequency error in ppm (signed)
//   - ResidualFreq: residual frequency for the current source in ppm (signed)
//   - Skew: error bound on the frequency in ppm
//   - RootDelay: total round-trip delay to the stratum-1 source in seconds
//   - RootDispersion: total dispersion to the reference in seconds
//   - UpdateInterval: seconds since the last successful update
type TrackingStatus struct {
	ReferenceID    uint32
	ReferenceName  string
	ReferenceIP    string
	Stratum        int
	LeapStatus     LeapStatus
	RefTime        float64
	Offset         float64
	LastOffset     float64
	RMSOffset      float64
	Frequency      float64
	ResidualFreq   float64
	Skew           float64
	RootDelay      float64
	RootDispersion float64
	UpdateInterval float64
}

// IsSynchronized reports whether the daemon is synchronized to a source:
// a non-zero reference ID and a stratum below the wire-level sentinel 16.
// Validated records always carry a stratum in [0,15], so the stratum branch
// only matters for records constructed outside the query path.
func (t *TrackingStatus) IsSynchronized() bool {
	return t.ReferenceID != 0 && t.Stratum < 16
}

// IsLeapPending reports whether a leap second insertion or deletion is
// scheduled.
func (t *TrackingStatus) IsLeapPending() bool {
	return t.LeapStatus == LeapInsertSecond || t.LeapStatus == LeapDeleteSecond
}

// Source describes one configured time source. Enumeration order follows
// the daemon and is not sorted.
//
// Fields:
//   - Address: IP address, or the formatted reference ID for refclocks
//   - Poll: polling interval as log2 seconds (6 means 64 seconds)
//   - Stratum: stratum level of the source
//   - State: selection state
//   - Mode: client, peer, or reference clock
//   - Flags: source flags, opaque bitfield
//   - Reachability: 8-bit register of recent poll successes
//   - LastSampleAgo: seconds since the last valid sample
//   - OrigLatestMeas: original last sample offset in seconds (signed)
//   - LatestMeas: adjusted last sample offset in seconds (signed)
//   - LatestMeasErr: last sample error bound in seconds
type Source struct {
	Address        string
	Poll           int
	Stratum        int
	State          SourceState
	Mode           SourceMode
	Flags          uint32
	Reachability   int
	LastSampleAgo  int64
	OrigLatestMeas float64
	LatestMeas     float64
	LatestMeasErr  float64
}

// IsReachable reports whether at least one of the recent polls succeeded.
func (s *Source) IsReachable() bool {
	return s.Reachability > 0
}

// IsSelected reports whether this source is the one currently selected for
// synchronization.
func (s *Source) IsSelected() bool {
	return s.State == StateSelected
}

// SourceStats is the per-source statistical summary used for drift and
// offset estimation.
//
// Fields:
//   - ReferenceID: 32-bit NTP reference identifier
//   - Address: IP address of the source, empty for reference clocks
//   - Samples: sample points currently retained
//   - Runs: runs of residuals with the same sign
//   - Span: interval between the oldest and newest samples in seconds
//   - StdDev: estimated sample standard deviation in seconds
//   - ResidFreq: residual frequency in ppm (signed)
//   - Skew: frequency error bound in ppm
//   - Offset: estimated source offset in seconds (signed)
//   - OffsetErr: offset error bound in seconds
type SourceStats struct {
	ReferenceID uint32
	Address     string
	Samples     int64
	Runs        int64
	Span        int64
	StdDev      float64
	ResidFreq   float64
	Skew        float64
	Offset      float64
	OffsetErr   float64
}

// HasSufficientSamples reports whether at least minimum samples are
// retained, the floor for the statistics to be meaningful.
func (s *SourceStats) HasSufficientSamples(minimum int64) bool {
	return s.Samples >= minimum
}

// RTCData is the hardware clock calibration snapshot. It is only available
// when RTC tracking is enabled in the daemon configuration.
//
// Fields:
//   - RefTime: RTC reading at the last error measurement, seconds since epoch
//   - Samples: measurements used for calibration
//   - Runs: runs of residuals, a linear-fit quality indicator
//   - Span: period covered by the measurements in seconds
//   - Offset: estimated RTC offset in seconds (signed)
//   - FreqOffset: RTC drift rate in ppm (signed)
type RTCData struct {
	RefTime    float64
	Samples    int64
	Runs       int64
	Span       int64
	Offset     float64
	FreqOffset float64
}

// IsCalibrated reports whether any calibration data has been accumulated.
func (r *RTCData) IsCalibrated() bool {
	return r.Samples > 0
}
