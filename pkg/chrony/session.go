package chrony

import "sync"

// Timespec is a seconds/nanoseconds pair as reported by the daemon.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// Seconds converts the pair to floating point seconds since the epoch.
func (ts Timespec) Seconds() float64 {
	return float64(ts.Sec) + float64(ts.Nsec)/nanosecondsPerSecond
}

const nanosecondsPerSecond = 1e9

// Session is the capability surface of an established daemon protocol
// session. Implementations own the wire format; this package only drives
// the request/drain sequence and reads the per-record field table.
//
// Methods returning int return a status code: zero is success, anything
// else aborts the query. FieldIndex returns a negative value when the
// named field does not exist in the current record.
type Session interface {
	// RequestReportNumberRecords asks the daemon how many records the
	// named report currently holds.
	RequestReportNumberRecords(report string) int

	// NeedsResponse reports whether the session still has response data
	// to consume before results can be read. A single request may need
	// more than one response processed.
	NeedsResponse() bool

	// ProcessResponse consumes the next pending response.
	ProcessResponse() int

	// ReportNumberRecords returns the record count read from the last
	// count request. Only valid once NeedsResponse has gone false.
	ReportNumberRecords() int

	// RequestRecord asks the daemon for one record of the named report.
	RequestRecord(report string, index int) int

	// FieldIndex resolves a field name to an index in the current
	// record's field table.
	FieldIndex(name string) int

	FieldFloat(index int) float64
	FieldUinteger(index int) uint64
	FieldInteger(index int) int64
	FieldString(index int) string
	FieldTimespec(index int) Timespec
}

// Transport opens the daemon control socket and manages session lifecycle.
// It mirrors the surface of the system libchrony binding: OpenSocket
// returns a descriptor or a negative errno-style code, InitSession returns
// a non-zero status on failure (and is responsible for closing the
// descriptor in that case), and DeinitSession releases the session along
// with its descriptor.
type Transport interface {
	OpenSocket(path string) int
	InitSession(fd int) (Session, int)
	DeinitSession(s Session)
}

var (
	transportMu      sync.RWMutex
	defaultTransport Transport
)

// RegisterTransport installs the Transport used by clients that were not
// given one explicitly. A binding against the system libchrony typically
// calls this from an init function; registering nil removes the default.
func RegisterTransport(t Transport) {
	transportMu.Lock()
	defer transportMu.Unlock()
	defaultTransport = t
}

// TransportAvailable reports whether a default transport is registered.
func TransportAvailable() bool {
	return registeredTransport() != nil
}

func registeredTransport() Transport {
	transportMu.RLock()
	defer transportMu.RUnlock()
	return defaultTransport
}
