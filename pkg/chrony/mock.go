package chrony

import "sort"

// MockRecord maps daemon field names to values for a scripted record.
// Supported value types are float64, uint64, int64, int, string, and
// Timespec; ints are widened to whichever integer getter is called.
type MockRecord map[string]interface{}

// MockSession is a scripted Session for testing the protocol engine and
// the query operations without a running daemon. Statuses default to zero
// (success); set any of them non-zero to fail the corresponding protocol
// step. Drains controls how many ProcessResponse calls each request needs
// before results are readable (default 1), exercising the more-than-one-
// response-per-request path.
type MockSession struct {
	Records map[string][]MockRecord

	Drains              int
	CountStatus         int
	RecordStatus        int
	CountProcessStatus  int
	RecordProcessStatus int

	// Call bookkeeping for assertions.
	CountRequests  int
	RecordRequests int

	report  string
	count   int
	fields  []string
	current MockRecord
	pending int
	inCount bool
}

// NewMockSession creates a mock session serving the given records per
// report name.
func NewMockSession(records map[string][]MockRecord) *MockSession {
	return &MockSession{Records: records}
}

func (m *MockSession) drains() int {
	if m.Drains < 1 {
		return 1
	}
	return m.Drains
}

// RequestReportNumberRecords implements Session.
func (m *MockSession) RequestReportNumberRecords(report string) int {
	m.CountRequests++
	if m.CountStatus != 0 {
		return m.CountStatus
	}
	m.report = report
	m.count = len(m.Records[report])
	m.pending = m.drains()
	m.inCount = true
	return 0
}

// NeedsResponse implements Session.
func (m *MockSession) NeedsResponse() bool {
	return m.pending > 0
}

// ProcessResponse implements Session.
func (m *MockSession) ProcessResponse() int {
	if m.inCount && m.CountProcessStatus != 0 {
		return m.CountProcessStatus
	}
	if !m.inCount && m.RecordProcessStatus != 0 {
		return m.RecordProcessStatus
	}
	if m.pending > 0 {
		m.pending--
	}
	return 0
}

// ReportNumberRecords implements Session.
func (m *MockSession) ReportNumberRecords() int {
	return m.count
}

// RequestRecord implements Session.
func (m *MockSession) RequestRecord(report string, index int) int {
	m.RecordRequests++
	if m.RecordStatus != 0 {
		return m.RecordStatus
	}
	records := m.Records[report]
	if index < 0 || index >= len(records) {
		return -1
	}
	m.current = records[index]
	m.fields = make([]string, 0, len(m.current))
	for name := range m.current {
		m.fields = append(m.fields, name)
	}
	sort.Strings(m.fields)
	m.pending = m.drains()
	m.inCount = false
	return 0
}

// FieldIndex implements Session.
func (m *MockSession) FieldIndex(name string) int {
	for i, f := range m.fields {
		if f == name {
			return i
		}
	}
	return -1
}

// FieldFloat implements Session.
func (m *MockSession) FieldFloat(index int) float64 {
	if v, ok := m.value(index).(float64); ok {
		return v
	}
	return 0
}

// FieldUinteger implements Session.
func (m *MockSession) FieldUinteger(index int) uint64 {
	switch v := m.value(index).(type) {
	case uint64:
		return v
	case int:
		return uint64(v)
	case int64:
		return uint64(v)
	}
	return 0
}

// FieldInteger implements Session.
func (m *MockSession) FieldInteger(index int) int64 {
	switch v := m.value(index).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	}
	return 0
}

// FieldString implements Session.
func (m *MockSession) FieldString(index int) string {
	if v, ok := m.value(index).(string); ok {
		return v
	}
	return ""
}

// FieldTimespec implements Session.
func (m *MockSession) FieldTimespec(index int) Timespec {
	if v, ok := m.value(index).(Timespec); ok {
		return v
	}
	return Timespec{}
}

func (m *MockSession) value(index int) interface{} {
	if index < 0 || index >= len(m.fields) {
		return nil
	}
	return m.current[m.fields[index]]
}

// MockTransport is a scripted Transport pairing a MockSession with
// controllable open and init outcomes.
type MockTransport struct {
	Session *MockSession

	// OpenStatus, when negative, is returned by OpenSocket instead of a
	// descriptor. Use -13 to simulate EACCES.
	OpenStatus int

	// InitStatus, when non-zero, fails InitSession.
	InitStatus int

	OpenedPath string
	Deinited   bool
}

// OpenSocket implements Transport.
func (t *MockTransport) OpenSocket(path string) int {
	t.OpenedPath = path
	if t.OpenStatus < 0 {
		return t.OpenStatus
	}
	return 3
}

// InitSession implements Transport.
func (t *MockTransport) InitSession(fd int) (Session, int) {
	if t.InitStatus != 0 {
		return nil, t.InitStatus
	}
	return t.Session, 0
}

// DeinitSession implements Transport.
func (t *MockTransport) DeinitSession(s Session) {
	t.Deinited = true
}
