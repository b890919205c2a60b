// Package chrony queries a running chronyd over its Unix control socket
// and exposes typed, validated snapshots of the daemon's state: tracking
// status, configured sources, per-source statistics, and RTC calibration
// data.
//
// The daemon wire format lives behind the Transport and Session
// capability interfaces. A production binding (typically backed by the
// system libchrony) installs itself with RegisterTransport; tests script
// the protocol with MockTransport and MockSession.
//
// Every query is a fully synchronous, single-shot exchange: open socket,
// establish session, discover the record count, fetch and decode each
// record, tear the session down. There is no retry, pooling, or timeout
// in this package; callers needing a deadline wrap the call themselves.
//
// Usage:
//
//	client := chrony.NewClient()
//	tracking, err := client.GetTracking()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("offset: %.6f s\n", tracking.Offset)
package chrony

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/maximewewer/chrony-exporter/pkg/logger"
)

// DefaultSocketPaths are probed in order when no explicit socket path is
// configured. The first path that exists on the filesystem wins.
var DefaultSocketPaths = []string{
	"/run/chrony/chronyd.sock",
	"/var/run/chrony/chronyd.sock",
}

// errnoPermissionDenied is the errno-style code for EACCES as returned by
// the transport's OpenSocket.
const errnoPermissionDenied = -13

// Client issues read-only report queries against a chronyd control socket.
// The zero value is not usable; construct with NewClient. A Client holds no
// connection state, so it is safe for concurrent use: every query opens and
// tears down its own socket and session.
type Client struct {
	socketPath string
	transport  Transport
}

// Option configures a Client.
type Option func(*Client)

// WithSocketPath pins the daemon socket path instead of probing the
// defaults. The path is used verbatim; a nonexistent path surfaces later
// as a connection error from the transport, not as an early failure.
func WithSocketPath(path string) Option {
	return func(c *Client) { c.socketPath = path }
}

// WithTransport overrides the registered default transport for this client.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// NewClient creates a client for the local chronyd.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTracking returns the daemon's current synchronization state. The
// tracking report always carries exactly one record; a zero count is a
// Data error.
func (c *Client) GetTracking() (*TrackingStatus, error) {
	sess, cleanup, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	count, err := reportRecordCount(sess, reportTracking)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, newError(KindData, "no tracking records available")
	}

	if err := fetchRecord(sess, reportTracking, 0); err != nil {
		return nil, err
	}

	tracking, err := extractTracking(sess)
	if err != nil {
		return nil, err
	}
	if err := validateTracking(tracking); err != nil {
		return nil, err
	}

	logger.SafeDebug("chrony", "Tracking query completed", map[string]interface{}{
		"reference": tracking.ReferenceName,
		"stratum":   tracking.Stratum,
		"offset":    tracking.Offset,
	})
	return tracking, nil
}

// GetSources returns every configured time source, in daemon enumeration
// order. No configured sources is a valid empty result, not an error.
func (c *Client) GetSources() ([]Source, error) {
	sess, cleanup, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	count, err := reportRecordCount(sess, reportSources)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return []Source{}, nil
	}

	sources := make([]Source, 0, count)
	for i := 0; i < count; i++ {
		if err := fetchRecord(sess, reportSources, i); err != nil {
			return nil, err
		}
		src, err := extractSource(sess)
		if err != nil {
			return nil, err
		}
		if err := validateSource(src); err != nil {
			return nil, err
		}
		sources = append(sources, *src)
	}

	logger.SafeDebug("chrony", "Sources query completed", map[string]interface{}{
		"sources": len(sources),
	})
	return sources, nil
}

// GetSourceStats returns the statistical summary for every configured
// source. No configured sources is a valid empty result, not an error.
func (c *Client) GetSourceStats() ([]SourceStats, error) {
	sess, cleanup, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	count, err := reportRecordCount(sess, reportSourceStats)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return []SourceStats{}, nil
	}

	stats := make([]SourceStats, 0, count)
	for i := 0; i < count; i++ {
		if err := fetchRecord(sess, reportSourceStats, i); err != nil {
			return nil, err
		}
		st, err := extractSourceStats(sess)
		if err != nil {
			return nil, err
		}
		if err := validateSourceStats(st); err != nil {
			return nil, err
		}
		stats = append(stats, *st)
	}

	logger.SafeDebug("chrony", "Sourcestats query completed", map[string]interface{}{
		"sources": len(stats),
	})
	return stats, nil
}

// GetRTCData returns the hardware clock calibration snapshot. A zero record
// count, or any failure while draining the record responses, means RTC
// tracking is not enabled in the daemon configuration; both collapse into
// the same Data error because from the caller's side both mean the RTC data
// cannot be had right now. The daemon can advertise an rtcdata record and
// still fail to populate it, so the drain failure is deliberate leniency,
// not a transport problem.
func (c *Client) GetRTCData() (*RTCData, error) {
	sess, cleanup, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	count, err := reportRecordCount(sess, reportRTCData)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, errRTCUnavailable()
	}

	if err := fetchRecord(sess, reportRTCData, 0); err != nil {
		return nil, errRTCUnavailable()
	}

	rtc, err := extractRTC(sess)
	if err != nil {
		return nil, err
	}
	if err := validateRTC(rtc); err != nil {
		return nil, err
	}

	logger.SafeDebug("chrony", "RTC query completed", map[string]interface{}{
		"samples": rtc.Samples,
		"offset":  rtc.Offset,
	})
	return rtc, nil
}

func errRTCUnavailable() *Error {
	return newError(KindData, "RTC tracking is not available. Ensure RTC tracking is "+
		"enabled in chronyd configuration (rtcsync or rtcfile directive).")
}

// connect resolves the socket path, opens the socket, and establishes a
// session. The returned cleanup tears the session down and must be called
// on every path out, success or failure.
func (c *Client) connect() (Session, func(), error) {
	t := c.transport
	if t == nil {
		t = registeredTransport()
	}
	if t == nil {
		return nil, nil, newError(KindUnavailable,
			"no chrony transport registered. Build or import a daemon binding "+
				"(for example a libchrony-backed transport) and install it with "+
				"chrony.RegisterTransport.")
	}

	path, err := c.resolveSocketPath()
	if err != nil {
		return nil, nil, err
	}

	fd := t.OpenSocket(path)
	if fd < 0 {
		if fd == errnoPermissionDenied || pathInaccessible(path) {
			return nil, nil, newErrorCode(KindPermission,
				"permission denied accessing "+path+". Run as root or add the user to the chrony group.", fd)
		}
		return nil, nil, newErrorCode(KindConnection,
			"failed to connect to chronyd at "+path+". Is chronyd running?", fd)
	}

	sess, status := t.InitSession(fd)
	if status != 0 || sess == nil {
		return nil, nil, newErrorCode(KindConnection, "failed to initialize chrony session", status)
	}

	cleanup := func() { t.DeinitSession(sess) }
	return sess, cleanup, nil
}

// resolveSocketPath returns the explicit path when one was configured,
// otherwise the first default path that exists.
func (c *Client) resolveSocketPath() (string, error) {
	if c.socketPath != "" {
		return c.socketPath, nil
	}
	for _, path := range DefaultSocketPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", newError(KindConnection,
		"chronyd socket not found. Tried: "+strings.Join(DefaultSocketPaths, ", ")+
			". Is chronyd running?")
}

// pathInaccessible reports whether the path exists but cannot be both read
// and written, the permission signal for a socket owned by the chrony group.
func pathInaccessible(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return unix.Access(path, unix.R_OK|unix.W_OK) != nil
}
