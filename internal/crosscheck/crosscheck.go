// Package crosscheck validates chronyd tracking data against direct NTP queries.
//
// chronyd is the authoritative time source on the host, but a daemon that is
// misconfigured or isolated from its sources can report a confident offset
// that drifts from the rest of the world. Querying independent NTP servers
// and comparing their offsets against the chronyd tracking offset gives an
// external sanity signal.
package crosscheck

import (
	"errors"
	"time"

	"github.com/beevik/ntp"

	"github.com/maximewewer/chrony-exporter/pkg/logger"
	"github.com/maximewewer/chrony-exporter/pkg/mathutil"
)

// queryFunc performs a single NTP query. Replaced in tests.
type queryFunc func(server string, opts ntp.QueryOptions) (*ntp.Response, error)

// Checker compares chronyd tracking offsets with direct NTP measurements
type Checker struct {
	servers       []string
	timeout       time.Duration
	maxDivergence time.Duration
	query         queryFunc
}

// Result holds the outcome of one server comparison
type Result struct {
	Server     string
	NTPOffset  time.Duration // clock offset reported by the direct query
	Divergence time.Duration // absolute difference against the chronyd offset
	Coherence  float64       // 0-1, 1 means chronyd and the server fully agree
	Within     bool          // divergence within the configured bound
}

// New creates a Checker querying the given servers
func New(servers []string, timeout, maxDivergence time.Duration) *Checker {
	return &Checker{
		servers:       servers,
		timeout:       timeout,
		maxDivergence: maxDivergence,
		query:         ntp.QueryWithOptions,
	}
}

// Servers returns the configured server list
func (c *Checker) Servers() []string {
	return c.servers
}

// Compare queries each configured server and compares its clock offset
// against the chronyd tracking offset (in seconds). Servers that fail to
// answer are skipped; an error is returned only when every server failed.
func (c *Checker) Compare(chronyOffsetSeconds float64) ([]Result, error) {
	chronyOffset := time.Duration(chronyOffsetSeconds * float64(time.Second))

	results := make([]Result, 0, len(c.servers))
	var lastErr error

	for _, server := range c.servers {
		resp, err := c.query(server, ntp.QueryOptions{Timeout: c.timeout})
		if err != nil {
			logger.SafeWarn("crosscheck", "NTP query failed", map[string]interface{}{
				"server": server,
				"error":  err.Error(),
			})
			lastErr = err
			continue
		}
		if err := resp.Validate(); err != nil {
			logger.SafeWarn("crosscheck", "NTP response rejected", map[string]interface{}{
				"server": server,
				"error":  err.Error(),
			})
			lastErr = err
			continue
		}

		results = append(results, c.compare(server, chronyOffset, resp))
	}

	if len(results) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, errors.New("no crosscheck servers configured")
	}

	return results, nil
}

// compare builds the Result for a single server response
func (c *Checker) compare(server string, chronyOffset time.Duration, resp *ntp.Response) Result {
	divergence := mathutil.AbsDuration(resp.ClockOffset - chronyOffset)

	// Linear falloff: zero divergence scores 1.0, the configured maximum
	// and anything beyond scores 0.
	ratio := float64(divergence) / float64(c.maxDivergence)
	coherence := mathutil.Clamp(1.0-ratio, 0.0, 1.0)

	result := Result{
		Server:     server,
		NTPOffset:  resp.ClockOffset,
		Divergence: divergence,
		Coherence:  coherence,
		Within:     divergence <= c.maxDivergence,
	}

	logger.SafeDebug("crosscheck", "Server compared", map[string]interface{}{
		"server":     server,
		"ntp_offset": resp.ClockOffset.Seconds(),
		"divergence": divergence.Seconds(),
		"coherence":  coherence,
	})

	return result
}
