package crosscheck

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/maximewewer/chrony-exporter/pkg/testing"
)

func newTestChecker(servers []string, query queryFunc) *Checker {
	c := New(servers, 5*time.Second, 100*time.Millisecond)
	c.query = query
	return c
}

func TestCompare_AgreementScoresHigh(t *testing.T) {
	checker := newTestChecker([]string{"ntp1.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		return testutil.CreateMockNTPResponse(10*time.Millisecond, 2), nil
	})

	// chronyd reports a nearly identical offset
	results, err := checker.Compare(0.011)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "ntp1.example.com", r.Server)
	assert.Equal(t, 10*time.Millisecond, r.NTPOffset)
	assert.InDelta(t, 0.001, r.Divergence.Seconds(), 0.0001)
	assert.Greater(t, r.Coherence, 0.9)
	assert.True(t, r.Within)
}

func TestCompare_DivergenceScoresLow(t *testing.T) {
	checker := newTestChecker([]string{"ntp1.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		return testutil.CreateMockNTPResponse(500*time.Millisecond, 2), nil
	})

	results, err := checker.Compare(0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 500*time.Millisecond, r.Divergence)
	assert.Equal(t, 0.0, r.Coherence)
	assert.False(t, r.Within)
}

func TestCompare_NegativeOffsetsUseAbsoluteDivergence(t *testing.T) {
	checker := newTestChecker([]string{"ntp1.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		return testutil.CreateMockNTPResponse(-20*time.Millisecond, 2), nil
	})

	results, err := checker.Compare(0.030)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 50*time.Millisecond, results[0].Divergence)
	assert.True(t, results[0].Within)
}

func TestCompare_FailedServersSkipped(t *testing.T) {
	calls := 0
	checker := newTestChecker([]string{"bad.example.com", "good.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		calls++
		if server == "bad.example.com" {
			return nil, errors.New("i/o timeout")
		}
		return testutil.CreateMockNTPResponse(5*time.Millisecond, 2), nil
	})

	results, err := checker.Compare(0.005)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good.example.com", results[0].Server)
	assert.Equal(t, 2, calls)
}

func TestCompare_AllServersFail(t *testing.T) {
	checker := newTestChecker([]string{"a.example.com", "b.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		return nil, errors.New("i/o timeout")
	})

	results, err := checker.Compare(0.0)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "timeout")
}

func TestCompare_InvalidResponseSkipped(t *testing.T) {
	checker := newTestChecker([]string{"unsync.example.com"}, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		// Stratum 0 responses fail ntp.Response.Validate
		resp := testutil.CreateMockNTPResponse(0, 0)
		return resp, nil
	})

	results, err := checker.Compare(0.0)
	require.Error(t, err)
	assert.Nil(t, results)
}

func TestCompare_NoServers(t *testing.T) {
	checker := newTestChecker(nil, func(server string, opts ntp.QueryOptions) (*ntp.Response, error) {
		t.Fatal("query should not be called")
		return nil, nil
	})

	results, err := checker.Compare(0.0)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "no crosscheck servers")
}

func TestServers(t *testing.T) {
	servers := []string{"a.example.com", "b.example.com"}
	checker := New(servers, time.Second, time.Millisecond)

	assert.Equal(t, servers, checker.Servers())
}
