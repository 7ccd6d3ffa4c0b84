package network

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(samples [][]net.IOCountersStat, elapsed time.Duration) *Collector {
	c := NewCollector(logger.Discard(), time.Second, []string{"lo", "docker*"})

	calls := 0
	c.counters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
		s := samples[calls]
		calls++
		return s, nil
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := 0
	c.now = func() time.Time {
		t := start.Add(time.Duration(ticks) * elapsed)
		ticks++
		return t
	}
	c.wait = func(ctx context.Context, d time.Duration) error { return nil }
	return c
}

func TestCollector_Collect(t *testing.T) {
	c := newTestCollector([][]net.IOCountersStat{
		{{Name: "eth0", BytesSent: 1000, BytesRecv: 4000}},
		{{Name: "eth0", BytesSent: 1500, BytesRecv: 6000}},
	}, time.Second)

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(500), snap.BytesSentPerSecond)
	assert.Equal(t, uint64(2000), snap.BytesReceivedPerSecond)
	assert.Equal(t, 1.0, snap.WindowSeconds)
}

func TestCollector_SumsInterfacesAndSkipsIgnored(t *testing.T) {
	c := newTestCollector([][]net.IOCountersStat{
		{
			{Name: "eth0", BytesSent: 0, BytesRecv: 0},
			{Name: "wlan0", BytesSent: 100, BytesRecv: 100},
			{Name: "lo", BytesSent: 0, BytesRecv: 0},
			{Name: "docker0", BytesSent: 0, BytesRecv: 0},
		},
		{
			{Name: "eth0", BytesSent: 1000, BytesRecv: 2000},
			{Name: "wlan0", BytesSent: 1100, BytesRecv: 100},
			{Name: "lo", BytesSent: 99999, BytesRecv: 99999},
			{Name: "docker0", BytesSent: 99999, BytesRecv: 99999},
		},
	}, 2*time.Second)

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), snap.BytesSentPerSecond)
	assert.Equal(t, uint64(1000), snap.BytesReceivedPerSecond)
	assert.Equal(t, 2.0, snap.WindowSeconds)
}

func TestCollector_CounterWrap(t *testing.T) {
	c := newTestCollector([][]net.IOCountersStat{
		{{Name: "eth0", BytesSent: 5000, BytesRecv: 100}},
		{{Name: "eth0", BytesSent: 200, BytesRecv: 600}},
	}, time.Second)

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.BytesSentPerSecond)
	assert.Equal(t, uint64(500), snap.BytesReceivedPerSecond)
}

func TestCollector_CountersError(t *testing.T) {
	c := NewCollector(logger.Discard(), time.Second, nil)
	c.counters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
		return nil, errors.New("proc not mounted")
	}

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, domain.ErrMetricUnavailable)
}

func TestCollector_Cancelled(t *testing.T) {
	c := NewCollector(logger.Discard(), time.Hour, nil)
	c.counters = func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
