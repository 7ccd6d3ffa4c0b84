package disk

import (
	"context"
	"errors"
	"testing"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootPath(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "windows", want: "C:/"},
		{goos: "linux", want: "/"},
		{goos: "darwin", wantErr: true},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := RootPath(tt.goos)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestCollector(goos, override string, st *disk.UsageStat, err error) (*Collector, *string) {
	var queried string
	c := NewCollector(logger.Discard(), override)
	c.goos = goos
	c.usage = func(ctx context.Context, path string) (*disk.UsageStat, error) {
		queried = path
		return st, err
	}
	return c, &queried
}

func TestCollector_Collect(t *testing.T) {
	st := &disk.UsageStat{
		Total:       1000,
		Used:        400,
		Free:        550,
		UsedPercent: 42.1053,
	}
	c, queried := newTestCollector("linux", "", st, nil)

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/", *queried)
	assert.Equal(t, "/", snap.Path)
	assert.Equal(t, uint64(1000), snap.TotalBytes)
	assert.Equal(t, uint64(400), snap.UsedBytes)
	assert.Equal(t, uint64(550), snap.FreeBytes)
	assert.Equal(t, 0.4211, snap.UsedRatio)

	assert.GreaterOrEqual(t, snap.UsedRatio, 0.0)
	assert.LessOrEqual(t, snap.UsedRatio, 1.0)
	// reserved blocks keep used+free slightly under total
	assert.InDelta(t, float64(snap.TotalBytes), float64(snap.UsedBytes+snap.FreeBytes), 0.1*float64(snap.TotalBytes))
}

func TestCollector_UnsupportedPlatform(t *testing.T) {
	c, queried := newTestCollector("darwin", "", &disk.UsageStat{Total: 1}, nil)

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	assert.Empty(t, *queried)
}

func TestCollector_OverrideBypassesSwitch(t *testing.T) {
	c, queried := newTestCollector("darwin", "/data", &disk.UsageStat{Total: 10, Used: 5, Free: 5, UsedPercent: 50}, nil)

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/data", *queried)
	assert.Equal(t, 0.5, snap.UsedRatio)
}

func TestCollector_UsageError(t *testing.T) {
	c, _ := newTestCollector("windows", "", nil, errors.New("access denied"))

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, domain.ErrMetricUnavailable)
	assert.Contains(t, err.Error(), "C:/")
}
