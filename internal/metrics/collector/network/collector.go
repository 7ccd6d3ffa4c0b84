// Package network
package network

import (
	"context"
	"fmt"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/pkg"

	"github.com/shirou/gopsutil/v3/net"
)

func NewCollector(log logger.Logger, window time.Duration, ignore []string) *Collector {
	if window <= 0 {
		window = time.Second
	}

	return &Collector{
		log:      log,
		window:   window,
		ignore:   ignore,
		counters: net.IOCountersWithContext,
		now:      time.Now,
		wait:     sleepContext,
	}
}

// Collect reads the interface counters twice, one window apart, and reports
// the summed per-second byte rates across all interfaces that are not ignored.
func (c *Collector) Collect(ctx context.Context) (NetFlowSnapshot, error) {
	before, err := c.read(ctx)
	if err != nil {
		return NetFlowSnapshot{}, err
	}
	start := c.now()

	if err := c.wait(ctx, c.window); err != nil {
		return NetFlowSnapshot{}, err
	}

	after, err := c.read(ctx)
	if err != nil {
		return NetFlowSnapshot{}, err
	}
	end := c.now()

	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return NetFlowSnapshot{}, fmt.Errorf("%w: non-positive sampling window %s", domain.ErrMetricUnavailable, elapsed)
	}

	sent, recv := rates(before, after, elapsed)

	return NetFlowSnapshot{
		BytesSentPerSecond:     sent,
		BytesReceivedPerSecond: recv,
		WindowSeconds:          elapsed.Seconds(),
		SampledAt:              end.UTC(),
	}, nil
}

func (c *Collector) read(ctx context.Context) (map[string]ifaceCounters, error) {
	stats, err := c.counters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w: network counters: %v", domain.ErrMetricUnavailable, err)
	}

	out := make(map[string]ifaceCounters, len(stats))
	for _, s := range stats {
		if pkg.MatchAny(s.Name, c.ignore) {
			continue
		}
		out[s.Name] = ifaceCounters{sent: s.BytesSent, recv: s.BytesRecv}
	}

	return out, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
