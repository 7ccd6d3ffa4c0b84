// Package cpu
package cpu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/pkg"

	"github.com/shirou/gopsutil/v3/cpu"
)

// NewCollector returns a CPU collector. A zero interval reports usage since
// the previous call; a positive interval blocks for that long and averages.
func NewCollector(log logger.Logger, interval time.Duration) *Collector {
	return &Collector{
		log:      log,
		interval: interval,
		sysRoot:  "/sys",
		percent:  cpu.PercentWithContext,
		counts:   cpu.CountsWithContext,
		info:     cpu.InfoWithContext,
	}
}

// Collect returns every field it could read. Fields the platform does not
// expose are left nil and reported through the returned error; frequency is
// optional and never an error.
func (c *Collector) Collect(ctx context.Context) (CPUSnapshot, error) {
	var snap CPUSnapshot
	var errs []error

	if usage, err := c.readUsage(ctx); err != nil {
		errs = append(errs, err)
	} else {
		snap.UsageRatio = &usage
	}

	if n, err := c.readCount(ctx, true); err != nil {
		errs = append(errs, err)
	} else {
		snap.LogicalCoreCount = &n
	}

	if n, err := c.readCount(ctx, false); err != nil {
		errs = append(errs, err)
	} else {
		snap.PhysicalCoreCount = &n
	}

	if mhz, ok := c.readFrequency(ctx); ok {
		snap.CurrentFrequencyMHz = &mhz
	}

	return snap, errors.Join(errs...)
}

func (c *Collector) readUsage(ctx context.Context) (float64, error) {
	values, err := c.percent(ctx, c.interval, false)
	if err != nil {
		return 0, fmt.Errorf("%w: cpu usage: %v", domain.ErrMetricUnavailable, err)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: cpu usage: no reading", domain.ErrMetricUnavailable)
	}

	return pkg.PercentToRatio(values[0]), nil
}

func (c *Collector) readCount(ctx context.Context, logical bool) (uint, error) {
	kind := "physical"
	if logical {
		kind = "logical"
	}

	n, err := c.counts(ctx, logical)
	if err != nil {
		return 0, fmt.Errorf("%w: %s core count: %v", domain.ErrMetricUnavailable, kind, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s core count not exposed", domain.ErrMetricUnavailable, kind)
	}

	return uint(n), nil
}
