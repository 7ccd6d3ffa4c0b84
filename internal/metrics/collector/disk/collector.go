// Package disk
package disk

import (
	"context"
	"fmt"
	"runtime"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/pkg"

	"github.com/shirou/gopsutil/v3/disk"
)

// NewCollector returns a disk collector for the platform root. A non-empty
// override replaces the platform switch.
func NewCollector(log logger.Logger, override string) *Collector {
	return &Collector{
		log:      log,
		override: override,
		goos:     runtime.GOOS,
		usage:    disk.UsageWithContext,
	}
}

func (c *Collector) Collect(ctx context.Context) (DiskSnapshot, error) {
	path := c.override
	if path == "" {
		root, err := RootPath(c.goos)
		if err != nil {
			return DiskSnapshot{}, err
		}
		path = root
	}

	st, err := c.usage(ctx, path)
	if err != nil {
		c.log.Debug("failed to read disk usage", "path", path, "error", err)
		return DiskSnapshot{}, fmt.Errorf("%w: disk usage for %s: %v", domain.ErrMetricUnavailable, path, err)
	}
	if st == nil || st.Total == 0 {
		return DiskSnapshot{}, fmt.Errorf("%w: disk %s reports no capacity", domain.ErrMetricUnavailable, path)
	}

	return DiskSnapshot{
		Path:       path,
		TotalBytes: st.Total,
		UsedBytes:  st.Used,
		FreeBytes:  st.Free,
		UsedRatio:  pkg.PercentToRatio(st.UsedPercent),
	}, nil
}
