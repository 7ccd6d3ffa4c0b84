// Package host
package host

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/host"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{log: log, info: host.InfoWithContext}
}

func (c *Collector) Collect(ctx context.Context) (HostInfo, error) {
	stat, err := c.info(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("%w: host info: %v", domain.ErrMetricUnavailable, err)
	}

	info := HostInfo{
		Hostname:      stat.Hostname,
		OS:            stat.OS,
		Platform:      strings.TrimSpace(stat.Platform + " " + stat.PlatformVersion),
		KernelVersion: stat.KernelVersion,
		Arch:          stat.KernelArch,
		UptimeSeconds: stat.Uptime,
	}

	if info.Hostname == "" {
		c.log.Debug("failed to get hostname")
		info.Hostname = "unknown"
	}
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	return info, nil
}
