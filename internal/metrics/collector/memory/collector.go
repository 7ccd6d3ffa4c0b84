// Package memory
package memory

import (
	"context"
	"fmt"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/pkg"

	"github.com/shirou/gopsutil/v3/mem"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:     log,
		virtual: mem.VirtualMemoryWithContext,
	}
}

// Collect reports physical memory. Free is the OS "available" figure, the
// memory obtainable without swapping.
func (c *Collector) Collect(ctx context.Context) (MemorySnapshot, error) {
	vm, err := c.virtual(ctx)
	if err != nil {
		return MemorySnapshot{}, fmt.Errorf("%w: virtual memory: %v", domain.ErrMetricUnavailable, err)
	}
	if vm == nil || vm.Total == 0 {
		return MemorySnapshot{}, fmt.Errorf("%w: memory total not exposed", domain.ErrMetricUnavailable)
	}

	free := min(vm.Available, vm.Total)
	used := min(vm.Used, vm.Total)

	return MemorySnapshot{
		TotalBytes: vm.Total,
		FreeBytes:  free,
		UsedBytes:  used,
		UsedRatio:  pkg.Ratio(used, vm.Total),
	}, nil
}
