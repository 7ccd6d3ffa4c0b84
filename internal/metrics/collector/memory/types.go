package memory

import (
	"context"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/mem"
)

type Collector struct {
	log     logger.Logger
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

type MemorySnapshot = domain.MemorySnapshot
