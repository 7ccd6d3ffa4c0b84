package disk

import (
	"context"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/disk"
)

type Collector struct {
	log      logger.Logger
	override string
	goos     string

	usage func(ctx context.Context, path string) (*disk.UsageStat, error)
}

type DiskSnapshot = domain.DiskSnapshot
