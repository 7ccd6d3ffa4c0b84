package host

import (
	"context"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/host"
)

type Collector struct {
	log  logger.Logger
	info func(ctx context.Context) (*host.InfoStat, error)
}

type HostInfo = domain.HostInfo
