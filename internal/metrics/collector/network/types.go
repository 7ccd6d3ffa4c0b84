package network

import (
	"context"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/net"
)

type Collector struct {
	log    logger.Logger
	window time.Duration
	ignore []string

	counters func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

type NetFlowSnapshot = domain.NetFlowSnapshot

type ifaceCounters struct {
	sent uint64
	recv uint64
}
