package cpu

import (
	"context"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/shirou/gopsutil/v3/cpu"
)

type Collector struct {
	log      logger.Logger
	interval time.Duration
	sysRoot  string

	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	counts  func(ctx context.Context, logical bool) (int, error)
	info    func(ctx context.Context) ([]cpu.InfoStat, error)
}

type CPUSnapshot = domain.CPUSnapshot
