// Package metrics
package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hostpulse/internal/config"
	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/metrics/collector/cpu"
	"hostpulse/internal/metrics/collector/disk"
	"hostpulse/internal/metrics/collector/gpu"
	"hostpulse/internal/metrics/collector/host"
	"hostpulse/internal/metrics/collector/memory"
	"hostpulse/internal/metrics/collector/network"
)

const (
	SamplerCPU     = "cpu"
	SamplerDisk    = "disk"
	SamplerMemory  = "memory"
	SamplerGPU     = "gpu"
	SamplerNetwork = "network"
	SamplerHost    = "host"
)

type cpuCollector interface {
	Collect(ctx context.Context) (domain.CPUSnapshot, error)
}

type diskCollector interface {
	Collect(ctx context.Context) (domain.DiskSnapshot, error)
}

type memoryCollector interface {
	Collect(ctx context.Context) (domain.MemorySnapshot, error)
}

type gpuCollector interface {
	Collect(ctx context.Context) ([]domain.GPUSnapshot, error)
}

type networkCollector interface {
	Collect(ctx context.Context) (domain.NetFlowSnapshot, error)
}

type hostCollector interface {
	Collect(ctx context.Context) (domain.HostInfo, error)
}

type SamplerConfig struct {
	CPUScanInterval time.Duration
	NetSampleWindow time.Duration
	NetIgnoreIfaces []string
	DiskPath        string
	GPUEnabled      bool
}

func SamplerConfigFrom(cfg *config.Config) SamplerConfig {
	return SamplerConfig{
		CPUScanInterval: cfg.CPUScanInterval,
		NetSampleWindow: cfg.NetSampleWindow,
		NetIgnoreIfaces: cfg.NetIgnoreIfaces,
		DiskPath:        cfg.DiskPath,
		GPUEnabled:      cfg.GPUEnabled,
	}
}

// Sampler composes every collector into a SystemSnapshot. It is safe for
// concurrent use; GPU sampling is serialized because the driver session is
// process-global.
type Sampler struct {
	cpu     cpuCollector
	disk    diskCollector
	memory  memoryCollector
	gpu     gpuCollector
	network networkCollector
	host    hostCollector

	gpuEnabled bool
	gpuMu      sync.Mutex

	log logger.Logger
	now func() time.Time
}

func NewSampler(cfg SamplerConfig, log logger.Logger) *Sampler {
	return &Sampler{
		cpu:     cpu.NewCollector(log, cfg.CPUScanInterval),
		disk:    disk.NewCollector(log, cfg.DiskPath),
		memory:  memory.NewCollector(log),
		gpu:     gpu.NewCollector(log),
		network: network.NewCollector(log, cfg.NetSampleWindow, cfg.NetIgnoreIfaces),
		host:    host.NewCollector(log),

		gpuEnabled: cfg.GPUEnabled,

		log: log,
		now: time.Now,
	}
}

// Collect runs every collector in turn. A failing collector is recorded as a
// diagnostic and never stops the others; partial CPU and GPU values are kept.
func (s *Sampler) Collect(ctx context.Context) domain.SystemSnapshot {
	snap := domain.SystemSnapshot{
		GPU:         []domain.GPUSnapshot{},
		Diagnostics: []domain.Diagnostic{},
	}

	report := func(name string, err error) {
		s.log.Warn("collector", "name", name, "error", err)
		snap.Diagnostics = append(snap.Diagnostics, domain.NewDiagnostic(name, err))
	}

	cpuSnap, err := s.CPU(ctx)
	if err != nil {
		report(SamplerCPU, err)
	}
	if !cpuSnap.Empty() {
		snap.CPU = &cpuSnap
	}

	if val, err := s.Disk(ctx); err != nil {
		report(SamplerDisk, err)
	} else {
		snap.Disk = &val
	}

	if val, err := s.Memory(ctx); err != nil {
		report(SamplerMemory, err)
	} else {
		snap.Memory = &val
	}

	gpus, err := s.GPU(ctx)
	if err != nil {
		report(SamplerGPU, err)
	}
	if gpus != nil {
		snap.GPU = gpus
	}

	if val, err := s.NetFlow(ctx); err != nil {
		report(SamplerNetwork, err)
	} else {
		snap.NetFlow = &val
	}

	if val, err := s.Host(ctx); err != nil {
		report(SamplerHost, err)
	} else {
		snap.Host = &val
	}

	snap.CollectedAt = s.now().UTC()
	return snap
}

func (s *Sampler) CPU(ctx context.Context) (domain.CPUSnapshot, error) {
	return guard(SamplerCPU, func() (domain.CPUSnapshot, error) { return s.cpu.Collect(ctx) })
}

func (s *Sampler) Disk(ctx context.Context) (domain.DiskSnapshot, error) {
	return guard(SamplerDisk, func() (domain.DiskSnapshot, error) { return s.disk.Collect(ctx) })
}

func (s *Sampler) Memory(ctx context.Context) (domain.MemorySnapshot, error) {
	return guard(SamplerMemory, func() (domain.MemorySnapshot, error) { return s.memory.Collect(ctx) })
}

// GPU returns an empty list when GPU sampling is disabled.
func (s *Sampler) GPU(ctx context.Context) ([]domain.GPUSnapshot, error) {
	if !s.gpuEnabled {
		return []domain.GPUSnapshot{}, nil
	}

	s.gpuMu.Lock()
	defer s.gpuMu.Unlock()

	return guard(SamplerGPU, func() ([]domain.GPUSnapshot, error) { return s.gpu.Collect(ctx) })
}

func (s *Sampler) NetFlow(ctx context.Context) (domain.NetFlowSnapshot, error) {
	return guard(SamplerNetwork, func() (domain.NetFlowSnapshot, error) { return s.network.Collect(ctx) })
}

func (s *Sampler) Host(ctx context.Context) (domain.HostInfo, error) {
	return guard(SamplerHost, func() (domain.HostInfo, error) { return s.host.Collect(ctx) })
}

func guard[T any](name string, fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s collector panicked: %v", name, r)
		}
	}()

	return fn()
}
