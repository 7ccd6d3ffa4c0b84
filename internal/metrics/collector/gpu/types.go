package gpu

import (
	"context"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
)

// Driver is a vendor management session. Init and Shutdown bracket every use;
// the session is process-global, so callers must not overlap Collect calls.
type Driver interface {
	Init() error
	Shutdown() error
	DriverVersion() (string, error)
	DeviceCount() (int, error)
	Device(index int) (Device, error)
}

type Device interface {
	Name() (string, error)
	MemoryInfo() (MemoryInfo, error)
	Temperature() (uint32, error)
	PowerState() (int, error)
	Utilization() (Utilization, error)
	ComputeProcesses() ([]ProcessInfo, error)
}

type MemoryInfo struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// Utilization holds percentages in 0-100.
type Utilization struct {
	GPU    uint32
	Memory uint32
}

type ProcessInfo struct {
	PID        uint32
	UsedMemory uint64
}

type Collector struct {
	log         logger.Logger
	driver      Driver
	lookupOwner func(ctx context.Context, pid int32) (string, error)
}

type GPUSnapshot = domain.GPUSnapshot
type GPUProcess = domain.GPUProcess
