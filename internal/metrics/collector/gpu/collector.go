// Package gpu
package gpu

import (
	"context"
	"errors"
	"fmt"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
	"hostpulse/internal/pkg"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:         log,
		driver:      NewNVMLDriver(),
		lookupOwner: lookupOwner,
	}
}

// Collect opens a driver session, enumerates every device and closes the
// session on all exit paths. A driver that cannot be initialized means no
// GPU and yields an empty list without error. Devices whose queries fail are
// left out and reported in the returned error; the others are still listed.
func (c *Collector) Collect(ctx context.Context) (gpus []GPUSnapshot, err error) {
	gpus = make([]GPUSnapshot, 0)

	if initErr := c.driver.Init(); initErr != nil {
		c.log.Debug("gpu: vendor interface unavailable", "error", initErr)
		return gpus, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, fmt.Errorf("%w: panic during enumeration: %v", domain.ErrVendorInterface, r))
		}
	}()
	defer func() {
		if shutdownErr := c.driver.Shutdown(); shutdownErr != nil {
			c.log.Warn("gpu: vendor interface shutdown failed", "error", shutdownErr)
		}
	}()

	var errs []error

	version, verErr := c.driver.DriverVersion()
	if verErr != nil {
		errs = append(errs, fmt.Errorf("%w: driver version: %v", domain.ErrVendorInterface, verErr))
	}

	count, countErr := c.driver.DeviceCount()
	if countErr != nil {
		errs = append(errs, fmt.Errorf("%w: device count: %v", domain.ErrVendorInterface, countErr))
		return gpus, errors.Join(errs...)
	}

	c.log.Debug("gpu: devices detected", "count", count, "driver_version", version)

	for i := range count {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		snap, devErr := c.readDevice(ctx, i)
		if devErr != nil {
			c.log.Warn("gpu: device query failed", "index", i, "error", devErr)
			errs = append(errs, fmt.Errorf("gpu %d: %w", i, devErr))
			continue
		}

		snap.DriverVersion = version
		gpus = append(gpus, snap)
	}

	return gpus, errors.Join(errs...)
}

func (c *Collector) readDevice(ctx context.Context, index int) (GPUSnapshot, error) {
	dev, err := c.driver.Device(index)
	if err != nil {
		return GPUSnapshot{}, deviceError("handle", err)
	}

	name, err := dev.Name()
	if err != nil {
		return GPUSnapshot{}, deviceError("name", err)
	}

	memInfo, err := dev.MemoryInfo()
	if err != nil {
		return GPUSnapshot{}, deviceError("memory info", err)
	}

	temp, err := dev.Temperature()
	if err != nil {
		return GPUSnapshot{}, deviceError("temperature", err)
	}

	pstate, err := dev.PowerState()
	if err != nil {
		return GPUSnapshot{}, deviceError("power state", err)
	}

	util, err := dev.Utilization()
	if err != nil {
		return GPUSnapshot{}, deviceError("utilization", err)
	}

	procs, err := dev.ComputeProcesses()
	if err != nil {
		return GPUSnapshot{}, deviceError("compute processes", err)
	}

	return GPUSnapshot{
		Index:                   index,
		Name:                    name,
		MemoryTotalBytes:        memInfo.Total,
		MemoryUsedBytes:         memInfo.Used,
		MemoryFreeBytes:         memInfo.Free,
		MemoryFreeRatio:         pkg.Ratio(memInfo.Free, memInfo.Total),
		MemoryUsedRatio:         pkg.Ratio(memInfo.Used, memInfo.Total),
		TemperatureCelsius:      int(temp),
		PowerState:              pstate,
		ComputeUtilizationRatio: pkg.PercentToRatio(float64(util.GPU)),
		MemoryUtilizationRatio:  pkg.PercentToRatio(float64(util.Memory)),
		Processes:               c.resolveProcesses(ctx, procs),
	}, nil
}

// resolveProcesses keeps the driver order and drops entries whose owner
// cannot be resolved.
func (c *Collector) resolveProcesses(ctx context.Context, procs []ProcessInfo) []GPUProcess {
	out := make([]GPUProcess, 0, len(procs))

	for _, p := range procs {
		owner, err := c.lookupOwner(ctx, int32(p.PID))
		if err != nil {
			c.log.Debug("gpu: process owner lookup failed", "pid", p.PID, "error", err)
			continue
		}

		out = append(out, GPUProcess{
			PID:             uint(p.PID),
			OwnerUsername:   owner,
			UsedMemoryBytes: p.UsedMemory,
		})
	}

	return out
}

func deviceError(op string, err error) error {
	return fmt.Errorf("%w: %w: %s: %v", domain.ErrMetricUnavailable, domain.ErrVendorInterface, op, err)
}
