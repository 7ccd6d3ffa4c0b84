package gpu

import (
	"fmt"
	"math"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlDriver struct{}

type nvmlDevice struct {
	dev nvml.Device
}

// NewNVMLDriver returns a Driver backed by the NVIDIA management library.
// Init fails cleanly when libnvidia-ml cannot be loaded.
func NewNVMLDriver() Driver {
	return nvmlDriver{}
}

func nvmlError(op string, ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return fmt.Errorf("nvml %s: %s", op, nvml.ErrorString(ret))
}

func (nvmlDriver) Init() error {
	return nvmlError("init", nvml.Init())
}

func (nvmlDriver) Shutdown() error {
	return nvmlError("shutdown", nvml.Shutdown())
}

func (nvmlDriver) DriverVersion() (string, error) {
	v, ret := nvml.SystemGetDriverVersion()
	return v, nvmlError("driver version", ret)
}

func (nvmlDriver) DeviceCount() (int, error) {
	n, ret := nvml.DeviceGetCount()
	return n, nvmlError("device count", ret)
}

func (nvmlDriver) Device(index int) (Device, error) {
	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if err := nvmlError("device handle", ret); err != nil {
		return nil, err
	}
	return nvmlDevice{dev: dev}, nil
}

func (d nvmlDevice) Name() (string, error) {
	name, ret := d.dev.GetName()
	return name, nvmlError("name", ret)
}

func (d nvmlDevice) MemoryInfo() (MemoryInfo, error) {
	m, ret := d.dev.GetMemoryInfo()
	if err := nvmlError("memory info", ret); err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{Total: m.Total, Used: m.Used, Free: m.Free}, nil
}

func (d nvmlDevice) Temperature() (uint32, error) {
	t, ret := d.dev.GetTemperature(nvml.TEMPERATURE_GPU)
	return t, nvmlError("temperature", ret)
}

func (d nvmlDevice) PowerState() (int, error) {
	p, ret := d.dev.GetPowerState()
	return int(p), nvmlError("power state", ret)
}

func (d nvmlDevice) Utilization() (Utilization, error) {
	u, ret := d.dev.GetUtilizationRates()
	if err := nvmlError("utilization", ret); err != nil {
		return Utilization{}, err
	}
	return Utilization{GPU: u.Gpu, Memory: u.Memory}, nil
}

func (d nvmlDevice) ComputeProcesses() ([]ProcessInfo, error) {
	procs, ret := d.dev.GetComputeRunningProcesses()
	if err := nvmlError("compute processes", ret); err != nil {
		return nil, err
	}

	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		used := p.UsedGpuMemory
		// NVML reports "not available" as the max value under WDDM.
		if used == math.MaxUint64 {
			used = 0
		}
		out = append(out, ProcessInfo{PID: p.Pid, UsedMemory: used})
	}
	return out, nil
}
