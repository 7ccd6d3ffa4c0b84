// Package domain
package domain

import "time"

type CPUSnapshot struct {
	UsageRatio          *float64 `json:"usage_ratio,omitempty"`
	LogicalCoreCount    *uint    `json:"logical_core_count,omitempty"`
	PhysicalCoreCount   *uint    `json:"physical_core_count,omitempty"`
	CurrentFrequencyMHz *float64 `json:"current_frequency_mhz,omitempty"`
}

// Empty reports whether no CPU field could be read.
func (c CPUSnapshot) Empty() bool {
	return c.UsageRatio == nil && c.LogicalCoreCount == nil &&
		c.PhysicalCoreCount == nil && c.CurrentFrequencyMHz == nil
}

type DiskSnapshot struct {
	Path       string  `json:"path"`
	TotalBytes uint64  `json:"total_bytes"`
	UsedBytes  uint64  `json:"used_bytes"`
	FreeBytes  uint64  `json:"free_bytes"`
	UsedRatio  float64 `json:"used_ratio"`
}

type MemorySnapshot struct {
	TotalBytes uint64  `json:"total_bytes"`
	FreeBytes  uint64  `json:"free_bytes"`
	UsedBytes  uint64  `json:"used_bytes"`
	UsedRatio  float64 `json:"used_ratio"`
}

type GPUProcess struct {
	PID             uint   `json:"pid"`
	OwnerUsername   string `json:"owner_username"`
	UsedMemoryBytes uint64 `json:"used_memory_bytes"`
}

type GPUSnapshot struct {
	Index                   int          `json:"index"`
	Name                    string       `json:"name"`
	DriverVersion           string       `json:"driver_version"`
	MemoryTotalBytes        uint64       `json:"memory_total_bytes"`
	MemoryUsedBytes         uint64       `json:"memory_used_bytes"`
	MemoryFreeBytes         uint64       `json:"memory_free_bytes"`
	MemoryFreeRatio         float64      `json:"memory_free_ratio"`
	MemoryUsedRatio         float64      `json:"memory_used_ratio"`
	TemperatureCelsius      int          `json:"temperature_celsius"`
	PowerState              int          `json:"power_state"`
	ComputeUtilizationRatio float64      `json:"compute_utilization_ratio"`
	MemoryUtilizationRatio  float64      `json:"memory_utilization_ratio"`
	Processes               []GPUProcess `json:"processes"`
}

type NetFlowSnapshot struct {
	BytesSentPerSecond     uint64    `json:"bytes_sent_per_second"`
	BytesReceivedPerSecond uint64    `json:"bytes_received_per_second"`
	WindowSeconds          float64   `json:"window_seconds"`
	SampledAt              time.Time `json:"sampled_at"`
}

type HostInfo struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	KernelVersion string `json:"kernel_version"`
	Arch          string `json:"arch"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
}

type Diagnostic struct {
	Sampler string `json:"sampler"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

// SystemSnapshot is the aggregate of every sampler. A nil field means that
// sampler failed or was disabled; the reason is listed in Diagnostics.
type SystemSnapshot struct {
	CPU         *CPUSnapshot     `json:"cpu,omitempty"`
	Disk        *DiskSnapshot    `json:"disk,omitempty"`
	Memory      *MemorySnapshot  `json:"memory,omitempty"`
	GPU         []GPUSnapshot    `json:"gpu"`
	NetFlow     *NetFlowSnapshot `json:"net_flow,omitempty"`
	Host        *HostInfo        `json:"host,omitempty"`
	Diagnostics []Diagnostic     `json:"diagnostics"`
	CollectedAt time.Time        `json:"collected_at"`
}
