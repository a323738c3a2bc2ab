// Package types defines the wire types for one host-metrics snapshot.
// Field names are part of the public JSON contract consumed by dashboards.
package types

import "time"

// Snapshot is one point-in-time bundle of host metrics. It is built once
// per collection, never mutated afterwards, and discarded after encoding.
// Metric families a platform cannot provide are nil and omitted from the
// wire representation rather than encoded as null or zero.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	OS        string         `json:"os"`
	CPU       *CPUMetrics    `json:"cpu,omitempty"`
	Memory    *MemoryMetrics `json:"memory,omitempty"`
	Disk      *DiskMetrics   `json:"disk,omitempty"`
}

// CPUMetrics contains processor utilization and clock data.
// UsagePercent and FrequencyMHz are pointers so an unsupported reading
// disappears from the output instead of reporting a misleading zero.
type CPUMetrics struct {
	UsagePercent     *float64 `json:"usage_percent,omitempty"`      // 0-100, whole machine
	FrequencyMHz     *float64 `json:"frequency_mhz,omitempty"`      // current clock
	BaseFrequencyMHz *float64 `json:"base_frequency_mhz,omitempty"` // nameplate clock
	LogicalCores     int      `json:"logical_cores,omitempty"`
	PhysicalCores    int      `json:"physical_cores,omitempty"`
}

// MemoryMetrics contains physical memory usage. Used excludes memory the
// OS reports as reclaimable (cache, buffers).
type MemoryMetrics struct {
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	UsedPercent    float64 `json:"used_percent"`
}

// DiskMetrics describes the volume hosting the root filesystem only.
type DiskMetrics struct {
	Device      string  `json:"device"`
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// NewSnapshot returns a snapshot stamped with now and the given OS name.
func NewSnapshot(now time.Time, osName string) *Snapshot {
	return &Snapshot{Timestamp: now, OS: osName}
}

// EnsureCPU returns the snapshot's CPU block, allocating it on first use so
// independent probes can each fill their part of it.
func (s *Snapshot) EnsureCPU() *CPUMetrics {
	if s.CPU == nil {
		s.CPU = &CPUMetrics{}
	}
	return s.CPU
}

// NewMemoryMetrics derives used bytes and used percent from total and
// available physical memory.
func NewMemoryMetrics(total, available uint64) *MemoryMetrics {
	if available > total {
		available = total
	}
	used := total - available
	m := &MemoryMetrics{
		TotalBytes:     total,
		AvailableBytes: available,
		UsedBytes:      used,
	}
	if total > 0 {
		m.UsedPercent = Round2(float64(used) / float64(total) * 100)
	}
	return m
}

// NewDiskMetrics derives used percent from total and used volume bytes.
func NewDiskMetrics(device string, total, used uint64) *DiskMetrics {
	if used > total {
		used = total
	}
	d := &DiskMetrics{
		Device:     device,
		TotalBytes: total,
		UsedBytes:  used,
	}
	if total > 0 {
		d.UsedPercent = Round2(float64(used) / float64(total) * 100)
	}
	return d
}

// ClampPercent forces a percentage into [0,100]. Counter deltas can briefly
// overshoot on some kernels.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round2 rounds a float64 to two decimal places.
func Round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// Float returns a pointer to v, for optional wire fields.
func Float(v float64) *float64 {
	return &v
}
