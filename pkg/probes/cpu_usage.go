package probes

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// DefaultCPUSampleInterval is the two-point window used to derive machine
// CPU utilization. It must stay well under the collector's probe deadline.
const DefaultCPUSampleInterval = 250 * time.Millisecond

// CPUUsageProbe derives whole-machine CPU utilization from two reads of
// the kernel's cumulative busy/idle counters separated by a short window.
// The delta is taken per call, so there is no cross-call baseline and no
// counter-wraparound state to carry.
type CPUUsageProbe struct {
	interval time.Duration
}

// NewCPUUsageProbe returns a usage probe sampling over the given window.
// A non-positive window falls back to DefaultCPUSampleInterval.
func NewCPUUsageProbe(interval time.Duration) *CPUUsageProbe {
	if interval <= 0 {
		interval = DefaultCPUSampleInterval
	}
	return &CPUUsageProbe{interval: interval}
}

func (p *CPUUsageProbe) Name() string { return "cpu.usage" }

func (p *CPUUsageProbe) Sample(ctx context.Context) (Update, error) {
	percents, err := cpu.PercentWithContext(ctx, p.interval, false)
	if err != nil {
		return nil, wrapPlatformErr(err)
	}
	if len(percents) == 0 {
		return nil, fmt.Errorf("cpu usage: empty sample")
	}
	usage := types.Round2(types.ClampPercent(percents[0]))
	return func(s *types.Snapshot) {
		s.EnsureCPU().UsagePercent = types.Float(usage)
	}, nil
}
