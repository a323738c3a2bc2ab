package probes

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// CPUFrequencyProbe reads processor clock speed and core topology. The
// nameplate clock comes from the platform CPU inventory; the live clock
// comes from a per-platform source (sysfs on Linux) and falls back to the
// nameplate value where the platform keeps no running counter.
type CPUFrequencyProbe struct{}

func NewCPUFrequencyProbe() *CPUFrequencyProbe { return &CPUFrequencyProbe{} }

func (p *CPUFrequencyProbe) Name() string { return "cpu.frequency" }

func (p *CPUFrequencyProbe) Sample(ctx context.Context) (Update, error) {
	var base float64
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		// An unimplemented inventory is fine as long as the live
		// clock source still works.
		if werr := wrapPlatformErr(err); !errors.Is(werr, ErrUnsupported) {
			return nil, werr
		}
	}
	for _, info := range infos {
		if info.Mhz > base {
			base = info.Mhz
		}
	}

	current, curErr := currentFrequencyMHz()
	if curErr != nil || current <= 0 {
		current = base
	}
	if current <= 0 {
		// Neither source produced a clock; never fabricate one.
		return nil, ErrUnsupported
	}

	logical, _ := cpu.CountsWithContext(ctx, true)
	physical, _ := cpu.CountsWithContext(ctx, false)

	freq := types.Round2(current)
	baseFreq := types.Round2(base)
	return func(s *types.Snapshot) {
		c := s.EnsureCPU()
		c.FrequencyMHz = types.Float(freq)
		if baseFreq > 0 {
			c.BaseFrequencyMHz = types.Float(baseFreq)
		}
		if logical > 0 {
			c.LogicalCores = logical
		}
		if physical > 0 {
			c.PhysicalCores = physical
		}
	}, nil
}
