package probes

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// MemoryProbe reads physical memory usage. "Used" is total minus
// available, so reclaimable cache and buffers do not count as used — the
// number dashboards expect.
type MemoryProbe struct{}

func NewMemoryProbe() *MemoryProbe { return &MemoryProbe{} }

func (p *MemoryProbe) Name() string { return "memory" }

func (p *MemoryProbe) Sample(ctx context.Context) (Update, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, wrapPlatformErr(err)
	}
	if vm.Total == 0 {
		return nil, fmt.Errorf("memory: zero total reported")
	}
	m := types.NewMemoryMetrics(vm.Total, vm.Available)
	return func(s *types.Snapshot) {
		s.Memory = m
	}, nil
}
