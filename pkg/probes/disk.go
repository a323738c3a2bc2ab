package probes

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// DiskProbe reads capacity and usage of the volume hosting the root
// filesystem. Other mounts are deliberately not enumerated.
type DiskProbe struct {
	path string
}

func NewDiskProbe() *DiskProbe {
	return &DiskProbe{path: systemVolumePath()}
}

func (p *DiskProbe) Name() string { return "disk" }

func (p *DiskProbe) Sample(ctx context.Context) (Update, error) {
	du, err := disk.UsageWithContext(ctx, p.path)
	if err != nil {
		return nil, wrapPlatformErr(err)
	}
	if du.Total == 0 {
		return nil, fmt.Errorf("disk %s: zero capacity reported", p.path)
	}
	d := types.NewDiskMetrics(p.path, du.Total, du.Used)
	return func(s *types.Snapshot) {
		s.Disk = d
	}, nil
}

func systemVolumePath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}
