package probes

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// HostInfoProbe reads the human-readable platform identity, e.g.
// "ubuntu 22.04" or "darwin 14.5". Static metadata; a failure here means
// platform detection itself broke and is reported as an error.
type HostInfoProbe struct{}

func NewHostInfoProbe() *HostInfoProbe { return &HostInfoProbe{} }

func (p *HostInfoProbe) Name() string { return "host.info" }

func (p *HostInfoProbe) Sample(ctx context.Context) (Update, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}
	name := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if name == "" {
		name = info.OS
	}
	if name == "" {
		return nil, fmt.Errorf("host info: empty platform identity")
	}
	return func(s *types.Snapshot) {
		s.OS = name
	}, nil
}
