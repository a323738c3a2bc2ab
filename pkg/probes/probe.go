// Package probes provides platform readers for the individual host metric
// families. Each probe samples one family and reports it as an update that
// the collector merges into a snapshot, so a platform gap in one family
// never touches the others.
package probes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// ErrUnsupported marks a metric family the host platform cannot provide.
// It is an expected outcome, not a failure: the collector drops the field
// silently instead of logging it.
var ErrUnsupported = errors.New("metric not supported on this platform")

// Update merges one successfully sampled metric family into a snapshot.
// Returning a closure instead of writing to a shared snapshot keeps probes
// free of locking and lets the collector discard results that arrive after
// a deadline.
type Update func(*types.Snapshot)

// Probe reads one metric family from the host.
type Probe interface {
	// Name identifies the metric family in logs, e.g. "cpu.usage".
	Name() string

	// Sample reads the family's current value. It must honor ctx and
	// return promptly on cancellation. ErrUnsupported means the platform
	// lacks the capability; any other error is an unexpected failure.
	Sample(ctx context.Context) (Update, error)
}

// wrapPlatformErr converts gopsutil's not-implemented errors into
// ErrUnsupported. gopsutil keeps its sentinel in an internal package, so
// the message is the only stable signal.
func wrapPlatformErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "not implemented") {
		return ErrUnsupported
	}
	return err
}

// Default returns the standard probe set: CPU usage, CPU frequency,
// memory, disk and OS identity. cpuInterval is the two-point sampling
// window used by the usage probe.
func Default(cpuInterval time.Duration) []Probe {
	return []Probe{
		NewHostInfoProbe(),
		NewCPUUsageProbe(cpuInterval),
		NewCPUFrequencyProbe(),
		NewMemoryProbe(),
		NewDiskProbe(),
	}
}
