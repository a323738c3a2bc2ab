//go:build !linux

package probes

// Platforms without a readable running-clock counter fall back to the
// nameplate frequency from the CPU inventory.
func currentFrequencyMHz() (float64, error) {
	return 0, ErrUnsupported
}
