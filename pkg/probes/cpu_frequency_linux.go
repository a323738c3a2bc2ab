//go:build linux

package probes

import (
	"os"
	"strconv"
	"strings"
)

// scaling_cur_freq reports the governor's current clock in kHz. Not every
// kernel exposes cpufreq (VMs and containers often do not).
func currentFrequencyMHz() (float64, error) {
	data, err := os.ReadFile("/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq")
	if err != nil {
		return 0, ErrUnsupported
	}
	khz, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(khz) / 1000, nil
}
