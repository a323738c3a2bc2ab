// Package collector orchestrates the metric probes into snapshots.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hostpulse/hostpulse-go/pkg/probes"
	"github.com/hostpulse/hostpulse-go/pkg/types"
)

// DefaultProbeTimeout bounds a single probe's sampling time. The CPU usage
// probe blocks for its sampling window, so this must exceed that window.
const DefaultProbeTimeout = 2 * time.Second

// Collector fans out to every registered probe and assembles whatever came
// back into one snapshot. A probe that is unsupported, fails or times out
// costs its field, never the snapshot. Every call re-samples live OS
// state; nothing is cached between calls.
type Collector struct {
	probes  []probes.Probe
	logger  *slog.Logger
	timeout time.Duration
}

// Option is a functional option for configuring the Collector.
type Option func(*Collector)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithProbeTimeout sets the per-probe sampling deadline.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Collector over the given probe set.
func New(ps []probes.Probe, opts ...Option) *Collector {
	c := &Collector{
		probes:  ps,
		logger:  slog.Default(),
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sample runs every probe concurrently under the per-probe deadline and
// merges the results in registration order. The returned snapshot always
// carries a timestamp and an OS name (runtime.GOOS until the identity
// probe refines it), even if every probe fails.
func (c *Collector) Sample(ctx context.Context) *types.Snapshot {
	snap := types.NewSnapshot(time.Now().UTC(), runtime.GOOS)

	updates := make([]probes.Update, len(c.probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range c.probes {
		g.Go(func() error {
			update, err := c.runProbe(gctx, p)
			if err != nil {
				c.logProbeErr(p, err)
				return nil
			}
			updates[i] = update
			return nil
		})
	}
	// Probe failures are absorbed above, so Wait cannot return one.
	_ = g.Wait()

	for _, update := range updates {
		if update != nil {
			update(snap)
		}
	}
	return snap
}

// runProbe enforces the sampling deadline even against a probe that
// ignores its context. A late result is simply discarded; the probe
// goroutine's buffered channel lets it finish without leaking.
func (c *Collector) runProbe(ctx context.Context, p probes.Probe) (probes.Update, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		update probes.Update
		err    error
	}
	done := make(chan result, 1)
	go func() {
		update, err := p.Sample(ctx)
		done <- result{update, err}
	}()

	select {
	case r := <-done:
		return r.update, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Collector) logProbeErr(p probes.Probe, err error) {
	switch {
	case errors.Is(err, probes.ErrUnsupported):
		c.logger.Debug("Probe unsupported on this platform", "probe", p.Name())
	case errors.Is(err, context.DeadlineExceeded):
		c.logger.Warn("Probe timed out", "probe", p.Name(), "timeout", c.timeout)
	case errors.Is(err, context.Canceled):
		// Request went away; nothing to report.
	default:
		c.logger.Warn("Probe failed", "probe", p.Name(), "error", err)
	}
}
