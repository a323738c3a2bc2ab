// Package heartbeat optionally publishes snapshots to Redis so fleet
// dashboards can read node state without polling each agent over HTTP.
package heartbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	redisclient "github.com/hostpulse/hostpulse-go/internal/redis"
	"github.com/hostpulse/hostpulse-go/pkg/types"
)

const (
	keyPrefix = "hostpulse:node:"
	keyTTL    = 30 * time.Second
)

// Sampler produces one fresh snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) *types.Snapshot
}

// Publisher pushes one freshly sampled snapshot per interval to a
// node-scoped key with a TTL, so a dead agent's entry ages out on its own.
// The HTTP path never reads these keys; per-request sampling semantics are
// unaffected.
type Publisher struct {
	client   *redisclient.Client
	sampler  Sampler
	logger   *slog.Logger
	interval time.Duration
	nodeID   string

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// Option is a functional option for configuring the Publisher.
type Option func(*Publisher)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a Publisher. name overrides the node identity; empty name
// falls back to the hostname.
func New(client *redisclient.Client, sampler Sampler, interval time.Duration, name string, opts ...Option) *Publisher {
	p := &Publisher{
		client:   client,
		sampler:  sampler,
		logger:   slog.Default(),
		interval: interval,
		nodeID:   NodeID(name),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NodeID derives the heartbeat identity: the given name, or hostname-pid.
func NodeID(name string) string {
	if name != "" {
		return name
	}
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// Start begins the publish loop.
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("publisher already running")
	}
	p.running = true
	p.mu.Unlock()

	// Connection test is non-fatal; Redis may come up later.
	if err := p.client.Healthy(ctx); err != nil {
		p.logger.Warn("Failed to connect to Redis, will retry on next publish", "error", err)
	}

	p.logger.Info("Heartbeat publisher started", "node", p.nodeID, "interval", p.interval)

	if err := p.publish(ctx); err != nil {
		p.logger.Error("Initial heartbeat failed", "error", err)
	}

	p.wg.Add(1)
	go p.loop(ctx)
	return nil
}

// Stop gracefully stops the publish loop.
func (p *Publisher) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	if err := p.client.Close(); err != nil {
		p.logger.Error("Failed to close Redis connection", "error", err)
	}
	p.logger.Info("Heartbeat publisher stopped")
}

func (p *Publisher) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.publish(ctx); err != nil {
				p.logger.Error("Heartbeat failed", "error", err)
			}
		}
	}
}

func (p *Publisher) publish(ctx context.Context) error {
	snap := p.sampler.Sample(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := keyPrefix + p.nodeID
	if err := p.client.SetWithTTL(ctx, key, data, keyTTL); err != nil {
		return fmt.Errorf("failed to send heartbeat: %w", err)
	}

	p.logger.Debug("Heartbeat sent", "key", key)
	return nil
}
