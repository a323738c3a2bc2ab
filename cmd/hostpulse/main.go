// Hostpulse - a minimal host-metrics agent.
//
// Samples CPU, memory, disk and OS identity on demand and serves the
// latest snapshot as JSON for external monitoring dashboards.
//
// Usage:
//
//	PORT=59232 hostpulse
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisclient "github.com/hostpulse/hostpulse-go/internal/redis"
	"github.com/hostpulse/hostpulse-go/pkg/collector"
	"github.com/hostpulse/hostpulse-go/pkg/config"
	"github.com/hostpulse/hostpulse-go/pkg/heartbeat"
	"github.com/hostpulse/hostpulse-go/pkg/probes"
	"github.com/hostpulse/hostpulse-go/pkg/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("hostpulse %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	col := collector.New(
		probes.Default(cfg.CPUSampleInterval),
		collector.WithLogger(logger),
		collector.WithProbeTimeout(cfg.ProbeTimeout),
	)

	srv := server.New(col,
		server.WithLogger(logger),
		server.WithStreamInterval(cfg.StreamInterval),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Handler(),
	}

	var publisher *heartbeat.Publisher
	if cfg.RedisURL != "" {
		client, err := redisclient.NewClient(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to create Redis client", "error", err)
			os.Exit(1)
		}
		publisher = heartbeat.New(client, col, cfg.HeartbeatInterval, cfg.Name,
			heartbeat.WithLogger(logger))
		if err := publisher.Start(ctx); err != nil {
			logger.Error("Failed to start heartbeat publisher", "error", err)
			os.Exit(1)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Hostpulse agent listening", "addr", httpServer.Addr, "version", version)
		errChan <- httpServer.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig)
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	cancel()
	if publisher != nil {
		publisher.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`Usage: hostpulse [options]

Hostpulse samples host metrics (CPU, memory, disk, OS identity) and serves
the latest snapshot as JSON at /api/v1/metrics.

Environment Variables:
  PORT                           HTTP bind port (default: 59232)
  HOSTPULSE_CONFIG               Path to an optional YAML config file
  HOSTPULSE_NAME                 Node name for heartbeat keys (default: hostname)
  HOSTPULSE_REDIS_URL            Enable Redis heartbeat publishing
  HOSTPULSE_HEARTBEAT_INTERVAL   Heartbeat interval in seconds (default: 10)
  HOSTPULSE_PROBE_TIMEOUT        Per-probe deadline (default: 2s)
  HOSTPULSE_CPU_SAMPLE_INTERVAL  CPU usage sampling window (default: 250ms)
  HOSTPULSE_STREAM_INTERVAL      Websocket push interval (default: 5s)

Options:
  -h, --help      Show this help message
  -v, --version   Show version information

Routes:
  GET /api/v1/metrics         Full snapshot
  GET /api/v1/metrics/cpu     CPU family only
  GET /api/v1/metrics/memory  Memory family only
  GET /api/v1/stream          Websocket snapshot stream
  GET /health                 Liveness check

`)
}
