// hostpulse-nodes lists the heartbeat entries currently live in Redis and
// summarizes each node's latest snapshot. Companion tool for fleets
// running agents with heartbeat publishing enabled.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	redisclient "github.com/hostpulse/hostpulse-go/internal/redis"
	"github.com/hostpulse/hostpulse-go/pkg/types"
)

func main() {
	url := os.Getenv("HOSTPULSE_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379"
	}

	client, err := redisclient.NewClient(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()
	keys, err := client.Keys(ctx, "hostpulse:node:*").Result()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d hostpulse nodes:\n\n", len(keys))

	for _, key := range keys {
		val, err := client.Get(ctx, key).Result()
		if err != nil {
			continue
		}

		var snap types.Snapshot
		if err := json.Unmarshal([]byte(val), &snap); err != nil {
			continue
		}

		fmt.Printf("=== %s ===\n", key)
		fmt.Printf("  os: %s  sampled: %s\n", snap.OS, snap.Timestamp.Format("15:04:05"))
		if snap.CPU != nil && snap.CPU.UsagePercent != nil {
			fmt.Printf("  cpu: %.1f%%\n", *snap.CPU.UsagePercent)
		}
		if snap.Memory != nil {
			fmt.Printf("  memory: %.1f%% of %d bytes\n", snap.Memory.UsedPercent, snap.Memory.TotalBytes)
		}
		if snap.Disk != nil {
			fmt.Printf("  disk: %.1f%% of %s\n", snap.Disk.UsedPercent, snap.Disk.Device)
		}
		fmt.Println()
	}
}
