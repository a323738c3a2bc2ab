// hostpulse-sample runs one collection against the local host and prints
// the snapshot as indented JSON. Debug tool for checking what a platform
// can and cannot provide without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hostpulse/hostpulse-go/pkg/collector"
	"github.com/hostpulse/hostpulse-go/pkg/probes"
)

func main() {
	// Probe errors go to stderr so stdout stays parseable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := collector.New(
		probes.Default(probes.DefaultCPUSampleInterval),
		collector.WithLogger(logger),
	)
	snap := col.Sample(ctx)

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
