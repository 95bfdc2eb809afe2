package main

import (
	"context"
	"flag"
	"log"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/config"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/stream"
)

// Deletes one stream, or every stream in the region when -stream is omitted.
func main() {
	var (
		streamName = flag.String("stream", "", "The stream to delete; empty deletes all")
		region     = flag.String("region", "", "Region of the streams (default us-east-1)")
		backend    = flag.String("backend", "", "Streaming backend: 'kinesis' (default) or 'kafka'")
		configPath = flag.String("config", "", "Optional YAML config file")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		cfg = config.Load(*configPath)
	}
	if *region != "" {
		cfg.Kinesis.Region = *region
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	ctx := context.Background()

	b, err := stream.New(ctx, cfg)
	if err != nil {
		log.Fatalf("[Sweeper] Failed to create backend: %v", err)
	}

	names, err := b.List(ctx)
	if err != nil {
		log.Fatalf("[Sweeper] Failed to list streams: %v", err)
	}

	for _, name := range names {
		if *streamName != "" && *streamName != name {
			continue
		}
		log.Printf("[Sweeper] Deleting stream '%s'", name)
		if err := b.Delete(ctx, name); err != nil {
			log.Printf("[Sweeper] Failed to delete stream '%s': %v", name, err)
		}
	}
}
