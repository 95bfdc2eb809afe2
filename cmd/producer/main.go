package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/riferrei/srclient"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/config"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/emitter"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/faker"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/stream"
)

func main() {
	var (
		streamName = flag.String("stream", "", "The stream to publish into (required)")
		region     = flag.String("region", "", "Region to create the stream in (default us-east-1)")
		periodMs   = flag.Int("period", -1, "Milliseconds to wait between emissions; unset sends as fast as possible")
		mode       = flag.String("mode", "random", "Payload variant: 'random' (weighted single sample) or 'encoder' (fixed batch)")
		opm        = flag.Int("opm", 1, "Objects per message in encoder mode")
		count      = flag.Int64("count", 0, "Records to send before exiting; 0 runs forever")
		workers    = flag.Int("workers", 1, "Concurrent producers, each with its own partition key and counters")
		silent     = flag.Bool("silent", false, "Mute the per-record log line")
		backend    = flag.String("backend", "", "Streaming backend: 'kinesis' (default) or 'kafka'")
		configPath = flag.String("config", "", "Optional YAML config file")
	)
	flag.Parse()

	if *streamName == "" {
		log.Fatal("[Producer] -stream is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg = config.Load(*configPath)
	}
	// Flags win over the config file.
	if *region != "" {
		cfg.Kinesis.Region = *region
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	var cadence time.Duration
	if *periodMs > 0 {
		cadence = time.Duration(*periodMs) * time.Millisecond
	}

	newGenerator, err := generatorFactory(*mode, *opm)
	if err != nil {
		log.Fatalf("[Producer] %v", err)
	}

	ctx := context.Background()

	log.Printf("[Producer] Connecting to stream '%s' in region '%s'", *streamName, cfg.Kinesis.Region)
	b, err := stream.New(ctx, cfg)
	if err != nil {
		log.Fatalf("[Producer] Failed to create backend: %v", err)
	}

	provisioner := stream.NewProvisioner(b, cfg.Emitter.PollInterval)
	if err := provisioner.EnsureReady(ctx, *streamName); err != nil {
		if errors.Is(err, stream.ErrStreamDeleting) {
			log.Printf("[Producer] The stream '%s' is being deleted, please rerun.", *streamName)
			return
		}
		log.Fatalf("[Producer] Failed to provision stream '%s': %v", *streamName, err)
	}

	var schemaClient *srclient.SchemaRegistryClient
	if cfg.Kafka.UseAvro && cfg.Kafka.SchemaRegistry != "" {
		log.Printf("[Producer] Registering schemas at %s", cfg.Kafka.SchemaRegistry)
		faker.RegisterSchemas(cfg.Kafka.SchemaRegistry, *streamName, *mode)
		schemaClient = srclient.CreateSchemaRegistryClient(cfg.Kafka.SchemaRegistry)
	}

	e := &emitter.Emitter{
		Backend:      b,
		Stream:       *streamName,
		PartitionKey: cfg.Emitter.PartitionKey,
		Cadence:      cadence,
		Count:        *count,
		Workers:      *workers,
		Silent:       *silent,
		NewGenerator: newGenerator,
		SchemaClient: schemaClient,
	}

	log.Println("[Producer] Starting event generation...")
	if err := e.Run(ctx); err != nil {
		log.Fatalf("[Producer] Emission stopped: %v", err)
	}
}

func generatorFactory(mode string, objectsPerMessage int) (func() faker.Generator, error) {
	switch mode {
	case "random":
		return func() faker.Generator { return faker.NewRandomGenerator() }, nil
	case "encoder":
		return func() faker.Generator { return faker.NewEncoderBatchGenerator(objectsPerMessage) }, nil
	default:
		return nil, errors.New("unknown mode, want 'random' or 'encoder'")
	}
}
