package emitter

import (
	"context"
	"fmt"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riferrei/srclient"
	"golang.org/x/sync/errgroup"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/avro"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/faker"
	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/stream"
)

var (
	// jsonFast is our high-performance JSON API.
	jsonFast = jsoniter.ConfigFastest
)

// Emitter publishes generated records into a single stream at a fixed
// cadence. A publish failure never stops the loop; the record is dropped,
// the failure is logged and the next iteration proceeds. Delivery is
// best-effort by design.
type Emitter struct {
	Backend      stream.Backend
	Stream       string
	PartitionKey string
	Cadence      time.Duration // 0 means emit as fast as possible
	Count        int64         // records per worker; 0 means unbounded
	Workers      int           // 1 by default; each worker owns its generator and key
	Silent       bool

	// NewGenerator builds one generator per worker so sequence counters
	// stay independent across workers.
	NewGenerator func() faker.Generator

	// SchemaClient switches the wire format to Confluent Avro when set;
	// nil keeps plain JSON.
	SchemaClient *srclient.SchemaRegistryClient
}

// Run emits until ctx is canceled, or until Count records per worker when
// Count is positive. With the defaults it never returns.
func (e *Emitter) Run(ctx context.Context) error {
	if e.Workers <= 1 {
		return e.runWorker(ctx, e.PartitionKey, e.NewGenerator())
	}

	// Each worker gets a distinct partition key so the backend can spread
	// them across shards; counters are per worker as well.
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.Workers; i++ {
		key := fmt.Sprintf("%s-%d", e.PartitionKey, i)
		gen := e.NewGenerator()
		g.Go(func() error {
			return e.runWorker(ctx, key, gen)
		})
	}
	return g.Wait()
}

func (e *Emitter) runWorker(ctx context.Context, partitionKey string, gen faker.Generator) error {
	var attempted int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Next stamps the record with the send-time timestamp and advances
		// the sequence counters whether or not the publish below succeeds.
		record := gen.Next()
		attempted++

		payload, err := e.encode(record)
		if err != nil {
			log.Printf("[Emitter] Failed to encode record for stream '%s': %v", e.Stream, err)
		} else if err := e.Backend.Publish(ctx, e.Stream, payload, partitionKey); err != nil {
			log.Printf("[Emitter] Failed to put record into stream '%s': %v", e.Stream, err)
		} else if !e.Silent {
			log.Printf("[Emitter] Put record %d (%d bytes) into stream '%s' with key '%s'",
				attempted, len(payload), e.Stream, partitionKey)
		}

		if e.Count > 0 && attempted >= e.Count {
			return nil
		}

		if e.Cadence > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.Cadence):
			}
		}
	}
}

func (e *Emitter) encode(record any) ([]byte, error) {
	if e.SchemaClient != nil {
		return avro.Encode(e.SchemaClient, e.Stream+"-value", record)
	}
	return jsonFast.Marshal(record)
}
