package stream

import (
	"context"
	"fmt"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/config"
)

// New builds the backend the config selects. Kinesis is the default.
func New(ctx context.Context, cfg config.AppConfig) (Backend, error) {
	switch cfg.Backend {
	case "", "kinesis":
		return NewKinesisBackend(ctx, cfg.Kinesis)
	case "kafka":
		return NewKafkaBackend(cfg.Kafka)
	default:
		return nil, fmt.Errorf("unknown backend %q (want kinesis or kafka)", cfg.Backend)
	}
}
