package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/config"
)

const (
	batchTimeoutMillis = 100 // Batch timeout in milliseconds
	replicationFactor  = 1   // Single-broker friendly default
)

// KafkaBackend satisfies the Backend contract against a self-hosted Kafka
// cluster, mapping one stream to one topic. Kafka has no CREATING/DELETING
// visibility from the client side, so a topic that exists is reported ACTIVE.
type KafkaBackend struct {
	client *kafka.Client
	writer *kafka.Writer
}

// NewKafkaBackend creates a broker-backed stream backend.
func NewKafkaBackend(cfg config.KafkaConfig) (*KafkaBackend, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka backend requires at least one broker")
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Balancer:     &kafka.Hash{}, // partition key routing
		BatchTimeout: batchTimeoutMillis * time.Millisecond,
		// RequiredAcks is an int, so cast the constant.
		RequiredAcks: int(kafka.RequireAll),
	})

	return &KafkaBackend{
		client: &kafka.Client{Addr: kafka.TCP(cfg.Brokers...)},
		writer: w,
	}, nil
}

func (b *KafkaBackend) Describe(ctx context.Context, name string) (Status, error) {
	resp, err := b.client.Metadata(ctx, &kafka.MetadataRequest{
		Topics: []string{name},
	})
	if err != nil {
		return "", fmt.Errorf("describe topic %q: %w", name, err)
	}
	for _, t := range resp.Topics {
		if t.Name != name {
			continue
		}
		if t.Error != nil {
			if errors.Is(t.Error, kafka.UnknownTopicOrPartition) {
				return "", fmt.Errorf("describe topic %q: %w", name, ErrNotFound)
			}
			return "", fmt.Errorf("describe topic %q: %w", name, t.Error)
		}
		return StatusActive, nil
	}
	return "", fmt.Errorf("describe topic %q: %w", name, ErrNotFound)
}

func (b *KafkaBackend) Create(ctx context.Context, name string, shards int32) error {
	resp, err := b.client.CreateTopics(ctx, &kafka.CreateTopicsRequest{
		Topics: []kafka.TopicConfig{{
			Topic:             name,
			NumPartitions:     int(shards),
			ReplicationFactor: replicationFactor,
		}},
	})
	if err != nil {
		return fmt.Errorf("create topic %q: %w", name, err)
	}
	if topicErr := resp.Errors[name]; topicErr != nil {
		return fmt.Errorf("create topic %q: %w", name, topicErr)
	}
	return nil
}

func (b *KafkaBackend) Publish(ctx context.Context, name string, data []byte, partitionKey string) error {
	return b.writer.WriteMessages(ctx, kafka.Message{
		Topic: name,
		Key:   []byte(partitionKey),
		Value: data,
		Time:  time.Now(),
	})
}

func (b *KafkaBackend) List(ctx context.Context) ([]string, error) {
	resp, err := b.client.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	names := make([]string, 0, len(resp.Topics))
	for _, t := range resp.Topics {
		if t.Internal {
			continue
		}
		names = append(names, t.Name)
	}
	return names, nil
}

func (b *KafkaBackend) Delete(ctx context.Context, name string) error {
	resp, err := b.client.DeleteTopics(ctx, &kafka.DeleteTopicsRequest{
		Topics: []string{name},
	})
	if err != nil {
		return fmt.Errorf("delete topic %q: %w", name, err)
	}
	if topicErr := resp.Errors[name]; topicErr != nil {
		return fmt.Errorf("delete topic %q: %w", name, topicErr)
	}
	return nil
}

// Close shuts down the writer cleanly.
func (b *KafkaBackend) Close() error {
	return b.writer.Close()
}
