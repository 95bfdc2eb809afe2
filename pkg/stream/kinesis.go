package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"

	"github.com/HusbandWang/real-time-motor-control-with-Amazon-Kinesis/pkg/config"
)

// kinesisAPI is the slice of the Kinesis client the backend actually calls.
// Tests substitute a fake.
type kinesisAPI interface {
	DescribeStreamSummary(ctx context.Context, params *kinesis.DescribeStreamSummaryInput,
		optFns ...func(*kinesis.Options)) (*kinesis.DescribeStreamSummaryOutput, error)
	CreateStream(ctx context.Context, params *kinesis.CreateStreamInput,
		optFns ...func(*kinesis.Options)) (*kinesis.CreateStreamOutput, error)
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput,
		optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
	ListStreams(ctx context.Context, params *kinesis.ListStreamsInput,
		optFns ...func(*kinesis.Options)) (*kinesis.ListStreamsOutput, error)
	DeleteStream(ctx context.Context, params *kinesis.DeleteStreamInput,
		optFns ...func(*kinesis.Options)) (*kinesis.DeleteStreamOutput, error)
}

// KinesisBackend publishes records into an Amazon Kinesis data stream.
type KinesisBackend struct {
	client kinesisAPI
}

// NewKinesisBackend builds a Kinesis client from the default AWS config chain.
// Static credentials and a custom endpoint from the config, when set, take
// precedence (used against local stacks).
func NewKinesisBackend(ctx context.Context, cfg config.KinesisConfig) (*KinesisBackend, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := kinesis.NewFromConfig(awsCfg, func(o *kinesis.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &KinesisBackend{client: client}, nil
}

// Describe reports the stream's lifecycle status. Only the service's explicit
// ResourceNotFoundException maps to ErrNotFound; every other failure is
// surfaced as-is so callers never mistake an outage for an absent stream.
func (b *KinesisBackend) Describe(ctx context.Context, name string) (Status, error) {
	out, err := b.client.DescribeStreamSummary(ctx, &kinesis.DescribeStreamSummaryInput{
		StreamName: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("describe stream %q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("describe stream %q: %w", name, err)
	}
	return Status(out.StreamDescriptionSummary.StreamStatus), nil
}

func (b *KinesisBackend) Create(ctx context.Context, name string, shards int32) error {
	_, err := b.client.CreateStream(ctx, &kinesis.CreateStreamInput{
		StreamName: aws.String(name),
		ShardCount: aws.Int32(shards),
	})
	if err != nil {
		return fmt.Errorf("create stream %q: %w", name, err)
	}
	return nil
}

func (b *KinesisBackend) Publish(ctx context.Context, name string, data []byte, partitionKey string) error {
	_, err := b.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(name),
		Data:         data,
		PartitionKey: aws.String(partitionKey),
	})
	return err
}

func (b *KinesisBackend) List(ctx context.Context) ([]string, error) {
	var names []string
	var next *string
	for {
		out, err := b.client.ListStreams(ctx, &kinesis.ListStreamsInput{NextToken: next})
		if err != nil {
			return nil, fmt.Errorf("list streams: %w", err)
		}
		names = append(names, out.StreamNames...)
		if out.NextToken == nil {
			return names, nil
		}
		next = out.NextToken
	}
}

func (b *KinesisBackend) Delete(ctx context.Context, name string) error {
	_, err := b.client.DeleteStream(ctx, &kinesis.DeleteStreamInput{
		StreamName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("delete stream %q: %w", name, err)
	}
	return nil
}
