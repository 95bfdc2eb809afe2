package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

type fakeKinesisAPI struct {
	describeStatus types.StreamStatus
	describeErr    error
	putErr         error

	createInputs []*kinesis.CreateStreamInput
	putInputs    []*kinesis.PutRecordInput
	deleted      []string
	streamNames  []string
}

func (f *fakeKinesisAPI) DescribeStreamSummary(_ context.Context, _ *kinesis.DescribeStreamSummaryInput,
	_ ...func(*kinesis.Options)) (*kinesis.DescribeStreamSummaryOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &kinesis.DescribeStreamSummaryOutput{
		StreamDescriptionSummary: &types.StreamDescriptionSummary{
			StreamStatus: f.describeStatus,
		},
	}, nil
}

func (f *fakeKinesisAPI) CreateStream(_ context.Context, params *kinesis.CreateStreamInput,
	_ ...func(*kinesis.Options)) (*kinesis.CreateStreamOutput, error) {
	f.createInputs = append(f.createInputs, params)
	return &kinesis.CreateStreamOutput{}, nil
}

func (f *fakeKinesisAPI) PutRecord(_ context.Context, params *kinesis.PutRecordInput,
	_ ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putInputs = append(f.putInputs, params)
	return &kinesis.PutRecordOutput{}, nil
}

func (f *fakeKinesisAPI) ListStreams(_ context.Context, _ *kinesis.ListStreamsInput,
	_ ...func(*kinesis.Options)) (*kinesis.ListStreamsOutput, error) {
	return &kinesis.ListStreamsOutput{StreamNames: f.streamNames}, nil
}

func (f *fakeKinesisAPI) DeleteStream(_ context.Context, params *kinesis.DeleteStreamInput,
	_ ...func(*kinesis.Options)) (*kinesis.DeleteStreamOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.StreamName))
	return &kinesis.DeleteStreamOutput{}, nil
}

func TestKinesisDescribeMapsStatus(t *testing.T) {
	api := &fakeKinesisAPI{describeStatus: types.StreamStatusCreating}
	backend := &KinesisBackend{client: api}

	status, err := backend.Describe(context.Background(), "telemetry")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if status != StatusCreating {
		t.Errorf("Expected CREATING, got %s", status)
	}
}

func TestKinesisDescribeNotFound(t *testing.T) {
	api := &fakeKinesisAPI{describeErr: &types.ResourceNotFoundException{}}
	backend := &KinesisBackend{client: api}

	_, err := backend.Describe(context.Background(), "telemetry")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for ResourceNotFoundException, got %v", err)
	}
}

func TestKinesisDescribeKeepsOtherErrors(t *testing.T) {
	boom := errors.New("throttled")
	api := &fakeKinesisAPI{describeErr: boom}
	backend := &KinesisBackend{client: api}

	_, err := backend.Describe(context.Background(), "telemetry")
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("A generic backend failure must not map to ErrNotFound")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("Expected original error to be wrapped, got %v", err)
	}
}

func TestKinesisCreatePassesShardCount(t *testing.T) {
	api := &fakeKinesisAPI{}
	backend := &KinesisBackend{client: api}

	if err := backend.Create(context.Background(), "telemetry", 1); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(api.createInputs) != 1 {
		t.Fatalf("Expected one CreateStream call, got %d", len(api.createInputs))
	}

	in := api.createInputs[0]
	if aws.ToString(in.StreamName) != "telemetry" {
		t.Errorf("Expected stream name telemetry, got %s", aws.ToString(in.StreamName))
	}
	if aws.ToInt32(in.ShardCount) != 1 {
		t.Errorf("Expected shard count 1, got %d", aws.ToInt32(in.ShardCount))
	}
}

func TestKinesisPublishSendsDataAndKey(t *testing.T) {
	api := &fakeKinesisAPI{}
	backend := &KinesisBackend{client: api}

	data := []byte(`{"msg_type":0}`)
	if err := backend.Publish(context.Background(), "telemetry", data, "123"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(api.putInputs) != 1 {
		t.Fatalf("Expected one PutRecord call, got %d", len(api.putInputs))
	}

	in := api.putInputs[0]
	if string(in.Data) != string(data) {
		t.Errorf("Payload mismatch: got %s", in.Data)
	}
	if aws.ToString(in.PartitionKey) != "123" {
		t.Errorf("Expected partition key 123, got %s", aws.ToString(in.PartitionKey))
	}
}

func TestKinesisListAndDelete(t *testing.T) {
	api := &fakeKinesisAPI{streamNames: []string{"a", "b"}}
	backend := &KinesisBackend{client: api}

	names, err := backend.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 streams, got %d", len(names))
	}

	if err := backend.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "a" {
		t.Errorf("Expected stream 'a' deleted, got %v", api.deleted)
	}
}
