package stream

import (
	"context"
	"errors"
)

// Status is the lifecycle state of a stream as reported by the backend.
type Status string

const (
	StatusCreating Status = "CREATING"
	StatusActive   Status = "ACTIVE"
	StatusDeleting Status = "DELETING"
	StatusUpdating Status = "UPDATING"
)

var (
	// ErrNotFound is returned by Describe when the backend explicitly reports
	// that the stream does not exist. A failed backend call is NOT not-found;
	// callers must be able to tell the two apart.
	ErrNotFound = errors.New("stream does not exist")

	// ErrStreamDeleting is returned by the Provisioner when the stream is mid
	// deletion. The run must stop; the operator reruns once deletion finishes.
	ErrStreamDeleting = errors.New("stream is being deleted, please rerun")
)

// Backend is the append-only log service records are published into. Any
// broker that can report a stream's status, create one and append to it
// satisfies the contract; List and Delete exist for cleanup tooling.
type Backend interface {
	Describe(ctx context.Context, name string) (Status, error)
	Create(ctx context.Context, name string, shards int32) error
	Publish(ctx context.Context, name string, data []byte, partitionKey string) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
