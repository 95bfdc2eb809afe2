package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultShardCount   = 1
)

// Provisioner ensures a named stream exists and is ready for publishing.
// It is meant to run once at startup, before the emission loop.
type Provisioner struct {
	backend      Backend
	pollInterval time.Duration
}

func NewProvisioner(backend Backend, pollInterval time.Duration) *Provisioner {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Provisioner{backend: backend, pollInterval: pollInterval}
}

// EnsureReady blocks until the stream is ACTIVE, creating it with a single
// shard when the backend reports it absent. It returns ErrStreamDeleting when
// the stream is mid deletion; that run must not proceed. A stream that is
// already ACTIVE causes no mutating call, so calling EnsureReady again is
// free of side effects.
//
// Errors from the initial describe other than not-found propagate to the
// caller: an unreachable backend at startup is fatal by design, restart
// policy lives outside the process.
func (p *Provisioner) EnsureReady(ctx context.Context, name string) error {
	status, err := p.backend.Describe(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Printf("[Stream] Creating stream '%s'", name)
		if createErr := p.backend.Create(ctx, name, defaultShardCount); createErr != nil {
			return createErr
		}
		return p.waitForActive(ctx, name)
	case err != nil:
		return err
	}

	switch status {
	case StatusActive:
		return nil
	case StatusDeleting:
		return fmt.Errorf("stream %q: %w", name, ErrStreamDeleting)
	default:
		return p.waitForActive(ctx, name)
	}
}

// waitForActive polls the stream status until it becomes ACTIVE. The stream
// is known to exist at this point, so describe failures here are transient
// and retried on the next tick rather than treated as absence. There is no
// retry cap; cancellation comes from ctx.
func (p *Provisioner) waitForActive(ctx context.Context, name string) error {
	for {
		status, err := p.backend.Describe(ctx, name)
		if err != nil {
			log.Printf("[Stream] Describe of '%s' failed, retrying: %v", name, err)
		} else {
			if status == StatusActive {
				return nil
			}
			if status == StatusDeleting {
				return fmt.Errorf("stream %q: %w", name, ErrStreamDeleting)
			}
			log.Printf("[Stream] Stream '%s' has status %s, sleeping for %v",
				name, status, p.pollInterval)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}
