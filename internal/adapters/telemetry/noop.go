// Package telemetry provides tracer implementations for build progress
// reporting.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer, used when progress
// display is disabled and in tests.
type NoOpTracer struct{}

var _ ports.Tracer = (*NoOpTracer)(nil)

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// StartJob returns a no-op job.
func (t *NoOpTracer) StartJob(_ context.Context, _ string, _ domain.Progress) ports.Job {
	return NoOpJob{}
}

// Close does nothing.
func (t *NoOpTracer) Close() error { return nil }

// NoOpJob is a no-op implementation of ports.Job.
type NoOpJob struct{}

// Stdout discards output.
func (NoOpJob) Stdout() io.Writer { return io.Discard }

// Stderr discards output.
func (NoOpJob) Stderr() io.Writer { return io.Discard }

// Cached does nothing.
func (NoOpJob) Cached() {}

// Done does nothing.
func (NoOpJob) Done(error) {}
