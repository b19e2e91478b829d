package ports

import (
	"context"
	"io"

	"go.trai.ch/baker/internal/core/domain"
)

// Tracer records build progress for display. Jobs carry the compile progress
// fraction; scheduling never depends on the tracer.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// StartJob begins recording a unit of work.
	StartJob(ctx context.Context, name string, progress domain.Progress) Job

	// Close flushes and closes the recording session.
	Close() error
}

// Job represents one recorded unit of work.
type Job interface {
	// Stdout returns a writer capturing the job's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the job's error output.
	Stderr() io.Writer

	// Cached marks the job as skipped because its artifact was up to date.
	Cached()

	// Done marks the job finished, successfully or with an error.
	Done(err error)
}
