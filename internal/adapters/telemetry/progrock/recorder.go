// Package progrock provides the Progrock implementation of the tracer port.
package progrock

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
)

// Recorder implements ports.Tracer using the progrock library. Each compile
// or link job becomes one vertex on the tape, named with its progress
// fraction.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

var _ ports.Tracer = (*Recorder)(nil)

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// StartJob starts recording one unit of work.
func (r *Recorder) StartJob(_ context.Context, name string, progress domain.Progress) ports.Job {
	label := name
	if progress.Total > 0 {
		label = fmt.Sprintf("%s %s", progress.String(), name)
	}
	d := digest.FromString(label)
	return &Vertex{vertex: r.rec.Vertex(d, label)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
