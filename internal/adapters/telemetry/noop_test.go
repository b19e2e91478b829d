package telemetry_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/internal/adapters/telemetry"
	"go.trai.ch/baker/internal/core/domain"
)

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	job := tracer.StartJob(context.Background(), "/src/main.c", domain.Progress{Index: 1, Total: 3})
	require.NotNil(t, job)

	assert.Equal(t, io.Discard, job.Stdout())
	assert.Equal(t, io.Discard, job.Stderr())

	// None of these may panic or block.
	job.Cached()
	job.Done(nil)
	job.Done(errors.New("compile failed"))

	assert.NoError(t, tracer.Close())
}
