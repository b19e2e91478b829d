package ports

import (
	"context"
	"io"
)

// Runner executes an external tool process and waits for it to finish.
// Toolchain drivers go through this port so tests can inject a fake instead
// of spawning real compilers.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes name with args, streaming output to stdout and stderr.
	// A non-zero exit status is returned as an error carrying the exit code.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}
