// Package toolchain provides the concrete compiler and linker drivers and
// the process runner they shell out through.
package toolchain

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExecRunner implements ports.Runner using os/exec.
type ExecRunner struct{}

var _ ports.Runner = (*ExecRunner)(nil)

// NewExecRunner creates a runner spawning real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the tool and waits for it. The child inherits the parent
// environment; a non-zero exit is returned as an error carrying the exit
// code.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // driver-assembled tool invocation
	cmd.Env = os.Environ()
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(
			zerr.With(zerr.Wrap(err, "tool invocation failed"), "tool", name),
			"exit_code", exitCode,
		)
	}
	return nil
}
