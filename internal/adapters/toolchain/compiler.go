package toolchain

import (
	"context"
	"path/filepath"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
)

// UnixCompiler drives a gcc-compatible compiler (clang, clang++, gcc, g++).
// Per-build-type presets mirror the classic ones: -O0 -g for debug,
// -O3 -DNDEBUG for release_fast, -O3 for release_safe, -Os -DNDEBUG for
// release_small. Unknown build types get no preset; callers supply flags.
type UnixCompiler struct {
	tool   string
	runner ports.Runner
	flags  []string
}

var _ ports.Compiler = (*UnixCompiler)(nil)

// NewUnixCompiler creates a driver for a gcc-compatible tool. The given flags
// are passed to every invocation ahead of the per-group flags.
func NewUnixCompiler(tool string, runner ports.Runner, flags ...string) *UnixCompiler {
	return &UnixCompiler{tool: tool, runner: runner, flags: flags}
}

// ObjectExtension returns ".o".
func (c *UnixCompiler) ObjectExtension() string { return ".o" }

// Compile runs one compile-to-object invocation.
func (c *UnixCompiler) Compile(ctx context.Context, job domain.CompileJob) error {
	output := filepath.Join(job.OutputDir, job.OutputName)

	args := unixBuildTypeFlags(job.BuildType)
	args = append(args, "-c", "-o", output, job.Source)
	args = append(args, c.flags...)
	args = append(args, job.Flags...)

	return c.runner.Run(ctx, c.tool, args, job.Stdout, job.Stderr)
}

func unixBuildTypeFlags(buildType domain.BuildType) []string {
	switch buildType {
	case domain.BuildDebug:
		return []string{"-O0", "-g"}
	case domain.BuildReleaseFast:
		return []string{"-O3", "-DNDEBUG"}
	case domain.BuildReleaseSafe:
		return []string{"-O3"}
	case domain.BuildReleaseSmall:
		return []string{"-Os", "-DNDEBUG"}
	default:
		return nil
	}
}

// MSVCCompiler drives cl.exe. Objects use the ".obj" extension and output is
// selected with /Fo.
type MSVCCompiler struct {
	runner ports.Runner
	flags  []string
}

var _ ports.Compiler = (*MSVCCompiler)(nil)

// NewMSVCCompiler creates a cl.exe driver.
func NewMSVCCompiler(runner ports.Runner, flags ...string) *MSVCCompiler {
	return &MSVCCompiler{runner: runner, flags: flags}
}

// ObjectExtension returns ".obj".
func (c *MSVCCompiler) ObjectExtension() string { return ".obj" }

// Compile runs one compile-to-object invocation.
func (c *MSVCCompiler) Compile(ctx context.Context, job domain.CompileJob) error {
	output := filepath.Join(job.OutputDir, job.OutputName)

	args := msvcBuildTypeFlags(job.BuildType)
	args = append(args, "/Fo"+output, job.Source, "/c")
	args = append(args, c.flags...)
	args = append(args, job.Flags...)

	return c.runner.Run(ctx, "cl", args, job.Stdout, job.Stderr)
}

func msvcBuildTypeFlags(buildType domain.BuildType) []string {
	switch buildType {
	case domain.BuildDebug:
		return []string{"/Od", "/Zi"}
	case domain.BuildReleaseFast:
		return []string{"/O2", "/DNDEBUG"}
	case domain.BuildReleaseSafe:
		return []string{"/O2"}
	case domain.BuildReleaseSmall:
		return []string{"/O1", "/DNDEBUG"}
	default:
		return nil
	}
}
