package toolchain

import (
	"context"
	"path/filepath"
	"runtime"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
)

// UnixLinker drives a gcc-compatible link step (clang, gcc driver, ld,
// ld.lld). Debug builds add -g; shared artifacts add -shared and the platform
// library suffix.
type UnixLinker struct {
	tool   string
	kind   domain.ArtifactKind
	runner ports.Runner
	flags  []string
}

var _ ports.Linker = (*UnixLinker)(nil)

// NewUnixLinker creates a driver for a gcc-compatible linker.
func NewUnixLinker(tool string, kind domain.ArtifactKind, runner ports.Runner, flags ...string) *UnixLinker {
	return &UnixLinker{tool: tool, kind: kind, runner: runner, flags: flags}
}

// Link combines the objects into the final artifact.
func (l *UnixLinker) Link(ctx context.Context, job domain.LinkJob) error {
	output := filepath.Join(job.OutputDir, job.OutputName+l.kind.Extension())

	var args []string
	if job.BuildType == domain.BuildDebug {
		args = append(args, "-g")
	}
	if l.kind == domain.ArtifactSharedLib {
		args = append(args, "-shared")
	}
	args = append(args, "-o", output)
	args = append(args, l.flags...)
	args = append(args, job.Flags...)
	args = append(args, job.Objects...)

	return l.runner.Run(ctx, l.tool, args, job.Stdout, job.Stderr)
}

// MSVCLinker drives link.exe or lld-link. Shared artifacts add /DLL; debug
// builds add /DEBUG and a PDB next to the artifact.
type MSVCLinker struct {
	tool   string
	kind   domain.ArtifactKind
	runner ports.Runner
	flags  []string
}

var _ ports.Linker = (*MSVCLinker)(nil)

// NewMSVCLinker creates a driver for link.exe-compatible linkers.
func NewMSVCLinker(tool string, kind domain.ArtifactKind, runner ports.Runner, flags ...string) *MSVCLinker {
	return &MSVCLinker{tool: tool, kind: kind, runner: runner, flags: flags}
}

// Link combines the objects into the final artifact.
func (l *MSVCLinker) Link(ctx context.Context, job domain.LinkJob) error {
	ext := ".exe"
	if l.kind == domain.ArtifactSharedLib {
		ext = ".dll"
	}
	output := filepath.Join(job.OutputDir, job.OutputName+ext)

	var args []string
	if job.BuildType == domain.BuildDebug {
		pdb := filepath.Join(job.OutputDir, job.OutputName+".pdb")
		args = append(args, "/DEBUG", "/PDB:"+pdb)
	}
	if l.kind == domain.ArtifactSharedLib {
		args = append(args, "/DLL")
	}
	args = append(args, "/OUT:"+output)
	args = append(args, l.flags...)
	args = append(args, job.Flags...)
	args = append(args, job.Objects...)

	return l.runner.Run(ctx, l.tool, args, job.Stdout, job.Stderr)
}

// NewLLDLinker returns the LLD flavor matching the target OS: lld-link on
// Windows, ld.lld elsewhere. Darwin's ld64.lld takes a different argument
// surface and is not wired up; the clang driver is used there instead.
func NewLLDLinker(kind domain.ArtifactKind, runner ports.Runner, flags ...string) ports.Linker {
	if runtime.GOOS == "windows" {
		return NewMSVCLinker("lld-link", kind, runner, flags...)
	}
	return NewUnixLinker("ld.lld", kind, runner, flags...)
}
