// Package domain contains the core data model of the build engine.
package domain

import "runtime"

// BuildType is a named optimization/debug profile. It selects the argument
// presets of the concrete toolchain drivers and partitions the output and
// object directories. The engine itself treats the value as an opaque key, so
// callers may pass arbitrary strings for custom driver implementations.
type BuildType string

const (
	// BuildDebug disables optimization and enables debug info.
	BuildDebug BuildType = "debug"
	// BuildReleaseSmall optimizes for binary size.
	BuildReleaseSmall BuildType = "release_small"
	// BuildReleaseFast optimizes for speed with assertions disabled.
	BuildReleaseFast BuildType = "release_fast"
	// BuildReleaseSafe optimizes for speed with assertions kept.
	BuildReleaseSafe BuildType = "release_safe"
)

// ArtifactKind selects what the link phase produces.
type ArtifactKind string

const (
	// ArtifactExecutable links the objects into an executable.
	ArtifactExecutable ArtifactKind = "executable"
	// ArtifactSharedLib links the objects into a dynamic library.
	ArtifactSharedLib ArtifactKind = "shared"
)

// ExecutableExtension returns the platform suffix for executables.
func ExecutableExtension() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// SharedLibExtension returns the platform suffix for dynamic libraries.
func SharedLibExtension() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// Extension returns the platform artifact suffix for the kind.
func (k ArtifactKind) Extension() string {
	if k == ArtifactSharedLib {
		return SharedLibExtension()
	}
	return ExecutableExtension()
}
