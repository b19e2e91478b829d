package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedLanguage is returned when a source file's extension matches
	// no registered language. Fatal for the current build call.
	ErrUnsupportedLanguage = zerr.New("source file is written in an unsupported language")

	// ErrInvalidWorkers is returned when the configured worker count is not
	// positive. Reported before any work is scheduled.
	ErrInvalidWorkers = zerr.New("worker count must be at least 1")

	// ErrBuildFailed is returned by Build when any compilation unit failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrLinkFailed is returned by Link when the linker driver reports failure.
	ErrLinkFailed = zerr.New("linking failed")

	// ErrNoLinker is returned by Link when no linker driver is configured.
	ErrNoLinker = zerr.New("no linker available")

	// ErrNoToolchain is returned by detection when no known compiler or linker
	// is installed for the host platform.
	ErrNoToolchain = zerr.New("no toolchain found")

	// ErrSchemaVersion is returned when a persisted database was written by a
	// newer engine version than this one understands.
	ErrSchemaVersion = zerr.New("unsupported database schema version")
)
