package ports

import "go.trai.ch/baker/internal/core/domain"

// Database is the persisted record of per-source metadata and per-build-type
// object sets enabling incremental builds across process invocations.
//
// The lifecycle is a single Load/Save pair bracketing all mutation: Load once
// at the start of a build, mutate in memory, Save once at the end. A crash
// mid-build discards the in-progress update; already-compiled files are then
// simply seen as stale again.
//
//go:generate go run go.uber.org/mock/mockgen -source=database.go -destination=mocks/mock_database.go -package=mocks
type Database interface {
	// Load populates in-memory state from persisted storage. A missing file
	// means "no prior build" and leaves the empty default, not an error.
	Load() error

	// Save persists the full in-memory state, overwriting prior storage.
	Save() error

	// Source returns the record for an absolute source path, if present.
	Source(path string) (domain.SourceData, bool)

	// SetSource overwrites the record for an absolute source path. Entries
	// are never removed, only overwritten.
	SetSource(path string, data domain.SourceData)

	// AddObject adds an object filename to the build type's set.
	AddObject(name string, buildType domain.BuildType)

	// RemoveObject removes an object filename from the build type's set.
	RemoveObject(name string, buildType domain.BuildType)

	// ClearObjects empties the build type's object set.
	ClearObjects(buildType domain.BuildType)

	// Objects returns the build type's object filenames, sorted.
	Objects(buildType domain.BuildType) []string

	// LinkError reports whether the most recent link attempt failed.
	LinkError() bool

	// SetLinkError records the outcome of a link attempt.
	SetLinkError(failed bool)
}
