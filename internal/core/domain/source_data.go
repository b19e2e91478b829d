package domain

import (
	"slices"
	"time"
)

// SourceData is the per-source record persisted after a successful compile:
// the transitive local dependency closure at that compile, the source's
// modification time at that compile, and the flattened flag string used.
// It is only ever written for a file+flags combination that compiled cleanly.
type SourceData struct {
	Dependencies []InternedString `json:"dependencies,omitempty"`
	ModTime      time.Time        `json:"mod_time"`
	Flags        string           `json:"flags,omitzero"`
}

// NewSourceData builds a SourceData from a dependency set. Dependencies are
// sorted so that persisted records are deterministic.
func NewSourceData(deps map[string]struct{}, modTime time.Time, flags string) SourceData {
	paths := make([]string, 0, len(deps))
	for p := range deps {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	interned := make([]InternedString, len(paths))
	for i, p := range paths {
		interned[i] = NewInternedString(p)
	}

	return SourceData{
		Dependencies: interned,
		ModTime:      modTime,
		Flags:        flags,
	}
}

// Snapshot is the full persisted state of the build database. Sources maps
// absolute source paths to their records; Objects maps build-type names to
// the object filenames produced for that build type. Object sets accumulate
// and are only cleared administratively. LinkError records whether the most
// recent link attempt failed, so a future invocation retries linking even if
// no source changed.
type Snapshot struct {
	Sources   map[string]SourceData  `json:"sources"`
	Objects   map[BuildType][]string `json:"objects"`
	LinkError bool                   `json:"link_error,omitzero"`
}

// NewSnapshot returns an empty snapshot with allocated maps.
func NewSnapshot() Snapshot {
	return Snapshot{
		Sources: make(map[string]SourceData),
		Objects: make(map[BuildType][]string),
	}
}

// AddObject inserts an object filename into the build type's set, keeping the
// slice sorted and duplicate-free so re-adding the same name is idempotent.
func (s *Snapshot) AddObject(name string, buildType BuildType) {
	set := s.Objects[buildType]
	i, found := slices.BinarySearch(set, name)
	if found {
		return
	}
	s.Objects[buildType] = slices.Insert(set, i, name)
}

// RemoveObject deletes an object filename from the build type's set.
func (s *Snapshot) RemoveObject(name string, buildType BuildType) {
	set := s.Objects[buildType]
	i, found := slices.BinarySearch(set, name)
	if !found {
		return
	}
	s.Objects[buildType] = slices.Delete(set, i, i+1)
}
