package domain

import (
	"fmt"
	"io"
)

// Progress reports how far through the stale set a compile job is. It is
// display-only and has no effect on scheduling order.
type Progress struct {
	Index int
	Total int
}

// Fraction returns the completion fraction in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Index) / float64(p.Total)
}

// String renders the progress as "[index/total]".
func (p Progress) String() string {
	return fmt.Sprintf("[%d/%d]", p.Index, p.Total)
}

// CompileJob describes one compiler invocation. The driver must produce
// exactly OutputDir/OutputName on success and must not leave an artifact
// recognizable as complete on failure.
type CompileJob struct {
	OutputDir  string
	OutputName string
	Source     string
	BuildType  BuildType
	Flags      []string
	Progress   Progress

	// Stdout and Stderr receive the tool's output. Nil writers discard.
	Stdout io.Writer
	Stderr io.Writer
}

// LinkJob describes one linker invocation combining all current objects for a
// build type into the final artifact under OutputDir.
type LinkJob struct {
	OutputDir  string
	OutputName string
	BuildType  BuildType
	Objects    []string
	Flags      []string

	// Stdout and Stderr receive the tool's output. Nil writers discard.
	Stdout io.Writer
	Stderr io.Writer
}

// SourcePath is a directory plus a list of filenames belonging to one
// extra-flag set. Flags apply uniformly to every file in the group. An empty
// Files list means the group was registered for auto-discovery.
type SourcePath struct {
	Dir   string
	Files []string
	Flags []string
}
