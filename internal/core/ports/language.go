package ports

import "strings"

// Language is a named association of file extensions with the scanner and
// compiler that handle them. Many languages may be registered on a builder;
// when extension sets overlap, the first registered match wins.
type Language struct {
	Name       string
	Extensions []string
	Scanner    DependencyScanner
	Compiler   Compiler
}

// Matches reports whether the language claims the given file extension.
// Matching is case-insensitive to cope with case-preserving filesystems.
func (l *Language) Matches(ext string) bool {
	for _, e := range l.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// SourceFile is the scheduling unit: a resolved absolute source path with its
// effective flags and resolved language. The staleness checker creates one
// only for files requiring rebuild; the scheduler consumes and discards it.
type SourceFile struct {
	Path       string
	ObjectName string
	Flags      []string
	FlagString string
	Language   *Language
}
