package toolchain

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/baker/internal/core/ports"
)

const includePrefix = `#include "`

// IncludeScanner recognizes C-family local includes: `#include "path"`.
// System includes in angle brackets are never local dependencies and are
// ignored.
type IncludeScanner struct{}

var _ ports.DependencyScanner = IncludeScanner{}

// NewIncludeScanner returns the scanner shared by the C and C++ languages.
func NewIncludeScanner() IncludeScanner {
	return IncludeScanner{}
}

// ScanLine returns the absolute path of the included file if the line is a
// local include resolving, relative to the including file's directory, to an
// existing file.
func (IncludeScanner) ScanLine(sourcePath, line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, includePrefix) {
		return "", false
	}

	rest := trimmed[len(includePrefix):]
	end := strings.IndexByte(rest, '"')
	if end <= 0 {
		return "", false
	}

	abs, err := filepath.Abs(filepath.Join(filepath.Dir(sourcePath), rest[:end]))
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(abs); err != nil {
		return "", false
	}
	return abs, true
}
