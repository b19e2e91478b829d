// Package resolver computes the transitive closure of local includes for a
// source file.
package resolver

import (
	"bufio"
	"os"

	"go.trai.ch/baker/internal/core/ports"
)

// maxLineBytes caps a single scanned source line. Generated headers can carry
// very long lines; an include directive never comes close to this.
const maxLineBytes = 1 << 20

// Closure returns the full transitive set of local dependencies of the file
// at path, as absolute paths. The language's scanner decides per line whether
// it names a local include.
//
// The traversal is iterative with an explicit work stack, so include depth is
// not bounded by goroutine stack size. A dependency already in the result is
// never re-scanned, which also terminates dependency cycles, and the start
// file is never part of its own closure. Files that
// cannot be read are skipped silently: headers come and go during active
// development and a missing one simply is not a dependency yet.
func Closure(path string, scanner ports.DependencyScanner) map[string]struct{} {
	result := make(map[string]struct{})
	visited := map[string]struct{}{path: {}}
	stack := []string{path}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range scanFile(current, scanner) {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			result[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}

	return result
}

// scanFile returns the direct dependencies named by the file's lines. The
// scanner already verifies that a returned path exists on disk.
func scanFile(path string, scanner ports.DependencyScanner) []string {
	f, err := os.Open(path) //nolint:gosec // engine scans caller-registered sources
	if err != nil {
		return nil
	}
	defer f.Close() //nolint:errcheck // read-only handle

	var deps []string
	lines := bufio.NewScanner(f)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for lines.Scan() {
		if dep, ok := scanner.ScanLine(path, lines.Text()); ok {
			deps = append(deps, dep)
		}
	}

	return deps
}
