package resolver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/internal/engine/resolver"
)

// refScanner treats lines of the form "ref <name>" as dependencies on a file
// next to the scanned one.
type refScanner struct{}

func (refScanner) ScanLine(sourcePath, line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "ref ")
	if !ok {
		return "", false
	}
	return filepath.Join(filepath.Dir(sourcePath), rest), true
}

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))
	return path
}

func TestClosure_Transitive(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", "ref b.h", "int main() {}")
	b := writeFile(t, dir, "b.h", "ref c.h")
	c := writeFile(t, dir, "c.h", "")

	got := resolver.Closure(a, refScanner{})

	assert.Equal(t, map[string]struct{}{b: {}, c: {}}, got)
}

func TestClosure_LongLinesDoNotTruncateScan(t *testing.T) {
	dir := t.TempDir()
	// A generated-file style line well past bufio's default token size,
	// followed by a dependency that must still be found.
	long := "// " + strings.Repeat("x", 256*1024)
	a := writeFile(t, dir, "a.c", long, "ref b.h")
	b := writeFile(t, dir, "b.h", "")

	got := resolver.Closure(a, refScanner{})

	assert.Equal(t, map[string]struct{}{b: {}}, got)
}

func TestClosure_SharedDependencyScannedOnce(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", "ref b.h", "ref c.h")
	b := writeFile(t, dir, "b.h", "ref d.h")
	c := writeFile(t, dir, "c.h", "ref d.h")
	d := writeFile(t, dir, "d.h", "")

	got := resolver.Closure(a, refScanner{})

	assert.Equal(t, map[string]struct{}{b: {}, c: {}, d: {}}, got)
}

func TestClosure_CycleExcludesStartFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.h", "ref b.h")
	b := writeFile(t, dir, "b.h", "ref a.h")

	// A mutual include terminates, and the start file is not part of its own
	// closure.
	gotA := resolver.Closure(a, refScanner{})
	assert.Equal(t, map[string]struct{}{b: {}}, gotA)

	gotB := resolver.Closure(b, refScanner{})
	assert.Equal(t, map[string]struct{}{a: {}}, gotB)
}

func TestClosure_SelfReferenceIgnored(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.h", "ref a.h")

	got := resolver.Closure(a, refScanner{})
	assert.Empty(t, got)
}

func TestClosure_UnreadableDependencyKeptButNotScanned(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", "ref gone.h")
	gone := filepath.Join(dir, "gone.h")

	got := resolver.Closure(a, refScanner{})
	assert.Equal(t, map[string]struct{}{gone: {}}, got)
}

func TestClosure_NoDependencies(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", "int main() {}")

	assert.Empty(t, resolver.Closure(a, refScanner{}))
}

func TestClosure_MissingStartFile(t *testing.T) {
	assert.Empty(t, resolver.Closure(filepath.Join(t.TempDir(), "absent.c"), refScanner{}))
}
