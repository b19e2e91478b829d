package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// privateDirName is the hidden engine-private directory under the build root.
const privateDirName = ".baker"

// objectFiller replaces path separators and drive-letter colons when deriving
// object filenames, so files with the same basename in different directories
// never collide inside the flat object cache.
const objectFiller = "_"

// Layout derives the on-disk build tree for one build type:
//
//	<root>/<build type>/            final artifacts
//	<root>/.baker/database.json     persisted build database
//	<root>/.baker/objects_<type>/   object cache for the build type
type Layout struct {
	root      string
	buildType BuildType
}

// NewLayout creates a Layout rooted at root. The root is made absolute so all
// derived paths are stable regardless of the process working directory.
func NewLayout(root string, buildType BuildType) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, err
	}
	return Layout{root: abs, buildType: buildType}, nil
}

// Root returns the absolute build root directory.
func (l Layout) Root() string { return l.root }

// BuildType returns the build type this layout partitions by.
func (l Layout) BuildType() BuildType { return l.buildType }

// OutputDir returns the directory for final link artifacts.
func (l Layout) OutputDir() string {
	return filepath.Join(l.root, string(l.buildType))
}

// PrivateDir returns the hidden engine-private directory.
func (l Layout) PrivateDir() string {
	return filepath.Join(l.root, privateDirName)
}

// DatabasePath returns the persisted build database location.
func (l Layout) DatabasePath() string {
	return filepath.Join(l.PrivateDir(), "database.json")
}

// ObjectDir returns the object cache directory for this build type.
func (l Layout) ObjectDir() string {
	return filepath.Join(l.PrivateDir(), "objects_"+string(l.buildType))
}

// ObjectPath returns the full path of an object file inside the cache.
func (l Layout) ObjectPath(objectName string) string {
	return filepath.Join(l.ObjectDir(), objectName)
}

// EnsureDirs creates the output and object directories.
func (l Layout) EnsureDirs() error {
	if err := os.MkdirAll(l.OutputDir(), 0o750); err != nil {
		return err
	}
	return os.MkdirAll(l.ObjectDir(), 0o750)
}

// ObjectName derives the deterministic object filename for an absolute source
// path: the containing directory with separators and colons replaced by a
// filler, the source basename without its extension, and the compiler's
// object extension. Re-deriving the name for the same file is idempotent.
func ObjectName(sourcePath, objectExt string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	mangled := strings.NewReplacer("/", objectFiller, "\\", objectFiller, ":", objectFiller).Replace(dir)
	return mangled + objectFiller + base + objectExt
}
