// Package staleness decides, per source file, whether recompilation is
// required.
package staleness

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
)

// statCacheSize bounds the per-run dependency stat cache. Closures of sibling
// sources overlap heavily on shared headers, so most lookups after the first
// source are hits.
const statCacheSize = 4096

// Checker classifies source files as stale or fresh against the build
// database and the filesystem. A Checker is built per run; its stat cache
// must not outlive the run it was created for.
type Checker struct {
	layout    domain.Layout
	db        ports.Database
	languages []*ports.Language
	depTimes  *lru.Cache[string, time.Time]
	now       func() time.Time
}

// NewChecker creates a Checker for one build run.
func NewChecker(layout domain.Layout, db ports.Database, languages []*ports.Language) (*Checker, error) {
	cache, err := lru.New[string, time.Time](statCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create stat cache")
	}
	return &Checker{
		layout:    layout,
		db:        db,
		languages: languages,
		depTimes:  cache,
		now:       time.Now,
	}, nil
}

// Collect splits the group's files into the stale subset, as scheduling
// units carrying the group's flags and the resolved language, and the fresh
// remainder as absolute paths.
//
// As a side effect of the dependency rule, a source whose recorded dependency
// is newer gets its own modification time bumped to now. That makes the
// staleness signal durable: even if this run is interrupted before the source
// is recompiled, the next run's timestamp rule catches it again.
func (c *Checker) Collect(sp domain.SourcePath) (stale []ports.SourceFile, fresh []string, err error) {
	files := sp.Files
	if len(files) == 0 {
		discovered, err := c.discover(sp.Dir)
		if err != nil {
			return nil, nil, err
		}
		files = discovered
	}

	flagString := strings.Join(sp.Flags, " ")

	for _, name := range files {
		abs, err := filepath.Abs(filepath.Join(sp.Dir, name))
		if err != nil {
			return stale, fresh, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", name)
		}

		lang := c.languageFor(filepath.Ext(abs))
		if lang == nil {
			return stale, fresh, zerr.With(zerr.Wrap(domain.ErrUnsupportedLanguage, "cannot classify source file"), "path", abs)
		}

		file := ports.SourceFile{
			Path:       abs,
			ObjectName: domain.ObjectName(abs, lang.Compiler.ObjectExtension()),
			Flags:      sp.Flags,
			FlagString: flagString,
			Language:   lang,
		}

		needsRebuild, err := c.isStale(file)
		if err != nil {
			return stale, fresh, err
		}
		if needsRebuild {
			stale = append(stale, file)
		} else {
			fresh = append(fresh, abs)
		}
	}

	return stale, fresh, nil
}

// isStale applies the rebuild rules in priority order: missing object, no
// record, source newer than recorded, flags changed, any recorded dependency
// newer than the recorded compile time.
func (c *Checker) isStale(file ports.SourceFile) (bool, error) {
	if _, err := os.Stat(c.layout.ObjectPath(file.ObjectName)); err != nil {
		return true, nil
	}

	data, ok := c.db.Source(file.Path)
	if !ok {
		return true, nil
	}

	info, err := os.Stat(file.Path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", file.Path)
	}
	if info.ModTime().After(data.ModTime) {
		return true, nil
	}

	if data.Flags != file.FlagString {
		return true, nil
	}

	for _, dep := range data.Dependencies {
		depTime, ok := c.depModTime(dep.String())
		if !ok {
			// A recorded dependency that no longer exists cannot be newer.
			continue
		}
		if depTime.After(data.ModTime) {
			c.bump(file.Path)
			return true, nil
		}
	}

	return false, nil
}

// bump advances the source's own modification time to now so the timestamp
// rule re-detects the change on the next run even if the dependency set is
// not re-scanned before then.
func (c *Checker) bump(path string) {
	now := c.now()
	_ = os.Chtimes(path, now, now)
}

// depModTime returns a dependency's modification time through the per-run
// cache.
func (c *Checker) depModTime(path string) (time.Time, bool) {
	if t, ok := c.depTimes.Get(path); ok {
		return t, true
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	c.depTimes.Add(path, info.ModTime())
	return info.ModTime(), true
}

// languageFor returns the first registered language claiming the extension.
func (c *Checker) languageFor(ext string) *ports.Language {
	for _, lang := range c.languages {
		if lang.Matches(ext) {
			return lang
		}
	}
	return nil
}

// discover lists the directory's files whose extensions match any registered
// language, in directory order.
func (c *Checker) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to scan source directory"), "dir", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if c.languageFor(filepath.Ext(entry.Name())) != nil {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
