// Package builder orchestrates the incremental build lifecycle: staleness
// check, scheduled compilation, database persistence, and linking.
package builder

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/baker/internal/engine/scheduler"
	"go.trai.ch/baker/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// phase tracks the builder's lifecycle. A builder moves configured → checked
// → built → linked; Build may be re-entered, Link requires a completed Build.
type phase int

const (
	phaseConfigured phase = iota
	phaseChecked
	phaseBuilt
	phaseLinked
)

// Config carries the builder's static configuration.
type Config struct {
	// Project names the final artifact.
	Project string
	// Artifact selects executable or shared library linking.
	Artifact domain.ArtifactKind
	// Workers bounds concurrently in-flight compiler invocations.
	Workers int
	// LinkFlags are extra flags passed to every link.
	LinkFlags []string
}

// Builder drives one build target. Register languages and source groups, then
// call Build and Link. A builder is not safe for concurrent use; create one
// per target with a distinct build root.
type Builder struct {
	cfg    Config
	layout domain.Layout
	db     ports.Database
	linker ports.Linker
	tracer ports.Tracer
	logger ports.Logger

	languages []*ports.Language
	sources   []domain.SourcePath

	phase       phase
	buildFailed bool
	shouldLink  bool
}

// New creates a Builder for the given layout and collaborators.
func New(cfg Config, layout domain.Layout, db ports.Database, linker ports.Linker, tracer ports.Tracer, logger ports.Logger) *Builder {
	return &Builder{
		cfg:    cfg,
		layout: layout,
		db:     db,
		linker: linker,
		tracer: tracer,
		logger: logger,
	}
}

// AddLanguage registers a language. When extension sets overlap, the language
// registered first wins.
func (b *Builder) AddLanguage(lang *ports.Language) {
	b.languages = append(b.languages, lang)
}

// AddSourcePath registers a group of source files sharing one flag set.
func (b *Builder) AddSourcePath(sp domain.SourcePath) {
	b.sources = append(b.sources, sp)
}

// AddSource registers a single file as its own group with its own flags.
func (b *Builder) AddSource(file string, flags ...string) {
	b.AddSourcePath(domain.SourcePath{
		Dir:   filepath.Dir(file),
		Files: []string{filepath.Base(file)},
		Flags: flags,
	})
}

// Build runs the compile phase: load the database, classify every registered
// source as stale or fresh, compile the stale set, save the database. The
// database is loaded and saved exactly once per call, bracketing all
// mutation; a crash in between loses only this invocation's bookkeeping.
func (b *Builder) Build(ctx context.Context) error {
	b.phase = phaseConfigured
	b.buildFailed = false
	b.shouldLink = false

	// Validate worker configuration before touching any state.
	sched, err := scheduler.New(b.cfg.Workers, b.layout, b.db, b.tracer, b.logger)
	if err != nil {
		b.buildFailed = true
		return err
	}

	if err := b.layout.EnsureDirs(); err != nil {
		b.buildFailed = true
		return zerr.Wrap(err, "failed to create build directories")
	}

	if err := b.db.Load(); err != nil {
		b.buildFailed = true
		return zerr.Wrap(err, "failed to load build database")
	}

	stale, fresh, checkErr := b.collectStale()
	b.phase = phaseChecked

	var runErr error
	if checkErr == nil {
		b.markCached(ctx, fresh)
		var res scheduler.Result
		res, runErr = sched.Run(ctx, stale)
		b.shouldLink = res.Compiled > 0
		b.buildFailed = res.Failed
		if res.Failed {
			runErr = errors.Join(domain.ErrBuildFailed, runErr)
		}
	} else {
		// An unsupported source aborts scheduling, but the records gathered
		// so far are still worth keeping.
		b.buildFailed = true
	}
	b.phase = phaseBuilt

	saveErr := b.db.Save()
	if saveErr != nil {
		saveErr = zerr.Wrap(saveErr, "failed to save build database")
		b.buildFailed = true
	}

	if err := errors.Join(checkErr, runErr, saveErr); err != nil {
		b.logger.Error(zerr.Wrap(err, "build failed"))
		return err
	}

	b.logger.Info("build finished",
		"build_type", string(b.layout.BuildType()),
		"recompiled", b.shouldLink)
	return nil
}

// collectStale classifies all registered source groups. It stops at the first
// file whose extension matches no registered language.
func (b *Builder) collectStale() ([]ports.SourceFile, []string, error) {
	checker, err := staleness.NewChecker(b.layout, b.db, b.languages)
	if err != nil {
		return nil, nil, err
	}

	var stale []ports.SourceFile
	var fresh []string
	for _, sp := range b.sources {
		files, skipped, err := checker.Collect(sp)
		stale = append(stale, files...)
		fresh = append(fresh, skipped...)
		if err != nil {
			return stale, fresh, err
		}
	}
	return stale, fresh, nil
}

// markCached records one cached job per fresh file, so the progress display
// accounts for the whole source set, not just the recompiled part.
func (b *Builder) markCached(ctx context.Context, fresh []string) {
	for _, path := range fresh {
		job := b.tracer.StartJob(ctx, path, domain.Progress{})
		job.Cached()
		job.Done(nil)
	}
}

// Link runs the link phase. It is a no-op after a failed build, and a no-op
// when nothing was recompiled and no link error is persisted from an earlier
// run. Otherwise it links the build type's full recorded object set and
// persists the outcome, so a failed link is retried on the next invocation
// even if no source changes in between.
func (b *Builder) Link(ctx context.Context, extraFlags ...string) error {
	if b.phase < phaseBuilt {
		return zerr.New("link requires a completed build phase")
	}

	if b.buildFailed {
		// Never link on top of a failed compile; not itself a link failure.
		return nil
	}

	if !b.shouldLink && !b.db.LinkError() {
		return nil
	}

	if b.linker == nil {
		return domain.ErrNoLinker
	}

	objects := b.db.Objects(b.layout.BuildType())
	paths := make([]string, len(objects))
	for i, obj := range objects {
		paths[i] = b.layout.ObjectPath(obj)
	}

	flags := append(append([]string{}, b.cfg.LinkFlags...), extraFlags...)

	job := b.tracer.StartJob(ctx, "link "+b.cfg.Project, domain.Progress{Index: 1, Total: 1})
	linkErr := b.linker.Link(ctx, domain.LinkJob{
		OutputDir:  b.layout.OutputDir(),
		OutputName: b.cfg.Project,
		BuildType:  b.layout.BuildType(),
		Objects:    paths,
		Flags:      flags,
		Stdout:     job.Stdout(),
		Stderr:     job.Stderr(),
	})
	job.Done(linkErr)

	b.db.SetLinkError(linkErr != nil)
	saveErr := b.db.Save()
	b.phase = phaseLinked

	if linkErr != nil {
		linkErr = errors.Join(domain.ErrLinkFailed, zerr.With(linkErr, "project", b.cfg.Project))
	}
	if err := errors.Join(linkErr, saveErr); err != nil {
		b.logger.Error(err)
		return err
	}

	b.logger.Info("linked", "artifact", b.ArtifactPath())
	return nil
}

// ArtifactPath returns where Link places the final artifact.
func (b *Builder) ArtifactPath() string {
	return filepath.Join(b.layout.OutputDir(), b.cfg.Project+b.cfg.Artifact.Extension())
}

// Layout exposes the on-disk layout, for clean operations and tooling.
func (b *Builder) Layout() domain.Layout {
	return b.layout
}
