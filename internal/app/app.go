// Package app implements the application layer for baker. It composes the
// configuration, toolchain, database and engine into the user-facing
// build, watch and clean operations.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/baker/internal/adapters/config"
	"go.trai.ch/baker/internal/adapters/db"
	"go.trai.ch/baker/internal/adapters/toolchain"
	"go.trai.ch/baker/internal/adapters/watcher"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/baker/internal/engine/builder"
	"go.trai.ch/zerr"
)

// debounceWindow is how long the watcher waits for the file system to go
// quiet before triggering a rebuild.
const debounceWindow = 300 * time.Millisecond

// Options selects what one invocation builds.
type Options struct {
	// ConfigPath locates the configuration file; empty means baker.yaml in
	// the working directory.
	ConfigPath string
	// BuildType overrides the configuration's build type when non-empty.
	BuildType string
	// Run executes the linked artifact after a successful build.
	Run bool
	// RunArgs are passed through to the executed artifact.
	RunArgs []string
}

// App represents the main application logic.
type App struct {
	loader  ports.ConfigLoader
	runner  ports.Runner
	tracer  ports.Tracer
	watcher ports.Watcher
	logger  ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, runner ports.Runner, tracer ports.Tracer, fsw ports.Watcher, logger ports.Logger) *App {
	return &App{
		loader:  loader,
		runner:  runner,
		tracer:  tracer,
		watcher: fsw,
		logger:  logger,
	}
}

// Build compiles everything stale and links the artifact, then optionally
// runs it.
func (a *App) Build(ctx context.Context, opts Options) error {
	plan, bld, _, err := a.configure(opts)
	if err != nil {
		return err
	}

	if err := a.buildAndLink(ctx, bld); err != nil {
		return err
	}

	if opts.Run {
		return a.runArtifact(ctx, plan, bld, opts.RunArgs)
	}
	return nil
}

// Watch builds once, then rebuilds whenever a source or header under the
// build root changes. It returns when the context is cancelled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	plan, bld, toolset, err := a.configure(opts)
	if err != nil {
		return err
	}

	// The first build may fail; watching continues so the next save fixes it.
	if err := a.buildAndLink(ctx, bld); err != nil {
		a.logger.Warn("initial build failed, watching for changes", "error", err)
	}

	defer func() { _ = a.watcher.Stop() }()

	rebuild := make(chan struct{}, 1)
	deb := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		a.logger.Info("change detected", "files", len(paths))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})

	// Watch where the sources live, not the build root; the two need not
	// share a directory tree.
	roots := watchRoots(plan)
	if err := a.watcher.Start(ctx, roots...); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	a.logger.Info("watching for changes", "dirs", len(roots))

	relevant := watchedExtensions(toolset)
	events := a.watcher.Events()
	go func() {
		for event := range events {
			if relevant[strings.ToLower(filepath.Ext(event.Path))] {
				deb.Add(event.Path)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuild:
			if err := a.buildAndLink(ctx, bld); err != nil {
				a.logger.Warn("rebuild failed, watching for changes", "error", err)
			}
		}
	}
}

// Clean removes the build type's object directory and the database. With
// all set it removes the whole private state directory and the output
// directory instead.
func (a *App) Clean(opts Options, all bool) error {
	plan, err := a.loadPlan(opts)
	if err != nil {
		return err
	}

	layout, err := domain.NewLayout(plan.Root, plan.BuildType)
	if err != nil {
		return err
	}

	if all {
		if err := os.RemoveAll(layout.PrivateDir()); err != nil {
			return zerr.Wrap(err, "failed to remove private directory")
		}
		if err := os.RemoveAll(layout.OutputDir()); err != nil {
			return zerr.Wrap(err, "failed to remove output directory")
		}
		a.logger.Info("removed all build state", "root", plan.Root)
		return nil
	}

	if err := os.RemoveAll(layout.ObjectDir()); err != nil {
		return zerr.Wrap(err, "failed to remove object directory")
	}
	if err := os.Remove(layout.DatabasePath()); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove build database")
	}
	a.logger.Info("removed build state", "build_type", string(plan.BuildType))
	return nil
}

func (a *App) loadPlan(opts Options) (*domain.Plan, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFilename
	}

	plan, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.BuildType != "" {
		bt, err := config.ParseBuildType(opts.BuildType)
		if err != nil {
			return nil, err
		}
		plan.BuildType = bt
	}
	return plan, nil
}

// configure loads the plan, detects the toolchain and assembles a builder.
func (a *App) configure(opts Options) (*domain.Plan, *builder.Builder, toolchain.Toolset, error) {
	plan, err := a.loadPlan(opts)
	if err != nil {
		return nil, nil, toolchain.Toolset{}, err
	}

	layout, err := domain.NewLayout(plan.Root, plan.BuildType)
	if err != nil {
		return nil, nil, toolchain.Toolset{}, err
	}

	toolset, err := toolchain.Detect(a.runner, plan.Artifact)
	if err != nil {
		return nil, nil, toolchain.Toolset{}, err
	}

	store := db.NewStore(layout.DatabasePath(), a.logger)
	bld := builder.New(builder.Config{
		Project:   plan.Project,
		Artifact:  plan.Artifact,
		Workers:   plan.Workers,
		LinkFlags: plan.LinkFlags,
	}, layout, store, toolset.Linker, a.tracer, a.logger)

	for _, lang := range toolset.Languages() {
		bld.AddLanguage(lang)
	}
	for _, sp := range plan.Sources {
		bld.AddSourcePath(sp)
	}
	return plan, bld, toolset, nil
}

func (a *App) buildAndLink(ctx context.Context, bld *builder.Builder) error {
	if err := bld.Build(ctx); err != nil {
		return err
	}
	return bld.Link(ctx)
}

func (a *App) runArtifact(ctx context.Context, plan *domain.Plan, bld *builder.Builder, args []string) error {
	if plan.Artifact != domain.ArtifactExecutable {
		return zerr.New("only executable artifacts can be run")
	}

	artifact := bld.ArtifactPath()
	a.logger.Info("running artifact", "path", artifact)
	return a.runner.Run(ctx, artifact, args, os.Stdout, os.Stderr)
}

// watchRoots returns the deduplicated source group directories.
func watchRoots(plan *domain.Plan) []string {
	seen := make(map[string]struct{}, len(plan.Sources))
	var roots []string
	for _, sp := range plan.Sources {
		if _, ok := seen[sp.Dir]; ok {
			continue
		}
		seen[sp.Dir] = struct{}{}
		roots = append(roots, sp.Dir)
	}
	return roots
}

// watchedExtensions is the set of file extensions worth rebuilding for:
// every registered source extension plus the common header spellings.
func watchedExtensions(toolset toolchain.Toolset) map[string]bool {
	exts := map[string]bool{
		".h":   true,
		".hh":  true,
		".hpp": true,
		".hxx": true,
	}
	for _, lang := range toolset.Languages() {
		for _, ext := range lang.Extensions {
			exts[strings.ToLower(ext)] = true
		}
	}
	return exts
}
