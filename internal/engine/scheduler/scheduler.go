// Package scheduler fans compilation of stale source files out across a
// bounded worker pool.
package scheduler

import (
	"context"
	"errors"
	"os"
	"sync"

	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/baker/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler compiles stale files with at most N concurrently in-flight
// compiler invocations. Files are partitioned into chunks of size N with a
// full barrier between chunks: every job of chunk K finishes before chunk K+1
// dispatches. A failure sets a shared flag that prevents dispatch of later
// chunks and fast-skips jobs not yet started, but never cancels an
// already-dispatched sibling.
//
// Compilation runs in parallel; all bookkeeping (database writes, result
// counters) is serialized behind one mutex.
type Scheduler struct {
	workers int
	layout  domain.Layout
	db      ports.Database
	tracer  ports.Tracer
	logger  ports.Logger

	mu       sync.Mutex
	failed   bool
	compiled int
	errs     error
}

// Result reports what one Run did.
type Result struct {
	// Compiled is the number of files compiled successfully.
	Compiled int
	// Failed reports whether any compilation failed.
	Failed bool
}

// New creates a Scheduler. A worker count below 1 is a configuration error,
// reported here so it fails before any work is scheduled.
func New(workers int, layout domain.Layout, db ports.Database, tracer ports.Tracer, logger ports.Logger) (*Scheduler, error) {
	if workers < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidWorkers, "invalid scheduler configuration"), "workers", workers)
	}
	return &Scheduler{
		workers: workers,
		layout:  layout,
		db:      db,
		tracer:  tracer,
		logger:  logger,
	}, nil
}

// Run compiles the given files. It returns the aggregated result plus the
// joined compile errors, if any. Each file is compiled at most once; ordering
// within a chunk is unspecified.
func (s *Scheduler) Run(ctx context.Context, files []ports.SourceFile) (Result, error) {
	s.mu.Lock()
	s.failed = false
	s.compiled = 0
	s.errs = nil
	s.mu.Unlock()

	total := len(files)
	for start := 0; start < total; start += s.workers {
		if s.hasFailed() || ctx.Err() != nil {
			break
		}

		end := min(start+s.workers, total)

		var g errgroup.Group
		for i := start; i < end; i++ {
			file := files[i]
			progress := domain.Progress{Index: i + 1, Total: total}
			g.Go(func() error {
				s.compileOne(ctx, file, progress)
				return nil
			})
		}
		// Barrier: the whole chunk finishes before the next one dispatches.
		_ = g.Wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := Result{Compiled: s.compiled, Failed: s.failed}
	errs := s.errs
	if ctx.Err() != nil {
		res.Failed = true
		errs = errors.Join(errs, ctx.Err())
	}
	return res, errs
}

// compileOne runs a single compile job and, on success, records the new
// source data and object into the database.
func (s *Scheduler) compileOne(ctx context.Context, file ports.SourceFile, progress domain.Progress) {
	if s.hasFailed() {
		// Fast-skip: a sibling already failed and this job has not started.
		return
	}

	job := s.tracer.StartJob(ctx, file.Path, progress)
	s.logger.Debug("compiling", "path", file.Path, "progress", progress.String())

	err := file.Language.Compiler.Compile(ctx, domain.CompileJob{
		OutputDir:  s.layout.ObjectDir(),
		OutputName: file.ObjectName,
		Source:     file.Path,
		BuildType:  s.layout.BuildType(),
		Flags:      file.Flags,
		Progress:   progress,
		Stdout:     job.Stdout(),
		Stderr:     job.Stderr(),
	})
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "compilation failed"), "path", file.Path)
		s.recordFailure(err)
		job.Done(err)
		return
	}

	deps := resolver.Closure(file.Path, file.Language.Scanner)

	info, err := os.Stat(file.Path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to stat source after compile"), "path", file.Path)
		s.recordFailure(err)
		job.Done(err)
		return
	}

	data := domain.NewSourceData(deps, info.ModTime(), file.FlagString)

	s.mu.Lock()
	s.db.SetSource(file.Path, data)
	s.db.AddObject(file.ObjectName, s.layout.BuildType())
	s.compiled++
	s.mu.Unlock()

	job.Done(nil)
}

func (s *Scheduler) hasFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

func (s *Scheduler) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
	s.errs = errors.Join(s.errs, err)
}
