package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// ignoredDirs never hold buildable sources. The private state directory is
// in the list so database and object writes during a rebuild do not feed
// back into the watch loop.
var ignoredDirs = []string{".git", ".jj", ".baker", "node_modules"}

const eventBuffer = 100

// Watcher watches a directory tree for source changes using fsnotify.
// Directories created while watching are picked up automatically.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger ports.Logger
	out    chan ports.WatchEvent
}

// NewWatcher creates an idle watcher. Call Start to begin delivering events.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Watcher{
		fsw:    fsw,
		logger: logger,
		out:    make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start registers every directory under each root and begins forwarding
// events. Overlapping roots are harmless; fsnotify deduplicates watches.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	go w.forward(ctx)
	return nil
}

// Stop closes the underlying watcher, which also ends the event stream.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Events yields file system events until the watcher stops or the consumer
// breaks out of the loop.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.out {
			if !yield(ev) {
				return
			}
		}
	}
}

// addTree registers root and every directory below it, skipping ignored
// names. Unreadable directories are left out without failing the walk.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if !d.IsDir() {
			return nil
		}
		if ignored(d.Name()) {
			return fs.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return zerr.With(zerr.Wrap(addErr, "failed to watch directory"), "dir", path)
		}
		return nil
	})
}

func ignored(name string) bool {
	for _, dir := range ignoredDirs {
		if name == dir {
			return true
		}
	}
	return false
}

// forward translates fsnotify traffic onto the output channel. It owns the
// channel and closes it on exit.
func (w *Watcher) forward(ctx context.Context) {
	defer close(w.out)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			op, known := mapOp(ev.Op)
			if !known {
				continue
			}
			select {
			case w.out <- ports.WatchEvent{Path: ev.Name, Operation: op}:
			case <-ctx.Done():
				return
			}
			if op == ports.OpCreate {
				w.maybeAddDir(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file system watch error", "error", err)
		}
	}
}

// maybeAddDir extends the watch set when a newly created path is a
// directory worth watching.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || ignored(info.Name()) {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn("failed to watch new directory", "dir", path, "error", err)
	}
}

func mapOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
