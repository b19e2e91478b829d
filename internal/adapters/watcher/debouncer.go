// Package watcher implements file system watching for rebuild-on-change.
package watcher

import (
	"sync"
	"time"
	"unique"
)

// Debouncer batches file change notifications. Editors emit several events
// per save; one callback per quiescence window is enough.
type Debouncer struct {
	window time.Duration
	notify func(paths []string)

	mu      sync.Mutex
	pending map[unique.Handle[string]]struct{}
	timer   *time.Timer
}

// NewDebouncer creates a debouncer delivering batches to notify after the
// file system has been quiet for window.
func NewDebouncer(window time.Duration, notify func(paths []string)) *Debouncer {
	return &Debouncer{
		window:  window,
		notify:  notify,
		pending: make(map[unique.Handle[string]]struct{}),
	}
}

// Add records a changed path and restarts the quiescence window. Paths are
// interned, so repeated events for the same file collapse to one entry.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.expire)
}

// expire runs when the window elapses without new events.
func (d *Debouncer) expire() {
	if paths := d.drain(false); len(paths) > 0 && d.notify != nil {
		go d.notify(paths)
	}
}

// Flush delivers all pending paths synchronously. It blocks until the
// callback returns, which makes it suitable for shutdown where the final
// batch must be handled before exiting.
func (d *Debouncer) Flush() {
	if paths := d.drain(true); len(paths) > 0 && d.notify != nil {
		d.notify(paths)
	}
}

// drain empties the pending set and clears the timer. When stopTimer is set
// and the timer has already fired, drain reports nothing so the in-flight
// expire call delivers the batch instead of processing it twice.
func (d *Debouncer) drain(stopTimer bool) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if stopTimer && d.timer != nil && !d.timer.Stop() {
		return nil
	}
	d.timer = nil

	paths := make([]string, 0, len(d.pending))
	for h := range d.pending {
		paths = append(paths, h.Value())
	}
	clear(d.pending)
	return paths
}
