package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debouncer coalesces bursts of file events (editors tend to write, chmod
// and rename in quick succession) into one batch per quiet interval.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]fsnotify.Op
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet interval in
// milliseconds.
func NewDebouncer(intervalMs int) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]fsnotify.Op),
		interval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// Add records an event for a path, merging it with any pending ones.
func (d *Debouncer) Add(path string, op fsnotify.Op) {
	d.mu.Lock()
	d.pending[path] |= op
	d.mu.Unlock()
}

// Flush restarts the quiet-interval timer; once it fires, pending events are
// partitioned into changed and removed paths and handed to the callback.
func (d *Debouncer) Flush(callback func(changed, removed []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		pending := d.pending
		d.pending = make(map[string]fsnotify.Op)
		d.mu.Unlock()

		var changed, removed []string
		for path, op := range pending {
			switch {
			case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
				removed = append(removed, path)
			case op.Has(fsnotify.Write) || op.Has(fsnotify.Create):
				changed = append(changed, path)
			}
		}

		if len(changed) > 0 || len(removed) > 0 {
			callback(changed, removed)
		}
	})
}
