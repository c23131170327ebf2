package watch

import (
	"sync"
	"time"
)

// Debouncer batches rapid file changes and flushes them once no new change
// has arrived for the configured delay. Duplicate paths are collapsed.
type Debouncer struct {
	mu      sync.Mutex
	pending []string
	seen    map[string]bool
	timer   *time.Timer
	delay   time.Duration
	onFlush func([]string)
	stopped bool
}

// NewDebouncer creates a new debouncer with the given flush callback
func NewDebouncer(delay time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		seen:    make(map[string]bool),
		delay:   delay,
		onFlush: onFlush,
	}
}

// Add queues a changed path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if !d.seen[path] {
		d.seen[path] = true
		d.pending = append(d.pending, path)
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	paths := d.pending
	d.pending = nil
	d.seen = make(map[string]bool)
	d.mu.Unlock()

	if len(paths) > 0 && d.onFlush != nil {
		d.onFlush(paths)
	}
}

// Stop discards pending changes and prevents further flushes.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
