/*
Package watch regenerates the tag index whenever Clojure sources under the
project root change. Bursts of filesystem events are debounced into a single
regeneration.
*/
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/cljtags/internal/tags"
)

// DefaultDelay is the quiet period before a batch of changes is flushed.
const DefaultDelay = 500 * time.Millisecond

// ignoredDirs are never watched.
var ignoredDirs = map[string]bool{
	".git":   true,
	"target": true,
	".lein":  true,
}

// Config holds configuration for the watcher.
type Config struct {
	Root string
	// SkipDirs are absolute directories excluded from watching, typically
	// the scratch directory.
	SkipDirs  []string
	Filter    tags.Filter
	Generator tags.Generator
	Delay     time.Duration
	Log       *slog.Logger
	// OnGenerate, if set, receives the summary of every regeneration.
	OnGenerate func(tags.Summary)
}

// Watcher monitors the project tree and triggers tag generation.
type Watcher struct {
	cfg       Config
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	skip      map[string]bool

	mu      sync.Mutex // serialises generator runs
	stopped bool       // guarded by mu; set once Run is done
}

// New creates a watcher; call Run to start it.
func New(cfg Config) (*Watcher, error) {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{cfg: cfg, watcher: fw, skip: make(map[string]bool)}
	for _, dir := range cfg.SkipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			w.skip[abs] = true
		}
	}
	w.debouncer = NewDebouncer(cfg.Delay, w.regenerate)
	return w, nil
}

// Run watches until ctx is cancelled. The fsnotify watcher is closed before
// Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	if err := w.addRecursive(w.cfg.Root, false); err != nil {
		return fmt.Errorf("add watch paths: %w", err)
	}
	w.cfg.Log.Info("watching for changes", "dir", w.cfg.Root)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.cfg.Log.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// close waits for an in-flight regeneration. A flush that races with it
// sees stopped and does nothing.
func (w *Watcher) close() {
	w.debouncer.Stop()
	_ = w.watcher.Close()
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// A new directory is watched, and sources already inside it (a
		// checkout or a move) are queued since they produce no events.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(event.Name) {
				_ = w.addRecursive(event.Name, true)
			}
			return
		}
	}
	if event.Op == fsnotify.Chmod {
		return
	}
	if !w.Relevant(event.Name) {
		return
	}
	w.cfg.Log.Debug("source changed", "file", event.Name, "op", event.Op.String())
	w.debouncer.Add(event.Name)
}

// Relevant reports whether a change to path should trigger regeneration.
// Paths outside the root or below a skipped directory never do.
func (w *Watcher) Relevant(path string) bool {
	rel, err := filepath.Rel(w.cfg.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	dir := w.cfg.Root
	for _, part := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
		if part == "." {
			continue
		}
		dir = filepath.Join(dir, part)
		if w.skipDir(dir) {
			return false
		}
	}
	return w.cfg.Filter.MatchPath(path)
}

func (w *Watcher) skipDir(dir string) bool {
	if ignoredDirs[filepath.Base(dir)] {
		return true
	}
	abs, err := filepath.Abs(dir)
	return err == nil && w.skip[abs]
}

// addRecursive adds the directory and all subdirectories to the watcher.
// With queue set, relevant files found on the way are handed to the
// debouncer.
func (w *Watcher) addRecursive(dir string, queue bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			if queue && d.Type().IsRegular() && w.Relevant(path) {
				w.debouncer.Add(path)
			}
			return nil
		}
		if path != w.cfg.Root && w.skipDir(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) regenerate(changed []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	w.cfg.Log.Info("regenerating tags", "changes", len(changed))
	summary := w.cfg.Generator.Generate()
	if w.cfg.OnGenerate != nil {
		w.cfg.OnGenerate(summary)
	}
}
