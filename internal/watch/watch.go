// Package watch regenerates the index whenever the document tree changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docindex/internal/logfields"
)

// DefaultDebounce is how long the tree must stay quiet before a regeneration.
const DefaultDebounce = 300 * time.Millisecond

// Options controls which changes trigger a regeneration.
type Options struct {
	Root string
	// OutputFile is the index file name; changes to it never trigger.
	OutputFile string
	// GeneratedSegment names directories whose contents are never listed.
	GeneratedSegment string
	// Ignore lists further files, such as the metrics file, that must not
	// trigger even when they live inside the tree.
	Ignore   []string
	Debounce time.Duration
}

// Watcher runs a regeneration once, then again after every burst of changes.
// Regenerations never overlap.
type Watcher struct {
	opts       Options
	regenerate func() error
	ignore     map[string]bool
}

// New creates a watcher that calls regenerate.
func New(opts Options, regenerate func() error) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignore[abs] = true
		}
	}
	return &Watcher{opts: opts, regenerate: regenerate, ignore: ignore}
}

// Run performs the initial regeneration and then watches until ctx is done.
// Only the initial regeneration's error is returned; later failures are
// logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.regenerate(); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addDirsRecursive(fw, w.opts.Root); err != nil {
		return err
	}
	slog.Info("Watching for changes", logfields.Root(w.opts.Root), logfields.Elapsed(w.opts.Debounce))

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopped watching", logfields.Root(w.opts.Root))
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(fw, ev) {
				timer.Reset(w.opts.Debounce)
				pending = timer.C
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-pending:
			pending = nil
			slog.Info("Change detected; regenerating index", logfields.Root(w.opts.Root))
			if err := w.regenerate(); err != nil {
				slog.Warn("Regeneration failed", logfields.Error(err))
			}
		}
	}
}

// handleEvent reports whether ev should schedule a regeneration. Newly
// created directories are added to the watch.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || w.ShouldIgnore(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	return true
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.opts.Root && w.ShouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ShouldIgnore returns true for paths whose changes cannot affect the index,
// or that the generator writes itself.
func (w *Watcher) ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if base == w.opts.OutputFile {
		return true
	}

	// Hidden files, including the generator's own temporary output.
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}

	if abs, err := filepath.Abs(path); err == nil && w.ignore[abs] {
		return true
	}

	if w.opts.GeneratedSegment != "" {
		if rel, err := filepath.Rel(w.opts.Root, path); err == nil {
			for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
				if seg == w.opts.GeneratedSegment {
					return true
				}
			}
		}
	}
	return false
}
