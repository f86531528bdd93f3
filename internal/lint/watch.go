package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before changed files are re-linted.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-lints agents.yaml and tasks.yaml in a directory whenever they change.
type Watcher struct {
	linter   *Linter
	logger   *zap.Logger
	debounce time.Duration
	onLint   func(doc Document, diags []Diagnostic)
	onRemove func(path string)
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values select DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnLint registers a callback run after every lint pass.
func OnLint(fn func(doc Document, diags []Diagnostic)) WatchOption {
	return func(w *Watcher) {
		if fn != nil {
			w.onLint = fn
		}
	}
}

// OnRemove registers a callback run when a watched document disappears.
func OnRemove(fn func(path string)) WatchOption {
	return func(w *Watcher) {
		if fn != nil {
			w.onRemove = fn
		}
	}
}

// WatchLogger sets the watcher's logger.
func WatchLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a Watcher publishing through l.
func NewWatcher(l *Linter, opts ...WatchOption) *Watcher {
	w := &Watcher{
		linter:   l,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		onLint:   func(Document, []Diagnostic) {},
		onRemove: func(string) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// LintDir lints the existing documents of dir, agents.yaml first.
func (w *Watcher) LintDir(dir string) {
	w.lintPaths([]string{
		filepath.Join(dir, AgentsFileName),
		filepath.Join(dir, TasksFileName),
	})
}

// Run lints dir once and then re-lints changed documents until ctx is done.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.logger.Info("watching directory", zap.String("dir", dir))
	w.LintDir(dir)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if _, recognized := KindOf(ev.Name); !recognized {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				delete(pending, ev.Name)
				w.linter.Diagnostics().Delete(ev.Name)
				w.logger.Debug("document removed", zap.String("path", ev.Name))
				w.onRemove(ev.Name)
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				pending[ev.Name] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]struct{})
			w.lintPaths(paths)
		}
	}
}

// lintPaths lints the given documents, agents documents before tasks documents so
// that task references resolve against fresh agents.
func (w *Watcher) lintPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ki, _ := KindOf(paths[i])
		kj, _ := KindOf(paths[j])
		if ki != kj {
			return ki == KindAgents
		}
		return paths[i] < paths[j]
	})

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				w.logger.Warn("reading document", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		doc := Document{Path: path, Text: string(content)}
		diags, ok := w.linter.Lint(doc)
		if ok {
			w.onLint(doc, diags)
		}
	}
}
