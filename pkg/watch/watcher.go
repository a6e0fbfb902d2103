// Package watch re-runs detection when watched TypeScript sources change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/parser"
)

// Watcher monitors a directory tree and triggers a re-analysis callback after
// changes settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	config    *config.Config
	debounce  time.Duration
	root      string
	callback  func(changed []string)

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewWatcher creates a watcher rooted at root.
func NewWatcher(root string, cfg *config.Config, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		config:    cfg,
		debounce:  debounce,
		root:      root,
		pending:   make(map[string]time.Time),
	}, nil
}

// SetCallback sets the function invoked with the settled set of changed
// files. Called from a separate goroutine.
func (w *Watcher) SetCallback(cb func(changed []string)) {
	w.callback = cb
}

// Start registers the directory tree and blocks processing events until the
// context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		for _, excluded := range w.config.Exclude.Dirs {
			if info.Name() == excluded {
				return filepath.SkipDir
			}
		}
		return w.fsWatcher.Add(path)
	})
	if err != nil {
		return err
	}

	color.Cyan("Watching %s for changes (Ctrl+C to stop)", w.root)

	go w.flushLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			color.Red("watch error: %v", err)
		}
	}
}

// handleEvent records a write or create against a TypeScript source.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	// New directories need registration for events beneath them.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		w.fsWatcher.Add(event.Name)
		return
	}

	if parser.DetectLanguage(event.Name) == parser.LangUnknown {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flushLoop fires the callback once the pending set has been stable for the
// debounce period.
func (w *Watcher) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changed := w.takeSettled(); len(changed) > 0 && w.callback != nil {
				go w.callback(changed)
			}
		}
	}
}

// takeSettled removes and returns pending files older than the debounce
// window.
func (w *Watcher) takeSettled() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	return ready
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}
