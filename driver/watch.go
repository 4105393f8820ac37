package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// RunCallback receives the outcome of every regeneration.
type RunCallback func(*Result, error)

// Watcher regenerates a module whenever one of its schema documents changes.
type Watcher struct {
	c        Context
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onRun    RunCallback

	mu    sync.Mutex
	timer *time.Timer

	// runMu keeps a late timer from overlapping a regeneration in progress.
	runMu sync.Mutex
}

// NewWatcher watches the module's schema directories that exist.
func NewWatcher(c Context, onRun RunCallback) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	watched := 0
	for _, dir := range c.SchemaDirs() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		watched++
	}
	if watched == 0 {
		fw.Close()
		return nil, errors.WithHint(
			errors.NewNotFoundError("no schema directory under %s", c.SourceDir),
			"create include/ or local_include/ with an Enums.json, .yaml or .toml")
	}

	logger.Infof("Watching %d schema directories of %s", watched, c.Module)

	if onRun == nil {
		onRun = func(*Result, error) {}
	}
	return &Watcher{c: c, watcher: fw, debounce: DefaultDebounce, onRun: onRun}, nil
}

// Run blocks until ctx is cancelled, regenerating after each debounced
// burst of schema changes.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	log := logger.LoggerFromContext(logger.WithComponent(logger.WithModule(ctx, w.c.Module), "watch"))

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaEvent(event) {
				continue
			}
			log.Debugw("Schema changed", logger.FieldFile, event.Name, "op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes into one regeneration.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.regenerate(ctx) })
}

// regenerate runs one generation and reports it. Runs never overlap.
func (w *Watcher) regenerate(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	res, err := Generate(ctx, w.c)
	if err != nil {
		logger.Errorw("Regeneration failed", logger.FieldModule, w.c.Module, logger.FieldError, err)
	}
	w.onRun(res, err)
}

func isSchemaEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), "Enums.")
}

// Watch regenerates once, then on every schema change until ctx is done.
func Watch(ctx context.Context, c Context, onRun RunCallback) error {
	w, err := NewWatcher(c, onRun)
	if err != nil {
		return err
	}
	w.regenerate(ctx)
	return w.Run(ctx)
}
