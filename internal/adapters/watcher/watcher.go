// Package watcher reports changes under the development and helper trees so the pipeline can rebuild.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skippedDirs are never watched.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventBuffer = 100

// Watcher implements ports.Watcher on top of fsnotify.
// The underlying fsnotify watcher is created by Start, so constructing a Watcher is free.
type Watcher struct {
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates a new Watcher reporting watch errors to logger.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		events: make(chan ports.WatchEvent, eventBuffer),
	}
}

// Start watches every directory below each root. Events stop when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return errors.Join(domain.ErrWatchFailed, zerr.New("watcher already started"))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, zerr.Wrap(err, "failed to create fsnotify watcher"))
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			_ = fsw.Close()
			if err == nil {
				err = zerr.New("not a directory")
			}
			return errors.Join(domain.ErrWatchFailed, zerr.With(zerr.Wrap(err, "failed to watch root"), "root", root))
		}

		for dir := range directories(root) {
			if err := fsw.Add(dir); err != nil {
				_ = fsw.Close()
				return errors.Join(domain.ErrWatchFailed, zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir))
			}
		}
	}

	w.fsWatcher = fsw
	go w.processEvents(ctx, fsw)

	return nil
}

// Stop closes the underlying watcher. It is safe to call before Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator over change events. It ends once the watcher shuts down.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// directories yields root and every directory below it that is not skipped.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			op, relevant := convertOp(event.Op)
			if !relevant {
				continue
			}

			if op == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skippedDirs[info.Name()] {
					for dir := range directories(event.Name) {
						_ = fsw.Add(dir)
					}
				}
			}

			select {
			case w.events <- ports.WatchEvent{Path: event.Name, Operation: op}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

// convertOp maps an fsnotify operation to a WatchOp. Chmod-only events are not relevant.
func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
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
