// Package watcher notices when the open file changes on disk outside the
// editor, so the buffer can be reloaded.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"koda/internal/logging"
)

// Watcher monitors a single file for external modification. Events are
// debounced: editors and build tools often write a file several times in
// quick succession, and one reload per burst is enough.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	changes   chan struct{}

	mu       sync.Mutex
	pending  time.Time
	done     chan struct{}
	running  bool
	stopOnce sync.Once
}

// New creates a watcher for path. Watching the parent directory instead of
// the file itself survives rename-based atomic writes.
func New(path string, debounceMs int) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 400
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		debounce:  time.Duration(debounceMs) * time.Millisecond,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Changes delivers one signal per debounced burst of modifications.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()
	go w.processDebounce()
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	w.stopOnce.Do(func() {
		close(w.done)
	})
	return w.fsWatcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || abs != w.path {
		return
	}

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processDebounce() {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	fire := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
	if fire {
		w.pending = time.Time{}
	}
	w.mu.Unlock()

	if !fire {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
