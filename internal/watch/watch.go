// Package watch reports writes to a small set of files using fsnotify.
//
// Parent directories are watched rather than the files themselves so that
// editors which replace a file on save are still observed.
package watch

import (
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a function whenever one of the registered files is
// created, written, removed or renamed.
type Watcher struct {
	onChange func(path string)
	logger   *slog.Logger

	mu     sync.Mutex
	fw     *fsnotify.Watcher
	stopCh chan struct{}
	files  map[string]struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher that is not yet watching anything.
func New(onChange func(path string), opts ...Option) *Watcher {
	w := &Watcher{
		onChange: onChange,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Set replaces the watched files. Previous handles are closed first, so
// calling Set repeatedly never accumulates watches. When the platform
// refuses to register a watch the files are simply not observed.
func (w *Watcher) Set(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		files[p] = struct{}{}
		dirs[filepath.Dir(p)] = struct{}{}
	}
	if len(files) == 0 {
		return
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Debug("file watching disabled", "error", err)
		return
	}

	added := 0
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			w.logger.Debug("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		added++
	}
	if added == 0 {
		_ = fw.Close()
		return
	}

	w.fw = fw
	w.files = files
	w.stopCh = make(chan struct{})
	go w.run(fw, files, w.stopCh)

	w.logger.Debug("watching files", "count", len(files))
}

// Watching returns the files currently registered, sorted.
func (w *Watcher) Watching() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
	return nil
}

func (w *Watcher) stopLocked() {
	if w.fw == nil {
		return
	}
	close(w.stopCh)
	if err := w.fw.Close(); err != nil {
		w.logger.Debug("closing watcher", "error", err)
	}
	w.fw = nil
	w.files = nil
	w.stopCh = nil
}

// run delivers events for one generation of watches. It never waits on
// the mutex, so onChange may call Set.
func (w *Watcher) run(fw *fsnotify.Watcher, files map[string]struct{}, stop <-chan struct{}) {
	const interesting = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Op&interesting == 0 {
				continue
			}
			name := filepath.Clean(ev.Name)
			if _, ok := files[name]; !ok {
				continue
			}
			select {
			case <-stop:
				return
			default:
			}
			w.onChange(name)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("watcher error", "error", err)
		}
	}
}
