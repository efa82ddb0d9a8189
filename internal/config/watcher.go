package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/crossplay/internal/logging"
)

// Handler receives settings after a successful reload.
type Handler func(Settings)

// Watcher reloads a settings file when it changes on disk.
//
// The file's directory is watched rather than the file, so editors that
// save by renaming a temporary file over the original are seen. Bursts of
// events are coalesced into one reload after the debounce delay.
type Watcher struct {
	mu sync.Mutex

	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	lookup   LookupFunc
	logger   *logging.Logger

	handlers []Handler
	timer    *time.Timer
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup

	reloads  atomic.Int64
	failures atomic.Int64
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the delay between the last file event and the reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLookup replaces os.LookupEnv for environment overrides on reload.
func WithLookup(lookup LookupFunc) WatcherOption {
	return func(w *Watcher) {
		w.lookup = lookup
	}
}

// WithWatcherLogger sets the logger for reload failures.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher starts watching path. The file does not have to exist yet,
// but its directory does.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: 100 * time.Millisecond,
		lookup:   os.LookupEnv,
		logger:   logging.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("config")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// OnChange registers a handler for reloaded settings.
func (w *Watcher) OnChange(h Handler) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	w.handlers = append(w.handlers, h)
	return nil
}

// Reloads returns the number of successful reloads.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Failures returns the number of rejected reloads.
func (w *Watcher) Failures() int64 {
	return w.failures.Load()
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	// A rename away from the path leaves nothing to load.
	if _, err := os.Stat(w.path); err != nil {
		return
	}

	s, err := load(w.path, w.lookup)
	if err != nil {
		w.failures.Add(1)
		w.logger.Warn("reload rejected, keeping previous settings: %v", err)
		return
	}
	w.reloads.Add(1)
	w.logger.Info("reloaded %s", w.path)

	for _, h := range handlers {
		w.safeCall(h, s)
	}
}

// safeCall keeps a panicking handler from killing the timer goroutine.
func (w *Watcher) safeCall(h Handler, s Settings) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("config handler panicked: %v", r)
		}
	}()
	h(s)
}
