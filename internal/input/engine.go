package input

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/crossplay/internal/input/cmdline"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/input/nav"
	"github.com/dshills/crossplay/internal/input/queue"
	"github.com/dshills/crossplay/internal/input/trie"
	"github.com/dshills/crossplay/internal/logging"
)

// Engine turns key events into selection changes and grid mutations for
// one puzzle session.
//
// All engine state and every Host call are serialized by one mutex. The
// typing worker takes the same mutex before committing a letter, so host
// callbacks never run concurrently.
type Engine struct {
	mu sync.Mutex

	cfg  Config
	host Host

	queue  *queue.Queue
	clock  func() time.Time
	trie   *trie.Trie
	cursor *trie.Cursor
	modes  *mode.Manager
	cmd    cmdline.Buffer

	// rebus is set by the rebus trigger and cleared by any non-letter key.
	rebus bool

	hooks   *HookManager
	metrics *Metrics
	logger  *logging.Logger
	session string

	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics shares a Metrics between engines.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithClock replaces time.Now for typing schedules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New creates an Engine for host.
func New(host Host, cfg Config, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("input config: %w", err)
	}

	t, err := buildTrie(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		host:    host,
		trie:    t,
		modes:   mode.NewManager(cfg.Keybind),
		hooks:   NewHookManager(),
		metrics: NewMetrics(),
		logger:  logging.Discard(),
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("input").WithField("session", e.session)

	e.cursor = trie.NewCursor(t)
	e.cursor.SetRetry(cfg.RetryUnmatchedChord)
	e.queue = e.newQueue(cfg)
	e.modes.OnChange(e.onModeChange)

	e.logger.Info("session started keybind=%s typing=%s", cfg.Keybind, e.queue.Mode())
	return e, nil
}

// buildTrie compiles the default bindings with cfg's overrides.
func buildTrie(cfg Config) (*trie.Trie, error) {
	bindings := trie.Merge(DefaultBindings(), cfg.Bindings)
	for _, b := range bindings {
		if !IsAction(b.Action) {
			return nil, fmt.Errorf("binding %q: %w", b.Keys, &ActionError{Action: b.Action, Err: ErrUnknownAction})
		}
	}
	t, err := trie.Build(bindings)
	if err != nil {
		return nil, fmt.Errorf("command bindings: %w", err)
	}
	return t, nil
}

func (e *Engine) newQueue(cfg Config) *queue.Queue {
	opts := []queue.Option{
		queue.WithMode(cfg.queueMode()),
		queue.WithInterval(cfg.ThrottleInterval),
		queue.WithLocker(&e.mu),
		queue.WithPanicHandler(func(r any, stack []byte) {
			e.logger.Error("typing job panicked: %v\n%s", r, stack)
		}),
	}
	if e.clock != nil {
		opts = append(opts, queue.WithClock(e.clock))
	}
	return queue.New(opts...)
}

// onModeChange runs inside Manager.Switch, with the engine lock held.
func (e *Engine) onModeChange(from, to mode.VimMode) {
	if from == mode.Normal {
		e.cursor.Reset()
	}
	if from == mode.Command {
		e.setCmdline("")
	}
	e.rebus = false
	e.host.SetVimMode(to)
	e.logger.Debug("mode %s -> %s", from, to)
}

// HandleKeyEvent handles a raw key as delivered by a browser-like host and
// reports whether it was consumed. Keys from focused text inputs or with a
// platform modifier are never consumed.
func (e *Engine) HandleKeyEvent(k string, shift, textInputFocused, platformModifier bool) bool {
	ev := key.NewEvent(k, shift)
	ev.FromTextInput = textInputFocused
	if platformModifier {
		ev.Modifiers |= key.ModCtrl
	}
	return e.HandleEvent(ev)
}

// HandleEvent handles ev and reports whether it was consumed.
func (e *Engine) HandleEvent(ev key.Event) bool {
	start := time.Now()
	if ev.Ignored() {
		e.metrics.RecordIgnored()
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}

	st := e.stateLocked()
	if e.hooks.RunPreKeyEvent(&ev, st) {
		e.metrics.RecordKeyEvent(true, time.Since(start))
		return true
	}

	if _, ok := validLetter(ev.Key); !ok {
		e.rebus = false
	}
	handled := e.handlerLocked().handleKey(e, ev)

	e.hooks.RunPostKeyEvent(ev, handled, e.stateLocked())
	e.metrics.RecordKeyEvent(handled, time.Since(start))
	return handled
}

// HandleAction runs a named action as if its key had been pressed. It
// returns false for unknown actions.
func (e *Engine) HandleAction(name string, shift bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.rebus = false
	return e.dispatch(name, shift) == nil
}

// dispatch runs an action. Callers hold the lock.
func (e *Engine) dispatch(name string, shift bool) error {
	fn, ok := actions[name]
	if !ok {
		err := &ActionError{Action: name, Err: ErrUnknownAction}
		e.metrics.RecordUnknownAction()
		e.logger.Error("%v", err)
		return err
	}
	if e.hooks.RunPreAction(name, e.stateLocked()) {
		return nil
	}
	e.metrics.RecordAction()
	fn(e, shift)
	return nil
}

func (e *Engine) stateLocked() State {
	return State{
		Keybind:   e.modes.Keybind(),
		Mode:      e.modes.Current(),
		Selected:  e.host.Selected(),
		Direction: e.host.Direction(),
		Cmdline:   e.cmd.String(),
	}
}

// navigator binds a Navigator to the host's current grid.
func (e *Engine) navigator() *nav.Navigator {
	return nav.New(e.host.Geometry(), e.cfg.MaxScanSteps)
}

func (e *Engine) setCmdline(text string) {
	e.cmd.Set(text)
	e.host.SetCmdline(text)
}

// Reconfigure applies cfg to a running engine. Letters already queued are
// still committed when the typing mode changes.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("input config: %w", err)
	}
	t, err := buildTrie(cfg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	old := e.cfg
	e.cfg = cfg
	e.trie = t
	e.cursor = trie.NewCursor(t)
	e.cursor.SetRetry(cfg.RetryUnmatchedChord)

	if cfg.Keybind != old.Keybind {
		e.modes.SetKeybind(cfg.Keybind)
	}

	var retired *queue.Queue
	if cfg.SyncTyping != old.SyncTyping {
		retired = e.queue
		e.queue = e.newQueue(cfg)
	} else {
		e.queue.SetInterval(cfg.ThrottleInterval)
	}
	e.mu.Unlock()

	// The retiring worker needs the lock to drain.
	if retired != nil {
		retired.Close()
	}

	e.logger.Info("reconfigured keybind=%s typing=%s interval=%s", cfg.Keybind, cfg.queueMode(), cfg.ThrottleInterval)
	return nil
}

// Flush waits until every typed letter has been committed. It must not be
// called from a Host callback.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	q := e.queue
	e.mu.Unlock()
	return q.Flush(ctx)
}

// Close commits pending letters and stops the engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.closed = true
	q := e.queue
	e.mu.Unlock()

	err := q.Close()
	e.logger.Info("session closed")
	return err
}

// Keybind returns the active keybind.
func (e *Engine) Keybind() mode.Keybind {
	return e.modes.Keybind()
}

// Mode returns the vim sub-mode.
func (e *Engine) Mode() mode.VimMode {
	return e.modes.Current()
}

// Cmdline returns the command-line buffer.
func (e *Engine) Cmdline() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cmd.String()
}

// PendingChord reports whether a NORMAL-mode chord is in progress.
func (e *Engine) PendingChord() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.Pending()
}

// GridFilled reports whether every playable cell holds a value.
func (e *Engine) GridFilled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.host.Geometry().IsFilled()
}

// Bindings returns the active NORMAL-mode command bindings.
func (e *Engine) Bindings() []trie.Binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trie.Bindings()
}

// Hooks returns the hook manager.
func (e *Engine) Hooks() *HookManager {
	return e.hooks
}

// Metrics returns the engine metrics.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Session returns the session id used in log lines.
func (e *Engine) Session() string {
	return e.session
}
