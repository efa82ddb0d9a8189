package input

import (
	"sort"
	"sync"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/logging"
)

// State is a snapshot of the session handed to hooks.
type State struct {
	Keybind   mode.Keybind
	Mode      mode.VimMode
	Selected  grid.Position
	Direction grid.Direction
	Cmdline   string
}

// Hook allows interception of key handling. Hooks run with the engine lock
// held and must not call back into the engine.
type Hook interface {
	// PreKeyEvent is called before a key event is handled.
	// Return true to consume the event (stop further processing).
	PreKeyEvent(ev *key.Event, st State) bool

	// PostKeyEvent is called after a key event is handled.
	PostKeyEvent(ev key.Event, handled bool, st State)

	// PreAction is called before an action runs.
	// Return true to consume the action.
	PreAction(name string, st State) bool
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// HookID uniquely identifies a registered hook.
type HookID uint64

type hookRegistration struct {
	id       HookID
	name     string
	priority HookPriority
	hook     Hook
}

// HookManager keeps hooks in priority order.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []hookRegistration
	nextID  HookID
	enabled bool
}

// NewHookManager creates an empty, enabled HookManager.
func NewHookManager() *HookManager {
	return &HookManager{enabled: true}
}

// Register adds a hook. Hooks of equal priority run in registration order.
func (m *HookManager) Register(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, hookRegistration{
		id:       m.nextID,
		name:     name,
		priority: priority,
		hook:     hook,
	})
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].priority < m.hooks[j].priority
	})
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].id == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns hook names in execution order.
func (m *HookManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.hooks))
	for i, reg := range m.hooks {
		names[i] = reg.name
	}
	return names
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// snapshot copies the hooks for iteration outside the lock.
func (m *HookManager) snapshot() []Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].hook
	}
	return hooks
}

// RunPreKeyEvent runs PreKeyEvent hooks and reports whether one consumed
// the event.
func (m *HookManager) RunPreKeyEvent(ev *key.Event, st State) bool {
	for _, hook := range m.snapshot() {
		if hook.PreKeyEvent(ev, st) {
			return true
		}
	}
	return false
}

// RunPostKeyEvent runs PostKeyEvent hooks.
func (m *HookManager) RunPostKeyEvent(ev key.Event, handled bool, st State) {
	for _, hook := range m.snapshot() {
		hook.PostKeyEvent(ev, handled, st)
	}
}

// RunPreAction runs PreAction hooks and reports whether one consumed the
// action.
func (m *HookManager) RunPreAction(name string, st State) bool {
	for _, hook := range m.snapshot() {
		if hook.PreAction(name, st) {
			return true
		}
	}
	return false
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreKeyEvent is a no-op that does not consume events.
func (BaseHook) PreKeyEvent(*key.Event, State) bool { return false }

// PostKeyEvent is a no-op.
func (BaseHook) PostKeyEvent(key.Event, bool, State) {}

// PreAction is a no-op that does not consume actions.
func (BaseHook) PreAction(string, State) bool { return false }

// FuncHook wraps functions into a Hook interface implementation.
type FuncHook struct {
	PreKeyEventFunc  func(*key.Event, State) bool
	PostKeyEventFunc func(key.Event, bool, State)
	PreActionFunc    func(string, State) bool
}

// PreKeyEvent calls PreKeyEventFunc if set.
func (h FuncHook) PreKeyEvent(ev *key.Event, st State) bool {
	return h.PreKeyEventFunc != nil && h.PreKeyEventFunc(ev, st)
}

// PostKeyEvent calls PostKeyEventFunc if set.
func (h FuncHook) PostKeyEvent(ev key.Event, handled bool, st State) {
	if h.PostKeyEventFunc != nil {
		h.PostKeyEventFunc(ev, handled, st)
	}
}

// PreAction calls PreActionFunc if set.
func (h FuncHook) PreAction(name string, st State) bool {
	return h.PreActionFunc != nil && h.PreActionFunc(name, st)
}

// LoggingHook logs every key event and action at debug level.
type LoggingHook struct {
	BaseHook
	Logger *logging.Logger
}

// PreKeyEvent logs the key event.
func (h LoggingHook) PreKeyEvent(ev *key.Event, st State) bool {
	h.Logger.WithField("mode", st.Mode).Debug("key event: %s", ev)
	return false
}

// PostKeyEvent logs whether the event was handled.
func (h LoggingHook) PostKeyEvent(ev key.Event, handled bool, st State) {
	h.Logger.WithField("selected", st.Selected).Debug("key %s handled=%t", ev, handled)
}

// PreAction logs action dispatch.
func (h LoggingHook) PreAction(name string, _ State) bool {
	h.Logger.Debug("dispatching: %s", name)
	return false
}
