package mode

import (
	"sync"
)

// ChangeCallback is called after the vim sub-mode changes.
type ChangeCallback func(from, to VimMode)

// Manager holds the keybind and the current vim sub-mode.
type Manager struct {
	mu sync.RWMutex

	keybind  Keybind
	current  VimMode
	previous VimMode

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// NewManager creates a manager in Normal mode.
func NewManager(kb Keybind) *Manager {
	return &Manager{keybind: kb}
}

// Keybind returns the active keybind.
func (m *Manager) Keybind() Keybind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keybind
}

// SetKeybind changes the keybind. Switching schemes always returns to
// Normal, which notifies callbacks if the mode changed.
func (m *Manager) SetKeybind(kb Keybind) {
	m.mu.Lock()
	m.keybind = kb
	m.mu.Unlock()
	m.Switch(Normal)
}

// Current returns the current vim sub-mode.
func (m *Manager) Current() VimMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode before the last switch.
func (m *Manager) Previous() VimMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Is reports whether the current mode is mode.
func (m *Manager) Is(mode VimMode) bool {
	return m.Current() == mode
}

// Switch changes to mode and reports whether anything changed. Under the
// Standard keybind only Normal is reachable.
func (m *Manager) Switch(to VimMode) bool {
	m.mu.Lock()
	if m.current == to || (m.keybind == Standard && to != Normal) {
		m.mu.Unlock()
		return false
	}

	from := m.current
	m.previous = from
	m.current = to

	// Copy callbacks to call outside of lock
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
	return true
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}
