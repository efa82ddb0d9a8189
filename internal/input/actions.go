package input

import (
	"sort"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/input/trie"
)

// Action names.
const (
	ActionLeft        = "left"
	ActionUp          = "up"
	ActionDown        = "down"
	ActionRight       = "right"
	ActionForward     = "forward"
	ActionBackward    = "backward"
	ActionBackspace   = "backspace"
	ActionDelete      = "delete"
	ActionTab         = "tab"
	ActionSpace       = "space"
	ActionNextClue    = "clue.next"
	ActionPrevClue    = "clue.prev"
	ActionDeleteWord  = "word.delete"
	ActionInsertMode  = "mode.insert"
	ActionCommandMode = "mode.command"
)

// actionKeys maps keys to actions under both keybinds.
var actionKeys = map[string]string{
	key.ArrowLeft:     ActionLeft,
	key.ArrowUp:       ActionUp,
	key.ArrowDown:     ActionDown,
	key.ArrowRight:    ActionRight,
	key.Backspace:     ActionBackspace,
	key.VirtualDelete: ActionBackspace,
	key.Delete:        ActionDelete,
	key.Tab:           ActionTab,
	key.Space:         ActionSpace,
	"[":               ActionBackward,
	"]":               ActionForward,
}

// DefaultBindings returns the NORMAL-mode command bindings.
func DefaultBindings() []trie.Binding {
	return []trie.Binding{
		{Keys: "h", Action: ActionLeft},
		{Keys: "j", Action: ActionDown},
		{Keys: "k", Action: ActionUp},
		{Keys: "l", Action: ActionRight},
		{Keys: "x", Action: ActionDelete},
		{Keys: "w", Action: ActionNextClue},
		{Keys: "b", Action: ActionPrevClue},
		{Keys: ":", Action: ActionCommandMode},
		{Keys: "i", Action: ActionInsertMode},
		{Keys: "d d", Action: ActionDeleteWord},
	}
}

// actionFunc runs an action. shift carries the modifier of the triggering
// key; its meaning is action specific.
type actionFunc func(e *Engine, shift bool)

var actions = map[string]actionFunc{
	ActionLeft:  arrow(grid.Across, 0, -1),
	ActionUp:    arrow(grid.Down, -1, 0),
	ActionDown:  arrow(grid.Down, 1, 0),
	ActionRight: arrow(grid.Across, 0, 1),

	ActionForward:  func(e *Engine, _ bool) { e.moveInDirection(1) },
	ActionBackward: func(e *Engine, _ bool) { e.moveInDirection(-1) },

	ActionBackspace:  func(e *Engine, shift bool) { e.backspace(shift) },
	ActionDelete:     func(e *Engine, _ bool) { e.deleteCell() },
	ActionDeleteWord: func(e *Engine, _ bool) { e.deleteWord() },

	ActionTab:      func(e *Engine, shift bool) { e.selectNextClue(shift) },
	ActionSpace:    func(e *Engine, _ bool) { e.flipDirection() },
	ActionNextClue: func(e *Engine, _ bool) { e.selectNextClue(false) },
	ActionPrevClue: func(e *Engine, _ bool) { e.selectNextClue(true) },

	ActionInsertMode: func(e *Engine, _ bool) { e.modes.Switch(mode.Insert) },
	ActionCommandMode: func(e *Engine, _ bool) {
		if e.modes.Switch(mode.Command) {
			e.setCmdline(":")
		}
	},
}

// ActionNames returns every known action name, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	_, ok := actions[name]
	return ok
}

// arrow builds the two-stage arrow action: re-orient to axis when allowed,
// otherwise move by (dr, dc).
func arrow(axis grid.Direction, dr, dc int) actionFunc {
	return func(e *Engine, _ bool) {
		if e.reorient(axis) {
			return
		}
		e.moveBy(dr, dc)
	}
}
