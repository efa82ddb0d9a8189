package key

import (
	"unicode/utf8"
)

// Key values for the non-character keys the engine understands.
const (
	ArrowLeft  = "ArrowLeft"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowRight = "ArrowRight"
	Backspace  = "Backspace"
	Delete     = "Delete"
	Tab        = "Tab"
	Enter      = "Enter"
	Escape     = "Escape"
	Space      = " "
	Period     = "."

	// VirtualDelete is the backspace key emitted by on-screen keyboards.
	VirtualDelete = "{del}"
)

// Event is a single key press.
type Event struct {
	// Key is the browser-style key value.
	Key string

	// Modifiers holds the modifier keys down at the time of the press.
	Modifiers Modifier

	// FromTextInput marks events that originated in a text field. The engine
	// leaves them to the field.
	FromTextInput bool
}

// NewEvent creates an event for k with an optional Shift.
func NewEvent(k string, shift bool) Event {
	e := Event{Key: k}
	if shift {
		e.Modifiers = ModShift
	}
	return e
}

// Shift reports whether Shift was held.
func (e Event) Shift() bool {
	return e.Modifiers.HasShift()
}

// Ignored reports whether the engine must pass the event through untouched.
func (e Event) Ignored() bool {
	return e.FromTextInput || e.Modifiers.IsPlatform()
}

// Rune returns the character of a single-character key.
func (e Event) Rune() (rune, bool) {
	if e.Key == "" || utf8.RuneCountInString(e.Key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(e.Key)
	return r, true
}

// IsChar reports whether the event carries a single character.
func (e Event) IsChar() bool {
	_, ok := e.Rune()
	return ok
}

// String returns the key, prefixed with modifiers when present.
func (e Event) String() string {
	name := e.Key
	if name == Space {
		name = "Space"
	}
	if e.Modifiers == ModNone {
		return name
	}
	return e.Modifiers.String() + "+" + name
}
