package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKeybind is returned by ParseKeybind for unrecognized names.
var ErrUnknownKeybind = errors.New("unknown keybind")

// Keybind selects the key handling scheme.
type Keybind uint8

const (
	// Standard is the modeless scheme.
	Standard Keybind = iota
	// Vim is the modal scheme.
	Vim
)

// String returns the keybind name.
func (k Keybind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Vim:
		return "vim"
	default:
		return "unknown"
	}
}

// ParseKeybind parses "standard" or "vim", ignoring case.
func ParseKeybind(s string) (Keybind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return Standard, nil
	case "vim":
		return Vim, nil
	default:
		return Standard, fmt.Errorf("%q: %w", s, ErrUnknownKeybind)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Keybind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Keybind) UnmarshalText(text []byte) error {
	parsed, err := ParseKeybind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// VimMode is the vim sub-mode. It is Normal whenever the keybind is
// Standard.
type VimMode uint8

const (
	// Normal runs commands.
	Normal VimMode = iota
	// Insert types letters.
	Insert
	// Command edits the command line.
	Command
)

// String returns the mode identifier.
func (m VimMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// DisplayName returns a label for a status line.
func (m VimMode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "-- INSERT --"
	case Command:
		return "COMMAND"
	default:
		return ""
	}
}

// CursorStyle returns the cursor style a host should show in this mode.
func (m VimMode) CursorStyle() CursorStyle {
	switch m {
	case Insert:
		return CursorBar
	case Command:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor (command mode).
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}
