package grid

import (
	"fmt"
	"strings"
)

// Direction is the axis a clue runs along.
type Direction uint8

const (
	// Across runs left to right along a row.
	Across Direction = iota
	// Down runs top to bottom along a column.
	Down
)

// String returns "across" or "down".
func (d Direction) String() string {
	switch d {
	case Across:
		return "across"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Other returns the perpendicular direction.
func (d Direction) Other() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// Step returns the row and column delta of one forward step along d.
func (d Direction) Step() (dr, dc int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

// ParseDirection parses "across"/"a" or "down"/"d" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "across", "a":
		return Across, nil
	case "down", "d":
		return Down, nil
	default:
		return Across, fmt.Errorf("unknown direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Position is a cell coordinate. Rows and columns are 0-indexed.
type Position struct {
	R int
	C int
}

// Add returns the position offset by (dr, dc).
func (p Position) Add(dr, dc int) Position {
	return Position{R: p.R + dr, C: p.C + dc}
}

// String returns "(r,c)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.R, p.C)
}

// Cell is a single grid square.
type Cell struct {
	// Value is the user-entered content. A value longer than one
	// character is a rebus.
	Value string

	// Good marks a verified cell that normal deletion must not clear.
	Good bool

	// Black marks a non-playable square.
	Black bool
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Value == ""
}

// ClueRef identifies a clue by number and direction.
type ClueRef struct {
	Direction Direction
	Number    int
}

// String returns a compact form such as "12a" or "3d".
func (r ClueRef) String() string {
	return fmt.Sprintf("%d%c", r.Number, r.Direction.String()[0])
}

// Clues holds clue text keyed by direction and clue number.
// A nil or empty map for a direction means clues are derived from the
// grid numbering.
type Clues map[Direction]map[int]string
