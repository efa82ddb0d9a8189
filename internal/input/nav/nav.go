// Package nav computes cursor movement over a crossword grid.
//
// Every method is a query: it takes the current selection and returns where
// the cursor should go, leaving it to the caller to apply the result. Scans
// that could run away on a malformed grid are capped at MaxSteps and report
// "no match" when the cap is exhausted.
package nav

import (
	"github.com/dshills/crossplay/internal/grid"
)

// DefaultMaxSteps bounds every scanning loop.
const DefaultMaxSteps = 500

// Navigator answers navigation queries against a grid geometry.
type Navigator struct {
	grid     grid.Geometry
	maxSteps int
}

// New creates a Navigator. A non-positive maxSteps selects DefaultMaxSteps.
func New(g grid.Geometry, maxSteps int) *Navigator {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Navigator{grid: g, maxSteps: maxSteps}
}

// Geometry returns the grid being navigated.
func (n *Navigator) Geometry() grid.Geometry {
	return n.grid
}

// MaxSteps returns the scan cap.
func (n *Navigator) MaxSteps() int {
	return n.maxSteps
}

// IsSelectable reports whether the cursor may rest on p. In edit mode every
// in-bounds cell is selectable.
func (n *Navigator) IsSelectable(p grid.Position, editMode bool) bool {
	return editMode || n.grid.IsWhite(p.R, p.C)
}

// MoveBy steps from `from` by (dr, dc) until it reaches a selectable cell.
// It reports false if the scan leaves the grid or hits the step cap.
func (n *Navigator) MoveBy(from grid.Position, dr, dc int, editMode bool) (grid.Position, bool) {
	if dr == 0 && dc == 0 {
		return from, false
	}

	p := from.Add(dr, dc)
	for steps := 0; n.grid.InBounds(p.R, p.C); steps++ {
		if n.IsSelectable(p, editMode) {
			return p, true
		}
		if steps >= n.maxSteps {
			break
		}
		p = p.Add(dr, dc)
	}
	return from, false
}

// MoveInDirection moves one selectable cell forward (sign > 0) or backward
// (sign < 0) along dir.
func (n *Navigator) MoveInDirection(from grid.Position, dir grid.Direction, sign int, editMode bool) (grid.Position, bool) {
	dr, dc := dir.Step()
	return n.MoveBy(from, dr*sign, dc*sign, editMode)
}

// Reorient implements the two-stage arrow key: when the arrow's axis
// differs from the current direction and the host allows switching, the
// first press only changes direction. It reports true in that case; false
// means the arrow should move the cursor.
func Reorient(current, axis grid.Direction, canSet func(grid.Direction) bool) bool {
	if current == axis {
		return false
	}
	return canSet == nil || canSet(axis)
}

// NextEmptyCell finds the next empty cell of the run through `from`.
func (n *Navigator) NextEmptyCell(from grid.Position, dir grid.Direction, skipFirst bool) (grid.Position, bool) {
	return n.grid.NextEmptyCell(from.R, from.C, dir, grid.EmptyCellOptions{SkipFirst: skipFirst})
}

// NextCell returns the next cell of the run through `from`.
func (n *Navigator) NextCell(from grid.Position, dir grid.Direction) (grid.Position, bool) {
	return n.grid.NextCell(from.R, from.C, dir)
}

// Advance is where the cursor goes after a letter is typed at `from`: the
// next empty cell of the run, or else the next cell. False at the end of a
// filled run.
func (n *Navigator) Advance(from grid.Position, dir grid.Direction) (grid.Position, bool) {
	if p, ok := n.NextEmptyCell(from, dir, true); ok {
		return p, true
	}
	return n.NextCell(from, dir)
}

// PreviousCellWrapping steps backward along dir, wrapping from the start of
// a row to the end of the previous row (across) or from the top of a column
// to the bottom of the previous column (down). Black squares are skipped.
func (n *Navigator) PreviousCellWrapping(from grid.Position, dir grid.Direction) (grid.Position, bool) {
	rows, cols := n.grid.Rows(), n.grid.Cols()
	r, c := from.R, from.C

	step := func() {
		if dir == grid.Across {
			if c > 0 {
				c--
			} else {
				c = cols - 1
				r--
			}
			return
		}
		if r > 0 {
			r--
		} else {
			r = rows - 1
			c--
		}
	}

	step()
	for steps := 0; n.grid.InBounds(r, c); steps++ {
		if n.grid.IsWhite(r, c) {
			return grid.Position{R: r, C: c}, true
		}
		if steps >= n.maxSteps {
			break
		}
		step()
	}
	return from, false
}

// Parent returns the clue number of the run through `from`.
func (n *Navigator) Parent(from grid.Position, dir grid.Direction) int {
	return n.grid.Parent(from.R, from.C, dir)
}

// NextClue returns the clue after (or before) the one containing `from`.
func (n *Navigator) NextClue(from grid.Position, dir grid.Direction, clues grid.Clues, backwards, parallel bool) grid.ClueRef {
	return n.grid.NextClue(n.Parent(from, dir), dir, clues, backwards, parallel)
}

// ClueTarget returns the cell to select for a clue: its first empty cell,
// or its root when the run is full. False if the clue does not exist.
func (n *Navigator) ClueTarget(ref grid.ClueRef) (grid.Position, bool) {
	root, ok := n.grid.CellByNumber(ref.Number)
	if !ok {
		return grid.Position{}, false
	}
	if p, ok := n.NextEmptyCell(root, ref.Direction, false); ok {
		return p, true
	}
	return root, true
}

// Word returns the cells of the run through `from`, root first. The scan
// runs backward to the run start and then forward, both capped at MaxSteps.
func (n *Navigator) Word(from grid.Position, dir grid.Direction) []grid.Position {
	if !n.grid.IsWhite(from.R, from.C) {
		return nil
	}

	dr, dc := dir.Step()
	start := from
	for steps := 0; steps < n.maxSteps; steps++ {
		prev := start.Add(-dr, -dc)
		if !n.grid.IsWhite(prev.R, prev.C) {
			break
		}
		start = prev
	}

	var word []grid.Position
	for p := start; n.grid.IsWhite(p.R, p.C) && len(word) < n.maxSteps; p = p.Add(dr, dc) {
		word = append(word, p)
	}
	return word
}
