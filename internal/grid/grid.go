package grid

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRectangular is returned when rows have different lengths.
var ErrNotRectangular = errors.New("grid is not rectangular")

// ErrEmptyGrid is returned for a grid with no cells.
var ErrEmptyGrid = errors.New("grid has no cells")

// Grid is a rectangular, numbered crossword grid.
// It implements Geometry. Cell values may be changed with Set; the black
// pattern, and therefore the numbering, is fixed at construction.
type Grid struct {
	mu sync.RWMutex

	cells [][]Cell
	rows  int
	cols  int

	// numbers[r][c] is the printed clue number, 0 when unnumbered.
	numbers [][]int

	// roots maps a clue number to its root cell.
	roots map[int]Position

	// starts lists the numbers that begin a run in each direction.
	starts map[Direction][]int
}

// New builds a Grid from a row-major cell matrix. The matrix is copied.
func New(cells [][]Cell) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	cols := len(cells[0])
	copied := make([][]Cell, len(cells))
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), cols, ErrNotRectangular)
		}
		copied[r] = make([]Cell, cols)
		copy(copied[r], row)
	}

	g := &Grid{
		cells:  copied,
		rows:   len(cells),
		cols:   cols,
		roots:  make(map[int]Position),
		starts: make(map[Direction][]int),
	}
	g.number()
	return g, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(cells [][]Cell) *Grid {
	g, err := New(cells)
	if err != nil {
		panic(err)
	}
	return g
}

// number assigns clue numbers in reading order.
func (g *Grid) number() {
	g.numbers = make([][]int, g.rows)
	next := 1
	for r := 0; r < g.rows; r++ {
		g.numbers[r] = make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if !g.isWhite(r, c) {
				continue
			}
			across := g.startsRun(r, c, Across)
			down := g.startsRun(r, c, Down)
			if !across && !down {
				continue
			}
			g.numbers[r][c] = next
			g.roots[next] = Position{R: r, C: c}
			if across {
				g.starts[Across] = append(g.starts[Across], next)
			}
			if down {
				g.starts[Down] = append(g.starts[Down], next)
			}
			next++
		}
	}
}

// startsRun reports whether (r, c) begins a run of two or more cells.
func (g *Grid) startsRun(r, c int, dir Direction) bool {
	dr, dc := dir.Step()
	return !g.isWhite(r-dr, c-dc) && g.isWhite(r+dr, c+dc)
}

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

func (g *Grid) isWhite(r, c int) bool {
	return g.inBounds(r, c) && !g.cells[r][c].Black
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (r, c) lies inside the grid.
func (g *Grid) InBounds(r, c int) bool {
	return g.inBounds(r, c)
}

// IsWhite reports whether (r, c) is an in-bounds playable square.
func (g *Grid) IsWhite(r, c int) bool {
	return g.isWhite(r, c)
}

// Cell returns a copy of the cell at (r, c).
func (g *Grid) Cell(r, c int) Cell {
	if !g.inBounds(r, c) {
		return Cell{}
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[r][c]
}

// Set replaces the value at (r, c). Black or out-of-bounds cells are ignored.
func (g *Grid) Set(r, c int, value string) {
	if !g.isWhite(r, c) {
		return
	}
	g.mu.Lock()
	g.cells[r][c].Value = value
	g.mu.Unlock()
}

// SetGood marks or unmarks the cell at (r, c) as verified.
func (g *Grid) SetGood(r, c int, good bool) {
	if !g.isWhite(r, c) {
		return
	}
	g.mu.Lock()
	g.cells[r][c].Good = good
	g.mu.Unlock()
}

// Number returns the printed clue number at (r, c), or 0.
func (g *Grid) Number(r, c int) int {
	if !g.inBounds(r, c) {
		return 0
	}
	return g.numbers[r][c]
}

// runStart walks back from (r, c) to the first cell of its run.
func (g *Grid) runStart(r, c int, dir Direction) Position {
	dr, dc := dir.Step()
	for g.isWhite(r-dr, c-dc) {
		r -= dr
		c -= dc
	}
	return Position{R: r, C: c}
}

// Parent returns the clue number of the run through (r, c).
func (g *Grid) Parent(r, c int, dir Direction) int {
	if !g.isWhite(r, c) {
		return 0
	}
	start := g.runStart(r, c, dir)
	if !g.startsRun(start.R, start.C, dir) {
		return 0
	}
	return g.numbers[start.R][start.C]
}

// CellByNumber returns the root cell of a clue number.
func (g *Grid) CellByNumber(number int) (Position, bool) {
	p, ok := g.roots[number]
	return p, ok
}

// NextCell returns the cell after (r, c) in the same run.
func (g *Grid) NextCell(r, c int, dir Direction) (Position, bool) {
	dr, dc := dir.Step()
	next := Position{R: r + dr, C: c + dc}
	if !g.isWhite(r, c) || !g.isWhite(next.R, next.C) {
		return Position{}, false
	}
	return next, true
}

// NextEmptyCell scans the run forward from (r, c) for an empty cell.
func (g *Grid) NextEmptyCell(r, c int, dir Direction, opts EmptyCellOptions) (Position, bool) {
	dr, dc := dir.Step()
	g.mu.RLock()
	defer g.mu.RUnlock()

	first := true
	for g.isWhite(r, c) {
		if !(first && opts.SkipFirst) && g.cells[r][c].Value == "" {
			return Position{R: r, C: c}, true
		}
		first = false
		r += dr
		c += dc
	}
	return Position{}, false
}

// IsFilled reports whether every playable cell holds a value.
func (g *Grid) IsFilled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, row := range g.cells {
		for _, cell := range row {
			if !cell.Black && cell.Value == "" {
				return false
			}
		}
	}
	return true
}

// Word returns every cell of the run through (r, c) in reading order.
func (g *Grid) Word(r, c int, dir Direction) []Position {
	if !g.isWhite(r, c) {
		return nil
	}
	dr, dc := dir.Step()
	p := g.runStart(r, c, dir)
	var word []Position
	for g.isWhite(p.R, p.C) {
		word = append(word, p)
		p = p.Add(dr, dc)
	}
	return word
}

// clueOrder lists every clue, across first, each direction in number order.
// Directions with explicit clue text use those numbers; others use the
// grid numbering.
func (g *Grid) clueOrder(clues Clues, only *Direction) []ClueRef {
	var order []ClueRef
	for _, dir := range []Direction{Across, Down} {
		if only != nil && *only != dir {
			continue
		}
		var numbers []int
		if text := clues[dir]; len(text) > 0 {
			for n := range text {
				numbers = append(numbers, n)
			}
			sort.Ints(numbers)
		} else {
			numbers = g.starts[dir]
		}
		for _, n := range numbers {
			order = append(order, ClueRef{Direction: dir, Number: n})
		}
	}
	return order
}

// NextClue returns the neighbouring clue in clue-list order, wrapping at the
// ends. With parallel set the list is restricted to dir.
func (g *Grid) NextClue(number int, dir Direction, clues Clues, backwards, parallel bool) ClueRef {
	var only *Direction
	if parallel {
		only = &dir
	}
	order := g.clueOrder(clues, only)
	if len(order) == 0 {
		return ClueRef{Direction: dir, Number: number}
	}

	idx := -1
	for i, ref := range order {
		if ref.Direction == dir && ref.Number == number {
			idx = i
			break
		}
	}

	n := len(order)
	switch {
	case idx < 0 && backwards:
		return order[n-1]
	case idx < 0:
		return order[0]
	case backwards:
		return order[(idx-1+n)%n]
	default:
		return order[(idx+1)%n]
	}
}
