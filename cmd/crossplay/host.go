package main

import (
	"fmt"
	"sync"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input"
	"github.com/dshills/crossplay/internal/input/mode"
)

// termHost keeps the puzzle state the engine plays against. The engine
// calls it from the event loop and from the typing worker; the renderer
// reads it through view.
type termHost struct {
	mu sync.Mutex

	puzzle   *grid.Puzzle
	sel      grid.Position
	dir      grid.Direction
	editMode bool
	vimMode  mode.VimMode
	cmdline  string
	message  string
	lastKey  string

	// changed is called after a mutation so the screen can redraw.
	changed func()
}

var _ input.Host = (*termHost)(nil)

func newTermHost(p *grid.Puzzle, editMode bool) *termHost {
	h := &termHost{puzzle: p, dir: grid.Across, editMode: editMode, changed: func() {}}
	g := p.Grid
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.IsWhite(r, c) {
				h.sel = grid.Position{R: r, C: c}
				return h
			}
		}
	}
	return h
}

func (h *termHost) Geometry() grid.Geometry { return h.puzzle.Grid }
func (h *termHost) Clues() grid.Clues       { return h.puzzle.Clues }
func (h *termHost) Frozen() bool            { return false }

func (h *termHost) Selected() grid.Position {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sel
}

func (h *termHost) Direction() grid.Direction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dir
}

func (h *termHost) EditMode() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.editMode
}

func (h *termHost) SetSelected(p grid.Position) {
	h.mu.Lock()
	h.sel = p
	h.mu.Unlock()
	h.changed()
}

func (h *termHost) SetDirection(d grid.Direction) {
	h.mu.Lock()
	h.dir = d
	h.mu.Unlock()
	h.changed()
}

// CanSetDirection refuses to turn onto a direction with no run through the
// selected cell.
func (h *termHost) CanSetDirection(d grid.Direction) bool {
	sel := h.Selected()
	return h.puzzle.Grid.Parent(sel.R, sel.C, d) != 0
}

func (h *termHost) UpdateGrid(r, c int, value string) {
	h.puzzle.Grid.Set(r, c, value)
	h.changed()
}

func (h *termHost) SetVimMode(m mode.VimMode) {
	h.mu.Lock()
	h.vimMode = m
	h.mu.Unlock()
}

func (h *termHost) SetCmdline(text string) {
	h.mu.Lock()
	h.cmdline = text
	h.mu.Unlock()
}

// OnPressEnter reports progress.
func (h *termHost) OnPressEnter() {
	left := 0
	g := h.puzzle.Grid
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.IsWhite(r, c) && g.Cell(r, c).IsEmpty() {
				left++
			}
		}
	}
	if left == 0 {
		h.setMessage("grid filled")
		return
	}
	h.setMessage(fmt.Sprintf("%d cells left", left))
}

// OnPressPeriod toggles edit mode.
func (h *termHost) OnPressPeriod() {
	h.mu.Lock()
	h.editMode = !h.editMode
	on := h.editMode
	h.mu.Unlock()
	if on {
		h.setMessage("edit mode on")
	} else {
		h.setMessage("edit mode off")
	}
}

func (h *termHost) OnPressEscape() {
	h.setMessage("")
}

func (h *termHost) SetEditMode(on bool) {
	h.mu.Lock()
	h.editMode = on
	h.mu.Unlock()
}

func (h *termHost) setMessage(msg string) {
	h.mu.Lock()
	h.message = msg
	h.mu.Unlock()
}

func (h *termHost) setLastKey(k string) {
	h.mu.Lock()
	h.lastKey = k
	h.mu.Unlock()
}

// hostView is a consistent copy of the host state for drawing.
type hostView struct {
	title    string
	grid     *grid.Grid
	clues    grid.Clues
	sel      grid.Position
	dir      grid.Direction
	editMode bool
	vimMode  mode.VimMode
	cmdline  string
	message  string
	lastKey  string
}

func (h *termHost) view() hostView {
	h.mu.Lock()
	defer h.mu.Unlock()
	return hostView{
		title:    h.puzzle.Title,
		grid:     h.puzzle.Grid,
		clues:    h.puzzle.Clues,
		sel:      h.sel,
		dir:      h.dir,
		editMode: h.editMode,
		vimMode:  h.vimMode,
		cmdline:  h.cmdline,
		message:  h.message,
		lastKey:  h.lastKey,
	}
}
