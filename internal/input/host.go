package input

import (
	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/mode"
)

// Host owns the grid and the selection. The engine reads them through the
// getters and requests every change through the setters; a setter must be
// visible to the next getter call.
//
// Host methods are called with the engine lock held, from the goroutine
// that delivered the key event or from the typing worker. They must not
// call back into the engine.
type Host interface {
	// Geometry returns the grid being played.
	Geometry() grid.Geometry

	// Selected returns the selected cell.
	Selected() grid.Position

	// Direction returns the current entry direction.
	Direction() grid.Direction

	// Clues returns the clue text, or nil to derive clues from numbering.
	Clues() grid.Clues

	// EditMode reports whether black squares are selectable.
	EditMode() bool

	// Frozen reports whether letter entry is disabled.
	Frozen() bool

	SetSelected(p grid.Position)
	SetDirection(d grid.Direction)
	CanSetDirection(d grid.Direction) bool

	// UpdateGrid commits a cell value.
	UpdateGrid(r, c int, value string)

	SetVimMode(m mode.VimMode)
	SetCmdline(text string)

	OnPressEnter()
	OnPressPeriod()
	OnPressEscape()
}

// HostFuncs adapts a set of functions to the Host interface. GeometryFunc
// and SelectedFunc are required; any other nil field behaves as a no-op,
// a zero value, or, for CanSetDirectionFunc, "allowed".
type HostFuncs struct {
	GeometryFunc        func() grid.Geometry
	SelectedFunc        func() grid.Position
	DirectionFunc       func() grid.Direction
	CluesFunc           func() grid.Clues
	EditModeFunc        func() bool
	FrozenFunc          func() bool
	SetSelectedFunc     func(grid.Position)
	SetDirectionFunc    func(grid.Direction)
	CanSetDirectionFunc func(grid.Direction) bool
	UpdateGridFunc      func(r, c int, value string)
	SetVimModeFunc      func(mode.VimMode)
	SetCmdlineFunc      func(string)
	OnPressEnterFunc    func()
	OnPressPeriodFunc   func()
	OnPressEscapeFunc   func()
}

var _ Host = HostFuncs{}

// Geometry calls GeometryFunc.
func (h HostFuncs) Geometry() grid.Geometry {
	return h.GeometryFunc()
}

// Selected calls SelectedFunc.
func (h HostFuncs) Selected() grid.Position {
	return h.SelectedFunc()
}

// Direction calls DirectionFunc if set.
func (h HostFuncs) Direction() grid.Direction {
	if h.DirectionFunc != nil {
		return h.DirectionFunc()
	}
	return grid.Across
}

// Clues calls CluesFunc if set.
func (h HostFuncs) Clues() grid.Clues {
	if h.CluesFunc != nil {
		return h.CluesFunc()
	}
	return nil
}

// EditMode calls EditModeFunc if set.
func (h HostFuncs) EditMode() bool {
	return h.EditModeFunc != nil && h.EditModeFunc()
}

// Frozen calls FrozenFunc if set.
func (h HostFuncs) Frozen() bool {
	return h.FrozenFunc != nil && h.FrozenFunc()
}

// SetSelected calls SetSelectedFunc if set.
func (h HostFuncs) SetSelected(p grid.Position) {
	if h.SetSelectedFunc != nil {
		h.SetSelectedFunc(p)
	}
}

// SetDirection calls SetDirectionFunc if set.
func (h HostFuncs) SetDirection(d grid.Direction) {
	if h.SetDirectionFunc != nil {
		h.SetDirectionFunc(d)
	}
}

// CanSetDirection calls CanSetDirectionFunc if set.
func (h HostFuncs) CanSetDirection(d grid.Direction) bool {
	return h.CanSetDirectionFunc == nil || h.CanSetDirectionFunc(d)
}

// UpdateGrid calls UpdateGridFunc if set.
func (h HostFuncs) UpdateGrid(r, c int, value string) {
	if h.UpdateGridFunc != nil {
		h.UpdateGridFunc(r, c, value)
	}
}

// SetVimMode calls SetVimModeFunc if set.
func (h HostFuncs) SetVimMode(m mode.VimMode) {
	if h.SetVimModeFunc != nil {
		h.SetVimModeFunc(m)
	}
}

// SetCmdline calls SetCmdlineFunc if set.
func (h HostFuncs) SetCmdline(text string) {
	if h.SetCmdlineFunc != nil {
		h.SetCmdlineFunc(text)
	}
}

// OnPressEnter calls OnPressEnterFunc if set.
func (h HostFuncs) OnPressEnter() {
	if h.OnPressEnterFunc != nil {
		h.OnPressEnterFunc()
	}
}

// OnPressPeriod calls OnPressPeriodFunc if set.
func (h HostFuncs) OnPressPeriod() {
	if h.OnPressPeriodFunc != nil {
		h.OnPressPeriodFunc()
	}
}

// OnPressEscape calls OnPressEscapeFunc if set.
func (h HostFuncs) OnPressEscape() {
	if h.OnPressEscapeFunc != nil {
		h.OnPressEscapeFunc()
	}
}
