package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/mode"
)

const (
	originX   = 2
	originY   = 1
	cellWidth = 4
)

var (
	styleCell     = tcell.StyleDefault
	styleBlack    = tcell.StyleDefault.Reverse(true)
	styleWord     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleGood     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNumber   = tcell.StyleDefault.Dim(true)
	styleStatus   = tcell.StyleDefault.Bold(true)
)

// cellOrigin returns the screen column and row of a grid cell.
func cellOrigin(p grid.Position) (int, int) {
	return originX + p.C*cellWidth, originY + p.R*2
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// cellLabel fits a value into the cell body, marking a cut-off rebus.
func cellLabel(value string) string {
	const room = cellWidth - 2
	if uniseg.GraphemeClusterCount(value) <= room {
		return value
	}
	return grid.TruncateGraphemes(value, room-1) + "+"
}

func draw(s tcell.Screen, v hostView, keybind mode.Keybind) {
	s.Clear()
	g := v.grid

	word := map[grid.Position]bool{}
	for _, p := range g.Word(v.sel.R, v.sel.C, v.dir) {
		word[p] = true
	}

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			p := grid.Position{R: r, C: c}
			x, y := cellOrigin(p)
			cell := g.Cell(r, c)

			style := styleCell
			switch {
			case cell.Black:
				style = styleBlack
			case p == v.sel:
				style = styleSelected
			case word[p]:
				style = styleWord
			case cell.Good:
				style = styleGood
			}

			if n := g.Number(r, c); n > 0 {
				drawText(s, x, y, styleNumber, fmt.Sprintf("%-*d", cellWidth-1, n))
			}
			body := fmt.Sprintf(" %-*s", cellWidth-2, cellLabel(cell.Value))
			if cell.Black {
				body = "   "
			}
			drawText(s, x, y+1, style, body)
		}
	}

	y := originY + g.Rows()*2 + 1
	drawText(s, originX, y, styleStatus, v.title)
	y++

	status := keybind.String()
	if keybind == mode.Vim {
		status = v.vimMode.DisplayName()
	}
	if n := g.Parent(v.sel.R, v.sel.C, v.dir); n > 0 {
		status += fmt.Sprintf("  %d %s: %s", n, v.dir, v.clues[v.dir][n])
	}
	if v.editMode {
		status += "  [edit]"
	}
	drawText(s, originX, y, styleCell, status)
	y++

	line := v.message
	if v.cmdline != "" {
		line = v.cmdline
	}
	drawText(s, originX, y, styleCell, line)
	y++
	if v.lastKey != "" {
		drawText(s, originX, y, styleNumber, "key: "+v.lastKey)
	}

	cx, cy := cellOrigin(v.sel)
	s.SetCursorStyle(cursorStyle(keybind, v.vimMode))
	s.ShowCursor(cx+1, cy+1)
	s.Show()
}

func cursorStyle(kb mode.Keybind, m mode.VimMode) tcell.CursorStyle {
	cs := mode.CursorBar
	if kb == mode.Vim {
		cs = m.CursorStyle()
	}
	switch cs {
	case mode.CursorBlock:
		return tcell.CursorStyleSteadyBlock
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBar
	}
}
