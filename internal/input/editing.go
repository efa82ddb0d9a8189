package input

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/input/nav"
	"github.com/dshills/crossplay/internal/input/queue"
)

// validSymbols are the non-alphanumeric characters themed puzzles use.
const validSymbols = "!@#$%^&*()-+=`~/?\\"

// validLetter upper-cases k and reports whether it can be typed into a
// cell: a single ASCII letter or digit, or one of validSymbols.
func validLetter(k string) (string, bool) {
	letter := strings.ToUpper(k)
	if utf8.RuneCountInString(letter) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(letter)
	switch {
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return letter, true
	case strings.ContainsRune(validSymbols, r):
		return letter, true
	}
	return "", false
}

// submit schedules a grid mutation. In sync mode it runs before submit
// returns.
func (e *Engine) submit(what string, job queue.Job) {
	if _, err := e.queue.Submit(job); err != nil {
		e.logger.Warn("dropped %s: %v", what, err)
	}
}

// typeLetter schedules letter for the selected cell. The rebus trigger
// toggles rebus entry instead of being written: while it is on, letters
// are appended to the cell and the cursor stays put. shift marks a single
// letter as rebus.
func (e *Engine) typeLetter(letter string, shift bool) {
	if letter == grid.RebusTrigger {
		if !e.rebus {
			e.rebus = true
			return
		}
		e.rebus = false
		e.submit("rebus end", e.advance)
		return
	}

	rebus := shift || e.rebus
	e.metrics.RecordLetter()
	e.submit("letter "+letter, func() {
		e.commitLetter(letter, rebus)
	})
}

// commitLetter writes letter at the selection as it is when the commit
// fires. A plain letter advances the cursor before the write lands.
func (e *Engine) commitLetter(letter string, rebus bool) {
	sel := e.host.Selected()
	value := letter
	if rebus {
		current := e.host.Geometry().Cell(sel.R, sel.C).Value
		value = grid.AppendRebus(current, letter, e.cfg.rebusCap())
	} else {
		e.advance()
	}
	e.host.UpdateGrid(sel.R, sel.C, value)
}

// advance moves to the next empty cell of the run, else the next cell,
// else (when configured) the next clue.
func (e *Engine) advance() {
	if p, ok := e.navigator().Advance(e.host.Selected(), e.host.Direction()); ok {
		e.host.SetSelected(p)
		return
	}
	if e.cfg.AdvanceToNextClue {
		e.selectNextClue(false)
	}
}

// clearSelected empties the selected cell. Good and empty cells are left
// alone and reported as false.
func (e *Engine) clearSelected() bool {
	sel := e.host.Selected()
	cell := e.host.Geometry().Cell(sel.R, sel.C)
	if cell.Value == "" || cell.Good {
		return false
	}
	e.host.UpdateGrid(sel.R, sel.C, "")
	return true
}

func (e *Engine) deleteCell() {
	e.submit("delete", func() { e.clearSelected() })
}

// backspace clears the selected cell, or when it is already empty moves to
// the previous cell and clears that one. stay suppresses the move.
func (e *Engine) backspace(stay bool) {
	e.submit("backspace", func() {
		if e.clearSelected() || stay {
			return
		}
		p, ok := e.navigator().PreviousCellWrapping(e.host.Selected(), e.host.Direction())
		if !ok {
			return
		}
		e.host.SetSelected(p)
		e.clearSelected()
	})
}

// deleteWord clears every unverified cell of the selected run and moves to
// its first cell.
func (e *Engine) deleteWord() {
	e.submit("delete word", func() {
		g := e.host.Geometry()
		word := e.navigator().Word(e.host.Selected(), e.host.Direction())
		for _, p := range word {
			if cell := g.Cell(p.R, p.C); cell.Value != "" && !cell.Good {
				e.host.UpdateGrid(p.R, p.C, "")
			}
		}
		if len(word) > 0 {
			e.host.SetSelected(word[0])
		}
	})
}

// reorient switches to axis when the arrow key should only turn the
// cursor, and reports whether it did.
func (e *Engine) reorient(axis grid.Direction) bool {
	if !nav.Reorient(e.host.Direction(), axis, e.host.CanSetDirection) {
		return false
	}
	e.host.SetDirection(axis)
	return true
}

func (e *Engine) moveBy(dr, dc int) {
	p, ok := e.navigator().MoveBy(e.host.Selected(), dr, dc, e.host.EditMode())
	if ok {
		e.host.SetSelected(p)
	}
}

func (e *Engine) moveInDirection(sign int) {
	p, ok := e.navigator().MoveInDirection(e.host.Selected(), e.host.Direction(), sign, e.host.EditMode())
	if ok {
		e.host.SetSelected(p)
	}
}

func (e *Engine) flipDirection() {
	other := e.host.Direction().Other()
	if e.host.CanSetDirection(other) {
		e.host.SetDirection(other)
	}
}

func (e *Engine) selectNextClue(backwards bool) {
	n := e.navigator()
	ref := n.NextClue(e.host.Selected(), e.host.Direction(), e.host.Clues(), backwards, false)
	e.selectClueWith(n, ref)
}

// selectClue turns to the clue's direction and selects its first empty
// cell, or its root when the run is full. False if the clue does not exist.
func (e *Engine) selectClue(ref grid.ClueRef) bool {
	return e.selectClueWith(e.navigator(), ref)
}

func (e *Engine) selectClueWith(n *nav.Navigator, ref grid.ClueRef) bool {
	p, ok := n.ClueTarget(ref)
	if !ok {
		return false
	}
	e.host.SetDirection(ref.Direction)
	e.host.SetSelected(p)
	return true
}
