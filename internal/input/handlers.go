package input

import (
	"unicode/utf8"

	"github.com/dshills/crossplay/internal/input/cmdline"
	"github.com/dshills/crossplay/internal/input/key"
	"github.com/dshills/crossplay/internal/input/mode"
	"github.com/dshills/crossplay/internal/input/trie"
)

// keyHandler handles one key event in one (keybind, mode) state and
// reports whether the event was consumed. It runs with the engine lock
// held.
type keyHandler interface {
	handleKey(e *Engine, ev key.Event) bool
}

type handlerKey struct {
	keybind mode.Keybind
	mode    mode.VimMode
}

var handlers = map[handlerKey]keyHandler{
	{mode.Standard, mode.Normal}: standardHandler{},
	{mode.Vim, mode.Normal}:      vimNormalHandler{},
	{mode.Vim, mode.Insert}:      vimInsertHandler{},
	{mode.Vim, mode.Command}:     vimCommandHandler{},
}

// handlerLocked picks the handler for the current state. The standard
// keybind has a single state.
func (e *Engine) handlerLocked() keyHandler {
	k := handlerKey{keybind: e.modes.Keybind(), mode: e.modes.Current()}
	if k.keybind == mode.Standard {
		k.mode = mode.Normal
	}
	if h, ok := handlers[k]; ok {
		return h
	}
	return standardHandler{}
}

// handleCommon handles the keys shared by every state: the action-key
// table and the period key. ok is false when ev is not one of them.
func (e *Engine) handleCommon(ev key.Event) (handled, ok bool) {
	if name, found := actionKeys[ev.Key]; found {
		return e.dispatch(name, ev.Shift()) == nil, true
	}
	if ev.Key == key.Period {
		e.host.OnPressPeriod()
		return true, true
	}
	return false, false
}

// typeIfLetter routes a valid letter to typing unless the host is frozen.
func (e *Engine) typeIfLetter(ev key.Event) bool {
	if e.host.Frozen() {
		return false
	}
	letter, ok := validLetter(ev.Key)
	if !ok {
		return false
	}
	e.typeLetter(letter, ev.Shift())
	return true
}

type standardHandler struct{}

func (standardHandler) handleKey(e *Engine, ev key.Event) bool {
	if handled, ok := e.handleCommon(ev); ok {
		return handled
	}
	switch ev.Key {
	case key.Enter:
		e.host.OnPressEnter()
		return true
	case key.Escape:
		e.host.OnPressEscape()
		return true
	}
	return e.typeIfLetter(ev)
}

// returnToNormal implements Escape for every vim sub-mode.
func returnToNormal(e *Engine, ev key.Event) bool {
	if ev.Key != key.Escape {
		return false
	}
	e.modes.Switch(mode.Normal)
	return true
}

type vimNormalHandler struct{}

// handleKey feeds the command trie. NORMAL mode consumes every key, even
// ones that match nothing.
func (vimNormalHandler) handleKey(e *Engine, ev key.Event) bool {
	if handled, ok := e.handleCommon(ev); ok {
		return handled
	}
	if returnToNormal(e, ev) {
		e.cursor.Reset()
		return true
	}

	res := e.cursor.Feed(ev.Key)
	if res.Abandoned {
		e.metrics.RecordAbandonedChord()
		e.logger.Debug("chord abandoned by %q", ev.Key)
	}
	if res.Status == trie.Matched {
		e.dispatch(res.Action, ev.Shift())
	}
	return true
}

type vimInsertHandler struct{}

func (vimInsertHandler) handleKey(e *Engine, ev key.Event) bool {
	if handled, ok := e.handleCommon(ev); ok {
		return handled
	}
	if returnToNormal(e, ev) {
		return true
	}
	return e.typeIfLetter(ev)
}

type vimCommandHandler struct{}

// handleKey edits the command line. Backspace and Enter belong to the line;
// the rest of the action-key table and the period key still act on the
// grid.
func (vimCommandHandler) handleKey(e *Engine, ev key.Event) bool {
	if returnToNormal(e, ev) {
		return true
	}

	switch ev.Key {
	case key.Backspace, key.VirtualDelete:
		e.cmd.Backspace()
		if e.cmd.Len() == 0 {
			e.modes.Switch(mode.Normal)
			return true
		}
		e.host.SetCmdline(e.cmd.String())
		return true
	case key.Enter:
		e.commitCmdline()
		return true
	}

	if handled, ok := e.handleCommon(ev); ok {
		return handled
	}
	if utf8.RuneCountInString(ev.Key) == 1 {
		e.setCmdline(e.cmd.String() + ev.Key)
	}
	return true
}

// commitCmdline jumps to the clue on the command line and returns to
// NORMAL. A malformed line is dropped.
func (e *Engine) commitCmdline() {
	line := e.cmd.String()
	e.modes.Switch(mode.Normal)

	ref, err := cmdline.Parse(line)
	if err != nil {
		e.logger.Debug("command line %q: %v", line, err)
		return
	}
	if !e.selectClue(ref) {
		e.logger.Debug("command line %q: no clue %s", line, ref)
		return
	}
	e.metrics.RecordClueJump()
}
