package key

import (
	"github.com/gdamore/tcell/v2"
)

// FromTcell translates a terminal key event. The second result is false for
// keys the engine has no name for.
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	mods := convertMod(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		// An uppercase rune alone does not mean Shift was held; Caps Lock
		// produces the same rune.
		return Event{Key: string(ev.Rune()), Modifiers: mods}, true
	case tcell.KeyLeft:
		return Event{Key: ArrowLeft, Modifiers: mods}, true
	case tcell.KeyUp:
		return Event{Key: ArrowUp, Modifiers: mods}, true
	case tcell.KeyDown:
		return Event{Key: ArrowDown, Modifiers: mods}, true
	case tcell.KeyRight:
		return Event{Key: ArrowRight, Modifiers: mods}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: Backspace, Modifiers: mods &^ ModCtrl}, true
	case tcell.KeyDelete:
		return Event{Key: Delete, Modifiers: mods}, true
	case tcell.KeyTab:
		return Event{Key: Tab, Modifiers: mods &^ ModCtrl}, true
	case tcell.KeyBacktab:
		return Event{Key: Tab, Modifiers: mods | ModShift}, true
	case tcell.KeyEnter:
		return Event{Key: Enter, Modifiers: mods &^ ModCtrl}, true
	case tcell.KeyEscape:
		return Event{Key: Escape, Modifiers: mods &^ ModCtrl}, true
	}

	k := ev.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Event{Key: string(rune('a' + int(k-tcell.KeyCtrlA))), Modifiers: mods | ModCtrl}, true
	}
	return Event{}, false
}

// convertMod converts tcell modifiers.
func convertMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= ModMeta
	}
	return mod
}
