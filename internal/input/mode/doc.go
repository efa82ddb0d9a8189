// Package mode tracks the keybinding scheme and the vim sub-mode of an
// input session.
//
// Two keybinding schemes exist. Standard has no modes at all. Vim has
// three sub-modes:
//   - Normal: single keys and chords run commands
//   - Insert: letters are typed into the grid
//   - Command: keys build a ":<number><direction>" command line
//
// The Manager holds the current scheme and sub-mode and notifies
// registered callbacks after every change, outside its lock:
//
//	m := mode.NewManager(mode.Vim)
//	m.OnChange(func(from, to mode.VimMode) {
//		host.SetVimMode(to)
//	})
//	m.Switch(mode.Insert)
package mode
