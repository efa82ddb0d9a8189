// Package input turns keystrokes into crossword cursor movement and cell
// edits.
//
// An Engine serves one puzzle session for one Host. The host owns the grid
// and the selection; the engine reads them and asks the host to change
// them. Two keybinds are supported:
//
//   - Standard: arrows, Tab, Space, Backspace and Delete navigate and edit,
//     and every valid letter is typed into the grid.
//   - Vim: the same navigation keys plus three sub-modes. NORMAL feeds keys
//     to a command trie (h j k l x w b i : and the "d d" chord), INSERT
//     types letters, and COMMAND edits a ":12a" style clue jump.
//
// # Typing
//
// Letters are committed through a queue.Queue. In the default throttled
// mode commits are spaced 30ms apart and fire in submission order; each
// commit reads the selection when it fires, advances the cursor, and then
// writes the letter. The "/" key starts and ends rebus entry, during which
// letters are appended to the selected cell.
//
// # Usage
//
//	eng, err := input.New(host, input.DefaultConfig(), input.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//
//	// From the host's key handler:
//	if eng.HandleKeyEvent(k, shift, inTextField, ctrlOrMeta) {
//		preventDefault()
//	}
package input
