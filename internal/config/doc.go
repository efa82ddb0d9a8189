// Package config loads crossplay settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML settings file
//  3. CROSSPLAY_* environment variables
//
// # Configuration File
//
//	[input]
//	keybind = "vim"
//	sync_typing = false
//	throttle_interval = "30ms"
//	rebus_cap = 10
//	max_scan_steps = 500
//	advance_to_next_clue = false
//	retry_unmatched_chord = false
//	edit_mode = false
//
//	[input.bindings]
//	"g g" = "clue.prev"
//
//	[logging]
//	level = "info"
//
// A missing file is not an error; the defaults apply. Unknown keys are
// rejected so that typos surface as a ParseError instead of being ignored.
//
// # Live Reload
//
// A Watcher reloads the file when it changes and hands the new Settings to
// its handlers. A reload that fails to parse or validate is logged and the
// previous settings stay in force.
package config
