// Package key defines the key events consumed by the input engine.
//
// Keys are identified by their browser-style key value ("ArrowLeft",
// "Backspace", "a", " ") so that web, terminal, and virtual keyboard hosts
// can all feed the same engine. FromTcell translates terminal events.
package key
