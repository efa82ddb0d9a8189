// Package grid provides the crossword grid model consumed by the input engine.
//
// The engine never owns a grid. It talks to one through the Geometry
// interface, which answers bounds, colour, clue numbering, and run queries.
// Grid is the reference Geometry used by the terminal host and by tests:
// a rectangular, numbered array of cells that can be loaded from a YAML
// puzzle file.
package grid
