package grid

// EmptyCellOptions tunes NextEmptyCell.
type EmptyCellOptions struct {
	// SkipFirst ignores the starting cell even when it is empty.
	SkipFirst bool
}

// Geometry answers the geometric questions the input engine asks about a
// grid. Implementations must be safe to call while the engine holds its
// session lock; they must not call back into the engine.
type Geometry interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// InBounds reports whether (r, c) lies inside the grid.
	InBounds(r, c int) bool

	// IsWhite reports whether (r, c) is a playable square.
	IsWhite(r, c int) bool

	// Cell returns the cell at (r, c). Out-of-bounds positions return the
	// zero Cell.
	Cell(r, c int) Cell

	// Parent returns the clue number governing the run through (r, c) in
	// the given direction, or 0 if the cell is not part of a numbered run.
	Parent(r, c int, dir Direction) int

	// NextClue returns the clue after (or before, when backwards) the given
	// one. With parallel set the search stays in the same direction.
	NextClue(number int, dir Direction, clues Clues, backwards, parallel bool) ClueRef

	// CellByNumber returns the root cell of the given clue number.
	CellByNumber(number int) (Position, bool)

	// NextEmptyCell scans forward from (r, c) within the current run for a
	// cell with an empty value.
	NextEmptyCell(r, c int, dir Direction, opts EmptyCellOptions) (Position, bool)

	// NextCell returns the next cell of the current run, if any.
	NextCell(r, c int, dir Direction) (Position, bool)

	// IsFilled reports whether every playable cell holds a value.
	IsFilled() bool
}
