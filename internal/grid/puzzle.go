package grid

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoRows is returned for a puzzle file without a grid.
var ErrNoRows = errors.New("puzzle has no grid rows")

// Puzzle is a grid plus its clue text.
type Puzzle struct {
	Title string
	Grid  *Grid
	Clues Clues
}

// puzzleFile is the YAML layout of a puzzle.
//
//	title: Mini
//	grid:
//	  - "CAT#"
//	  - "_#__"
//	clues:
//	  across: {1: "Feline"}
//	  down: {1: "..."}
//
// '#' is a black square, '_' or ' ' an empty white square, anything else a
// pre-filled value.
type puzzleFile struct {
	Title string   `yaml:"title"`
	Grid  []string `yaml:"grid"`
	Clues struct {
		Across map[int]string `yaml:"across"`
		Down   map[int]string `yaml:"down"`
	} `yaml:"clues"`
}

// LoadPuzzleFile reads a YAML puzzle from disk.
func LoadPuzzleFile(path string) (*Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening puzzle file: %w", err)
	}
	defer f.Close()

	p, err := LoadPuzzle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadPuzzle decodes a YAML puzzle from r.
func LoadPuzzle(r io.Reader) (*Puzzle, error) {
	var pf puzzleFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, fmt.Errorf("decoding puzzle: %w", err)
	}
	if len(pf.Grid) == 0 {
		return nil, ErrNoRows
	}

	cells := make([][]Cell, len(pf.Grid))
	for r, line := range pf.Grid {
		for _, ch := range line {
			switch ch {
			case '#':
				cells[r] = append(cells[r], Cell{Black: true})
			case '_', ' ':
				cells[r] = append(cells[r], Cell{})
			default:
				cells[r] = append(cells[r], Cell{Value: strings.ToUpper(string(ch))})
			}
		}
	}

	g, err := New(cells)
	if err != nil {
		return nil, err
	}

	clues := Clues{}
	if len(pf.Clues.Across) > 0 {
		clues[Across] = pf.Clues.Across
	}
	if len(pf.Clues.Down) > 0 {
		clues[Down] = pf.Clues.Down
	}

	return &Puzzle{Title: pf.Title, Grid: g, Clues: clues}, nil
}
