// Package cmdline holds the COMMAND-mode line buffer and parses the clue
// jumps typed into it.
//
// A command line looks like ":12a" or ":7d". The leading colon is optional,
// a trailing "d" selects the down clue, and a trailing "a" or no suffix
// selects across.
package cmdline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/crossplay/internal/grid"
)

// Prompt is the text a fresh command line starts with.
const Prompt = ":"

var (
	// ErrEmpty is returned for a command line with no clue reference.
	ErrEmpty = errors.New("empty command line")

	// ErrNotNumeric is returned when the clue reference is not a positive
	// number.
	ErrNotNumeric = errors.New("clue reference is not a number")
)

// Buffer accumulates typed command-line text.
type Buffer struct {
	text string
}

// String returns the buffered text.
func (b *Buffer) String() string {
	return b.text
}

// Len returns the number of characters buffered.
func (b *Buffer) Len() int {
	return utf8.RuneCountInString(b.text)
}

// Set replaces the buffer contents.
func (b *Buffer) Set(text string) {
	b.text = text
}

// Append adds text to the end of the buffer.
func (b *Buffer) Append(text string) {
	b.text += text
}

// Backspace removes the last character. It is a no-op on an empty buffer.
func (b *Buffer) Backspace() {
	if b.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = ""
}

// Parse interprets a command line as a clue jump.
func Parse(line string) (grid.ClueRef, error) {
	s := strings.TrimPrefix(strings.TrimSpace(line), Prompt)
	s = strings.TrimSpace(s)
	if s == "" {
		return grid.ClueRef{}, ErrEmpty
	}

	ref := grid.ClueRef{Direction: grid.Across}
	switch s[len(s)-1] {
	case 'd', 'D':
		ref.Direction = grid.Down
		s = s[:len(s)-1]
	case 'a', 'A':
		s = s[:len(s)-1]
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return grid.ClueRef{}, fmt.Errorf("%q: %w", line, ErrNotNumeric)
	}
	ref.Number = n
	return ref, nil
}
