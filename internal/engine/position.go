// Package engine implements the chess rules: board representation, move
// legality, move application, game replay and board serialization. It does no
// I/O and holds no shared mutable state.
package engine

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinIndex is the lowest valid column or row.
	MinIndex = 1
	// MaxIndex is the highest valid column or row.
	MaxIndex = 8
)

var coordinatesRe = regexp.MustCompile(`^[A-H][1-8]$`)

// Position identifies a square by column (A=1 .. H=8) and row (1 .. 8).
// The zero value is not a valid square and is used as "no square".
type Position struct {
	Col int
	Row int
}

// RangeError reports a column or row outside [MinIndex, MaxIndex].
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d", e.Field, MinIndex, MaxIndex)
}

// FormatError reports coordinates that do not match the file+rank pattern.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("coordinates %q must match %s", e.Input, coordinatesRe.String())
}

// NewPosition validates col and row.
func NewPosition(col, row int) (Position, error) {
	if col < MinIndex || col > MaxIndex {
		return Position{}, &RangeError{Field: "col", Value: col}
	}
	if row < MinIndex || row > MaxIndex {
		return Position{}, &RangeError{Field: "row", Value: row}
	}
	return Position{Col: col, Row: row}, nil
}

// MustPosition is NewPosition for constants; it panics on invalid input.
func MustPosition(col, row int) Position {
	pos, err := NewPosition(col, row)
	if err != nil {
		panic(err)
	}
	return pos
}

// ParsePosition parses coordinates such as "B4". Lower-case files are accepted.
func ParsePosition(s string) (Position, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if !coordinatesRe.MatchString(upper) {
		return Position{}, &FormatError{Input: s}
	}
	return Position{Col: int(upper[0]-'A') + 1, Row: int(upper[1]-'0')}, nil
}

// MustParsePosition is ParsePosition for literals in tests and tables.
func MustParsePosition(s string) Position {
	pos, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return pos
}

// IsValid reports whether p is on the board.
func (p Position) IsValid() bool {
	return p.Col >= MinIndex && p.Col <= MaxIndex && p.Row >= MinIndex && p.Row <= MaxIndex
}

// Relative returns the square offset by (colOffset, rowOffset), or false when
// that square is off the board.
func (p Position) Relative(colOffset, rowOffset int) (Position, bool) {
	next := Position{Col: p.Col + colOffset, Row: p.Row + rowOffset}
	if !next.IsValid() {
		return Position{}, false
	}
	return next, true
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'A'+rune(p.Col-1), p.Row)
}

// index maps a square to 0..63, A1=0, H8=63.
func (p Position) index() int {
	return (p.Row-1)*8 + (p.Col - 1)
}

func positionAt(index int) Position {
	return Position{Col: index%8 + 1, Row: index/8 + 1}
}

var allPositions = func() []Position {
	out := make([]Position, 0, 64)
	for row := MaxIndex; row >= MinIndex; row-- {
		for col := MinIndex; col <= MaxIndex; col++ {
			out = append(out, Position{Col: col, Row: row})
		}
	}
	return out
}()

// AllPositions returns the 64 squares, rank 8 down to rank 1, file A to H.
func AllPositions() []Position {
	out := make([]Position, len(allPositions))
	copy(out, allPositions)
	return out
}
