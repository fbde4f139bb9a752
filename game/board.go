package game

import (
	"fmt"

	bingo "github.com/Parkreiner/bingosim"
)

// LineKind says whether a completed line is a row or a column.
type LineKind string

const (
	LineRow    LineKind = "row"
	LineColumn LineKind = "column"
)

// Line identifies a single complete row or column on a board.
type Line struct {
	Kind  LineKind
	Index int
}

func (l Line) String() string {
	return fmt.Sprintf("%s %d", l.Kind, l.Index)
}

// Board represents a single stateful 5x5 board. Its numbers are fixed at
// construction time; the only thing that ever changes is which cells have been
// marked, and whether the board has won.
type Board struct {
	// Row-major: the cell at (row, col) lives at index row*5+col. Should be
	// treated as 100% immutable
	numbers []bingo.Ball
	// If a number appears more than once, the last index it was seen at wins
	indexOf map[bingo.Ball]int
	marked  [bingo.BoardCells]bool
	status  status
}

// NewBoard creates a board from exactly 25 numbers laid out row by row. Any
// other count results in an error wrapping bingo.ErrInvalidBoardSize, and no
// board is produced.
func NewBoard(numbers []bingo.Ball) (*Board, error) {
	if len(numbers) != bingo.BoardCells {
		return nil, fmt.Errorf("%w: got %d", bingo.ErrInvalidBoardSize, len(numbers))
	}

	owned := make([]bingo.Ball, len(numbers))
	copy(owned, numbers)

	indexOf := make(map[bingo.Ball]int, len(owned))
	for i, n := range owned {
		indexOf[n] = i
	}

	return &Board{
		numbers: owned,
		indexOf: indexOf,
		status:  newStatus(),
	}, nil
}

// Mark daubs the cell holding the given number, if the board has one. It
// reports whether this specific call caused the board to win; once a board has
// won, later calls keep marking cells but always return false.
func (b *Board) Mark(number bingo.Ball) (wonNow bool) {
	i, ok := b.indexOf[number]
	if !ok {
		return false
	}

	b.marked[i] = true
	if b.status.won() {
		return false
	}
	if _, complete := b.completeLine(); !complete {
		return false
	}

	b.status.setWon()
	return true
}

// HasWon indicates whether a full row or column has ever been marked.
func (b *Board) HasWon() bool {
	return b.status.won()
}

// Status exposes the board's position in its Playing -> Won lifecycle.
func (b *Board) Status() Status {
	return b.status.value()
}

// UnmarkedNumbers returns every number that has not been marked, in the
// original board order.
func (b *Board) UnmarkedNumbers() []bingo.Ball {
	unmarked := make([]bingo.Ball, 0, len(b.numbers))
	for i, n := range b.numbers {
		if !b.marked[i] {
			unmarked = append(unmarked, n)
		}
	}
	return unmarked
}

// Numbers returns a copy of the board's numbers in row-major order.
func (b *Board) Numbers() []bingo.Ball {
	out := make([]bingo.Ball, len(b.numbers))
	copy(out, b.numbers)
	return out
}

// IsMarked reports whether the cell at the given row-major index is marked.
// Out-of-range indices are never marked.
func (b *Board) IsMarked(index int) bool {
	if index < 0 || index >= bingo.BoardCells {
		return false
	}
	return b.marked[index]
}

// WinningLine returns the first complete line, checking rows top to bottom
// and then columns left to right.
func (b *Board) WinningLine() (Line, bool) {
	return b.completeLine()
}

// Clone produces a deep copy with the same numbers, marks and win status.
func (b *Board) Clone() *Board {
	indexOf := make(map[bingo.Ball]int, len(b.indexOf))
	for n, i := range b.indexOf {
		indexOf[n] = i
	}
	numbers := make([]bingo.Ball, len(b.numbers))
	copy(numbers, b.numbers)

	return &Board{
		numbers: numbers,
		indexOf: indexOf,
		marked:  b.marked,
		status:  b.status,
	}
}

// Snapshot captures the board's current state. The index is supplied by the
// caller because boards do not know their own position in a game.
func (b *Board) Snapshot(index int) bingo.BoardSnapshot {
	marked := make([]bool, len(b.marked))
	copy(marked, b.marked[:])
	return bingo.BoardSnapshot{
		Index:    index,
		Numbers:  b.Numbers(),
		Marked:   marked,
		Won:      b.HasWon(),
		Unmarked: b.UnmarkedNumbers(),
	}
}

// completeLine recounts marks per row and per column from scratch on every
// call.
func (b *Board) completeLine() (Line, bool) {
	var rowCounts, colCounts [bingo.BoardSize]int
	for i, isMarked := range b.marked {
		if !isMarked {
			continue
		}
		rowCounts[i/bingo.BoardSize]++
		colCounts[i%bingo.BoardSize]++
	}

	for r, count := range rowCounts {
		if count == bingo.BoardSize {
			return Line{Kind: LineRow, Index: r}, true
		}
	}
	for c, count := range colCounts {
		if count == bingo.BoardSize {
			return Line{Kind: LineColumn, Index: c}, true
		}
	}
	return Line{}, false
}
