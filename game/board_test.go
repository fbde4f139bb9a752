package game

import (
	"testing"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialNumbers returns 25 consecutive balls starting at start, so the
// board built from them reads start..start+4 across the top row.
func sequentialNumbers(start int) []bingo.Ball {
	numbers := make([]bingo.Ball, bingo.BoardCells)
	for i := range numbers {
		numbers[i] = bingo.Ball(start + i)
	}
	return numbers
}

func mustBoard(t *testing.T, numbers []bingo.Ball) *Board {
	t.Helper()
	b, err := NewBoard(numbers)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("rejects anything but 25 numbers", func(t *testing.T) {
		for _, n := range []int{0, 1, 24, 26, 50} {
			b, err := NewBoard(make([]bingo.Ball, n))
			require.ErrorIs(t, err, bingo.ErrInvalidBoardSize, "size %d", n)
			assert.Nil(t, b)
		}
	})

	t.Run("copies its input", func(t *testing.T) {
		numbers := sequentialNumbers(1)
		b := mustBoard(t, numbers)
		numbers[0] = 999

		assert.Equal(t, bingo.Ball(1), b.Numbers()[0])
	})
}

func TestBoardUnmarkedNumbers(t *testing.T) {
	t.Run("everything is unmarked before the first mark", func(t *testing.T) {
		numbers := sequentialNumbers(10)
		b := mustBoard(t, numbers)

		assert.Equal(t, numbers, b.UnmarkedNumbers())
		assert.False(t, b.HasWon())
		assert.Equal(t, StatusPlaying, b.Status())
	})

	t.Run("marked numbers drop out while order is kept", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		b.Mark(3)
		b.Mark(25)
		b.Mark(1)

		unmarked := b.UnmarkedNumbers()
		require.Len(t, unmarked, 22)
		assert.Equal(t, bingo.Ball(2), unmarked[0])
		assert.Equal(t, bingo.Ball(4), unmarked[1])
		assert.Equal(t, bingo.Ball(24), unmarked[len(unmarked)-1])
	})
}

func TestBoardMark(t *testing.T) {
	t.Run("absent numbers change nothing", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		before := b.Snapshot(0)

		assert.False(t, b.Mark(0))
		assert.False(t, b.Mark(26))
		assert.False(t, b.Mark(1000))

		assert.Equal(t, before, b.Snapshot(0))
	})

	t.Run("first row wins on the fifth mark", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		for _, n := range []bingo.Ball{1, 2, 3, 4} {
			assert.False(t, b.Mark(n))
			assert.False(t, b.HasWon())
		}

		assert.True(t, b.Mark(5))
		assert.True(t, b.HasWon())
		assert.Equal(t, StatusWon, b.Status())

		line, ok := b.WinningLine()
		require.True(t, ok)
		assert.Equal(t, Line{Kind: LineRow, Index: 0}, line)
	})

	t.Run("a full column wins", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		// Column 2 of a 1..25 board
		for _, n := range []bingo.Ball{3, 8, 13, 18} {
			assert.False(t, b.Mark(n))
		}
		assert.True(t, b.Mark(23))

		line, ok := b.WinningLine()
		require.True(t, ok)
		assert.Equal(t, Line{Kind: LineColumn, Index: 2}, line)
	})

	t.Run("diagonals never count", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		for _, n := range []bingo.Ball{1, 7, 13, 19, 25, 5, 9, 17, 21} {
			assert.False(t, b.Mark(n))
		}
		assert.False(t, b.HasWon())
		_, ok := b.WinningLine()
		assert.False(t, ok)
	})

	t.Run("win transition fires exactly once", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		transitions := 0
		for n := bingo.Ball(1); n <= 25; n++ {
			if b.Mark(n) {
				transitions++
			}
			if n >= 5 {
				assert.True(t, b.HasWon(), "win must never be undone (ball %d)", n)
			}
		}

		assert.Equal(t, 1, transitions)
		assert.Empty(t, b.UnmarkedNumbers())
	})

	t.Run("marking the same number twice is harmless", func(t *testing.T) {
		b := mustBoard(t, sequentialNumbers(1))
		b.Mark(4)
		b.Mark(4)
		assert.Len(t, b.UnmarkedNumbers(), 24)
	})

	t.Run("duplicate numbers resolve to the last index", func(t *testing.T) {
		numbers := sequentialNumbers(1)
		numbers[0] = 77
		numbers[24] = 77
		b := mustBoard(t, numbers)

		b.Mark(77)
		assert.False(t, b.IsMarked(0))
		assert.True(t, b.IsMarked(24))
		assert.Contains(t, b.UnmarkedNumbers(), bingo.Ball(77))
	})
}

func TestBoardIsMarked(t *testing.T) {
	b := mustBoard(t, sequentialNumbers(1))
	b.Mark(1)

	assert.True(t, b.IsMarked(0))
	assert.False(t, b.IsMarked(1))
	assert.False(t, b.IsMarked(-1))
	assert.False(t, b.IsMarked(bingo.BoardCells))
}

func TestBoardClone(t *testing.T) {
	original := mustBoard(t, sequentialNumbers(1))
	original.Mark(1)

	clone := original.Clone()
	assert.Equal(t, original.Snapshot(0), clone.Snapshot(0))

	for _, n := range []bingo.Ball{2, 3, 4, 5} {
		clone.Mark(n)
	}
	assert.True(t, clone.HasWon())
	assert.False(t, original.HasWon())
	assert.Len(t, original.UnmarkedNumbers(), 24)
}

func TestBoardSnapshot(t *testing.T) {
	b := mustBoard(t, sequentialNumbers(1))
	b.Mark(6)

	snap := b.Snapshot(3)
	assert.Equal(t, 3, snap.Index)
	assert.Len(t, snap.Marked, bingo.BoardCells)
	assert.True(t, snap.Marked[5])
	assert.False(t, snap.Won)
	assert.Len(t, snap.Unmarked, 24)
}
