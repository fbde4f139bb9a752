// Package bingo contains the main domain types (and associated helper values
// and functions) needed to replay a game of bingo against a fixed sequence of
// draws.
package bingo

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

const (
	// BoardSize is the width and height of every board. Only square 5x5 boards
	// are supported.
	BoardSize int = 5

	// BoardCells is the total number of cells on a board.
	BoardCells int = BoardSize * BoardSize
)

var (
	// ErrInvalidBoardSize is returned whenever a board is built from anything
	// other than exactly BoardCells numbers. It is always wrapped with the
	// number of values that were actually supplied.
	ErrInvalidBoardSize = errors.New("board must contain exactly 25 numbers")

	// ErrNoWinner indicates that a playback ran out of draws without reaching
	// its terminal condition. Much like io.EOF, it is an expected outcome and
	// not a fault; callers should check for it with errors.Is.
	ErrNoWinner = errors.New("no winner")

	ErrNotNumeric    = errors.New("not a base-10 integer")
	ErrNegativeValue = errors.New("negative numbers are not allowed")
)

// Ball represents a single drawn number. Draws in practice fit in a byte, but
// the engine never assumes an upper bound.
type Ball int

var _ json.Marshaler = Ball(0)

// MarshalJSON turns a ball into a plain JSON number.
func (b Ball) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(b))
}

func (b Ball) String() string {
	return strconv.Itoa(int(b))
}

// ParseBall takes a raw token and attempts to turn it into a ball. Fails with
// ErrNotNumeric or ErrNegativeValue; the token itself is left for the caller
// to report.
func ParseBall(rawBallValue string) (Ball, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rawBallValue))
	if err != nil {
		return 0, ErrNotNumeric
	}
	if n < 0 {
		return 0, ErrNegativeValue
	}
	return Ball(n), nil
}

// Score computes the final score of a winning board: the winning ball
// multiplied by the sum of every number left unmarked on that board.
func Score(winningBall Ball, unmarked []Ball) int {
	return int(winningBall) * Sum(unmarked)
}

// Sum adds up a slice of balls.
func Sum(balls []Ball) int {
	total := 0
	for _, b := range balls {
		total += int(b)
	}
	return total
}
