// Package parse turns the plain-text puzzle format into the draws and boards
// that a game is built from, and back again.
//
// The format is a series of sections separated by blank lines. The first
// section holds the draws, separated by commas and/or whitespace. Every later
// section is one board: 25 whitespace-separated numbers, read row by row.
//
//	7,4,9,5,11,17,23,2,0,14,21,24
//
//	22 13 17 11  0
//	 8  2 23  4 24
//	21  9 14 16  7
//	 6 10  3 18  5
//	 1 12 20 15 19
//
// Parsing is a pure function of its input; nothing is cached between calls.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	bingo "github.com/Parkreiner/bingosim"
)

const maxLineLength = 1024 * 1024

var (
	ErrNoDraws       = errors.New("input has no draws")
	ErrNoBoards      = errors.New("input has no boards")
	ErrInvalidNumber = errors.New("invalid number")
)

// Input is everything needed to set up a game.
type Input struct {
	Draws  []bingo.Ball
	Boards [][]bingo.Ball
}

// SyntaxError describes where the input went wrong. Err is always one of this
// package's sentinels or bingo.ErrInvalidBoardSize (possibly wrapped), so
// callers can branch with errors.Is.
type SyntaxError struct {
	// 1-based line number. For board size errors, this is the line the board
	// starts on
	Line  int
	Token string
	Err   error
}

func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type section struct {
	startLine int
	lines     []sectionLine
}

type sectionLine struct {
	number int
	text   string
}

// Parse interprets a complete puzzle input.
func Parse(text string) (Input, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader interprets a complete puzzle input read from r.
func ParseReader(r io.Reader) (Input, error) {
	sections, err := splitSections(r)
	if err != nil {
		return Input{}, fmt.Errorf("reading input: %w", err)
	}

	if len(sections) == 0 {
		return Input{}, &SyntaxError{Err: ErrNoDraws}
	}
	draws, err := parseDraws(sections[0])
	if err != nil {
		return Input{}, err
	}

	if len(sections) == 1 {
		return Input{}, &SyntaxError{Line: sections[0].startLine, Err: ErrNoBoards}
	}
	boards := make([][]bingo.Ball, 0, len(sections)-1)
	for _, s := range sections[1:] {
		board, err := parseBoard(s)
		if err != nil {
			return Input{}, err
		}
		boards = append(boards, board)
	}

	return Input{Draws: draws, Boards: boards}, nil
}

// splitSections groups non-blank lines into blank-line separated sections.
// Carriage returns are dropped, so CRLF input parses the same as LF input.
func splitSections(r io.Reader) ([]section, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var sections []section
	var current *section
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			current = nil
			continue
		}

		if current == nil {
			sections = append(sections, section{startLine: lineNumber})
			current = &sections[len(sections)-1]
		}
		current.lines = append(current.lines, sectionLine{number: lineNumber, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func parseDraws(s section) ([]bingo.Ball, error) {
	var draws []bingo.Ball
	for _, line := range s.lines {
		tokens := strings.FieldsFunc(line.text, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, token := range tokens {
			ball, err := bingo.ParseBall(token)
			if err != nil {
				return nil, &SyntaxError{Line: line.number, Token: token, Err: fmt.Errorf("%w: %w", ErrInvalidNumber, err)}
			}
			draws = append(draws, ball)
		}
	}

	if len(draws) == 0 {
		return nil, &SyntaxError{Line: s.startLine, Err: ErrNoDraws}
	}
	return draws, nil
}

func parseBoard(s section) ([]bingo.Ball, error) {
	numbers := make([]bingo.Ball, 0, bingo.BoardCells)
	for _, line := range s.lines {
		for _, token := range strings.Fields(line.text) {
			ball, err := bingo.ParseBall(token)
			if err != nil {
				return nil, &SyntaxError{Line: line.number, Token: token, Err: fmt.Errorf("%w: %w", ErrInvalidNumber, err)}
			}
			numbers = append(numbers, ball)
		}
	}

	if len(numbers) != bingo.BoardCells {
		return nil, &SyntaxError{
			Line: s.startLine,
			Err:  fmt.Errorf("%w: got %d", bingo.ErrInvalidBoardSize, len(numbers)),
		}
	}
	return numbers, nil
}

// Format writes an Input back out in the same format Parse reads. Board
// numbers are right-aligned in columns two characters wide.
func Format(in Input) string {
	var sb strings.Builder

	draws := make([]string, len(in.Draws))
	for i, d := range in.Draws {
		draws[i] = d.String()
	}
	sb.WriteString(strings.Join(draws, ","))
	sb.WriteString("\n")

	for _, board := range in.Boards {
		sb.WriteString("\n")
		for row := 0; row*bingo.BoardSize < len(board); row++ {
			end := min((row+1)*bingo.BoardSize, len(board))
			cells := make([]string, 0, bingo.BoardSize)
			for _, n := range board[row*bingo.BoardSize : end] {
				cells = append(cells, fmt.Sprintf("%2d", int(n)))
			}
			sb.WriteString(strings.Join(cells, " "))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
