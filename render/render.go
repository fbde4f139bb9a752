// Package render draws boards and playback results for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for board and result output
type Styles struct {
	Frame    lipgloss.Style
	Cell     lipgloss.Style
	Marked   lipgloss.Style
	Winning  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	NoWinner lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		Cell: r.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
		Marked: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Winning: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")),
		NoWinner: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
	}
}

// Renderer turns game state into styled strings. Color support is detected
// from the writer unless colors are turned off.
type Renderer struct {
	styles Styles
}

// New creates a Renderer for output that will be written to w
func New(w io.Writer, colors bool) *Renderer {
	var opts []termenv.OutputOption
	if !colors {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Renderer{styles: newStyles(lipgloss.NewRenderer(w, opts...))}
}

// Board draws a board as a framed 5x5 grid. Marked numbers are wrapped in
// brackets, and the board's winning line (if it has one) is highlighted.
func (r *Renderer) Board(b *game.Board) string {
	numbers := b.Numbers()
	line, won := b.WinningLine()

	rows := make([]string, 0, bingo.BoardSize)
	for row := 0; row < bingo.BoardSize; row++ {
		cells := make([]string, 0, bingo.BoardSize)
		for col := 0; col < bingo.BoardSize; col++ {
			i := row*bingo.BoardSize + col
			cells = append(cells, r.cell(numbers[i], b.IsMarked(i), won && onLine(line, row, col)))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return r.styles.Frame.Render(strings.Join(rows, "\n"))
}

func (r *Renderer) cell(n bingo.Ball, marked bool, winning bool) string {
	if !marked {
		return r.styles.Cell.Render(fmt.Sprintf(" %2d ", int(n)))
	}
	text := fmt.Sprintf("[%2d]", int(n))
	if winning {
		return r.styles.Winning.Render(text)
	}
	return r.styles.Marked.Render(text)
}

func onLine(line game.Line, row int, col int) bool {
	switch line.Kind {
	case game.LineRow:
		return line.Index == row
	case game.LineColumn:
		return line.Index == col
	default:
		return false
	}
}

// Result summarizes a winning playback: the winning number, the sum of the
// board's unmarked numbers, and their product.
func (r *Renderer) Result(label string, win game.Win) string {
	var unmarked int
	if win.Board != nil {
		unmarked = bingo.Sum(win.Board.UnmarkedNumbers())
	}

	fields := []string{
		r.field("board", fmt.Sprint(win.BoardIndex)),
		r.field("draw", fmt.Sprint(win.DrawIndex)),
		r.field("winning number", win.Ball.String()),
		r.field("unmarked sum", fmt.Sprint(unmarked)),
		r.field("score", fmt.Sprint(win.Score())),
	}
	return r.styles.Label.Render(label+":") + " " + strings.Join(fields, ", ")
}

// NoWinner reports a playback that ran out of draws without a result.
func (r *Renderer) NoWinner(label string) string {
	return r.styles.Label.Render(label+":") + " " + r.styles.NoWinner.Render("no winner")
}

func (r *Renderer) field(name string, value string) string {
	return name + " " + r.styles.Value.Render(value)
}
