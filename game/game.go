// Package game defines the replay engine for bingo: stateful 5x5 boards, and a
// Game that drives every board through a fixed sequence of draws until either
// the first or the last board wins.
package game

import (
	"errors"
	"fmt"
	"io"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/subscriptions"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// ErrAlreadyPlayed is returned when a Game that has already been played is
// asked to play again. Clone the game before it is played to run more than one
// playback.
var ErrAlreadyPlayed = errors.New("game has already been played")

// Win describes the board that satisfied a playback's terminal condition, and
// the draw that did it.
type Win struct {
	Ball       bingo.Ball
	Board      *Board
	BoardIndex int
	DrawIndex  int
}

// Score multiplies the winning ball by the sum of the board's unmarked
// numbers.
func (w Win) Score() int {
	if w.Board == nil {
		return 0
	}
	return bingo.Score(w.Ball, w.Board.UnmarkedNumbers())
}

// Game owns a draw sequence and every board being played against it. A Game is
// not safe for concurrent use; each playback mutates the boards it owns. Use
// Clone to get an independent copy for another playback.
type Game struct {
	id            uuid.UUID
	draws         *drawRegistry
	boards        []*Board
	logger        *log.Logger
	clock         quartz.Clock
	subscriptions *subscriptions.Manager
	// Boards keep their marks after a playback, so each Game plays only once
	played bool
}

var (
	_ bingo.EventSubscriber  = &Game{}
	_ bingo.SnapshotProvider = &Game{}
)

// Init is used to instantiate a Game via the New function. Only Draws and
// Boards are required.
type Init struct {
	Draws  []bingo.Ball
	Boards [][]bingo.Ball
	Logger *log.Logger
	// Used to timestamp events. Defaults to the real clock
	Clock quartz.Clock
}

// New validates every board and creates a Game. If any board is malformed the
// whole game is rejected.
func New(init Init) (*Game, error) {
	if len(init.Draws) == 0 {
		return nil, errors.New("game needs at least one draw")
	}
	if len(init.Boards) == 0 {
		return nil, errors.New("game needs at least one board")
	}

	boards := make([]*Board, 0, len(init.Boards))
	for i, numbers := range init.Boards {
		b, err := NewBoard(numbers)
		if err != nil {
			return nil, fmt.Errorf("building board %d: %w", i, err)
		}
		boards = append(boards, b)
	}

	logger := init.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := init.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &Game{
		id:            uuid.New(),
		draws:         newDrawRegistry(init.Draws),
		boards:        boards,
		logger:        logger,
		clock:         clock,
		subscriptions: subscriptions.New(),
	}, nil
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

// Boards returns the game's boards in declaration order. The slice is a copy,
// but the boards are not.
func (g *Game) Boards() []*Board {
	out := make([]*Board, len(g.boards))
	copy(out, g.boards)
	return out
}

func (g *Game) Draws() []bingo.Ball {
	return g.draws.all()
}

// Clone deep-copies every board into a brand new Game with its own ID and no
// subscribers. The logger and clock are shared. Cloning a game that has
// already been played yields another played game.
func (g *Game) Clone() *Game {
	boards := make([]*Board, len(g.boards))
	for i, b := range g.boards {
		boards[i] = b.Clone()
	}

	return &Game{
		id:            uuid.New(),
		draws:         newDrawRegistry(g.draws.draws),
		boards:        boards,
		logger:        g.logger,
		clock:         g.clock,
		subscriptions: subscriptions.New(),
		played:        g.played,
	}
}

// Subscribe lets any external system listen to events dispatched during
// playback.
func (g *Game) Subscribe(types []bingo.GameEventType, handler func(bingo.GameEvent)) (func(), error) {
	return g.subscriptions.Subscribe(types, handler)
}

// Play runs whichever playback the mode names.
func (g *Game) Play(mode bingo.PlaybackMode) (Win, error) {
	switch mode {
	case bingo.PlaybackModeFirstWin:
		return g.PlayToFirstWin()
	case bingo.PlaybackModeLastWin:
		return g.PlayToLastWin()
	default:
		return Win{}, fmt.Errorf("unknown playback mode %q", mode)
	}
}

// PlayToFirstWin marks every board with each draw in turn, and stops on the
// first board whose mark completes a row or column. Boards are always marked
// in declaration order, so if several boards win on the same draw, the
// earliest-declared one is reported. Returns bingo.ErrNoWinner if the draws
// run out first.
func (g *Game) PlayToFirstWin() (Win, error) {
	const mode = bingo.PlaybackModeFirstWin
	if err := g.start(mode); err != nil {
		return Win{}, err
	}

	for {
		ball, drawIndex, ok := g.draws.next()
		if !ok {
			break
		}
		g.dispatchDraw(mode, ball, drawIndex)

		for i, b := range g.boards {
			if !b.Mark(ball) {
				continue
			}

			win := Win{Ball: ball, Board: b, BoardIndex: i, DrawIndex: drawIndex}
			g.dispatchBoardWon(mode, win)
			g.dispatchGameOver(mode, &win, "")
			return win, nil
		}
	}

	g.dispatchGameOver(mode, nil, "no winner")
	return Win{}, bingo.ErrNoWinner
}

// PlayToLastWin finds the last board to win. Every board that wins is taken
// out of play immediately, and is not marked by any later draw. The run ends
// when a draw starts with exactly one board left in play and that board wins.
//
// If the final two or more boards all win on the same draw, the working set
// goes straight from several boards to none without ever reaching the
// one-board case. No board is reported for that run, and the result is
// bingo.ErrNoWinner, the same as running out of draws.
func (g *Game) PlayToLastWin() (Win, error) {
	const mode = bingo.PlaybackModeLastWin
	if err := g.start(mode); err != nil {
		return Win{}, err
	}

	type inPlay struct {
		board *Board
		index int
	}
	working := make([]inPlay, len(g.boards))
	for i, b := range g.boards {
		working[i] = inPlay{board: b, index: i}
	}

	for len(working) > 0 {
		ball, drawIndex, ok := g.draws.next()
		if !ok {
			break
		}
		g.dispatchDraw(mode, ball, drawIndex)

		// Compacts in place. kept never runs ahead of the read position, so
		// every board still in play gets examined exactly once per draw
		remaining := len(working)
		kept := working[:0]
		for _, entry := range working {
			if !entry.board.Mark(ball) {
				kept = append(kept, entry)
				continue
			}

			win := Win{Ball: ball, Board: entry.board, BoardIndex: entry.index, DrawIndex: drawIndex}
			g.dispatchBoardWon(mode, win)
			if remaining == 1 {
				g.dispatchGameOver(mode, &win, "")
				return win, nil
			}
			g.dispatchBoardEliminated(mode, win)
		}
		working = kept
	}

	if len(working) == 0 {
		g.dispatchGameOver(mode, nil, "no winner: every remaining board won on the same draw")
	} else {
		g.dispatchGameOver(mode, nil, "no winner")
	}
	return Win{}, bingo.ErrNoWinner
}

func (g *Game) start(mode bingo.PlaybackMode) error {
	if g.played {
		return fmt.Errorf("%w: cannot start %s playback", ErrAlreadyPlayed, mode)
	}
	g.played = true
	g.draws.reset()
	return nil
}

// Snapshot captures the draws called so far and the state of every board.
func (g *Game) Snapshot() bingo.GameSnapshot {
	boards := make([]bingo.BoardSnapshot, len(g.boards))
	for i, b := range g.boards {
		boards[i] = b.Snapshot(i)
	}
	return bingo.GameSnapshot{
		Called: g.draws.called(),
		Draws:  g.draws.all(),
		Boards: boards,
	}
}

func (g *Game) dispatchDraw(mode bingo.PlaybackMode, ball bingo.Ball, drawIndex int) {
	g.dispatch(bingo.GameEvent{
		Type:       bingo.EventTypeDrawCalled,
		Mode:       mode,
		DrawIndex:  drawIndex,
		Ball:       ball,
		BoardIndex: bingo.NoBoard,
		Message:    fmt.Sprintf("called %d", ball),
	})
}

func (g *Game) dispatchBoardWon(mode bingo.PlaybackMode, win Win) {
	line, _ := win.Board.WinningLine()
	g.dispatch(bingo.GameEvent{
		Type:       bingo.EventTypeBoardWon,
		Mode:       mode,
		DrawIndex:  win.DrawIndex,
		Ball:       win.Ball,
		BoardIndex: win.BoardIndex,
		Message:    fmt.Sprintf("board %d completed %s", win.BoardIndex, line),
	})
}

func (g *Game) dispatchBoardEliminated(mode bingo.PlaybackMode, win Win) {
	g.dispatch(bingo.GameEvent{
		Type:       bingo.EventTypeBoardEliminated,
		Mode:       mode,
		DrawIndex:  win.DrawIndex,
		Ball:       win.Ball,
		BoardIndex: win.BoardIndex,
		Message:    fmt.Sprintf("board %d removed from play", win.BoardIndex),
	})
}

// dispatchGameOver reports the end of a playback. A nil win means no board met
// the terminal condition, and reason explains why.
func (g *Game) dispatchGameOver(mode bingo.PlaybackMode, win *Win, reason string) {
	event := bingo.GameEvent{
		Type:       bingo.EventTypeGameOver,
		Mode:       mode,
		DrawIndex:  g.draws.position() - 1,
		BoardIndex: bingo.NoBoard,
		Message:    reason,
	}
	if win != nil {
		event.DrawIndex = win.DrawIndex
		event.Ball = win.Ball
		event.BoardIndex = win.BoardIndex
		event.Winner = true
		event.Message = fmt.Sprintf("board %d wins on %d with score %d", win.BoardIndex, win.Ball, win.Score())
	}
	g.dispatch(event)
}

func (g *Game) dispatch(event bingo.GameEvent) {
	event.ID = uuid.New()
	event.GameID = g.id
	event.Created = g.clock.Now()
	if err := g.subscriptions.DispatchEvent(event); err != nil {
		g.logger.Warn("unable to dispatch event", "type", event.Type, "err", err)
	}
}
