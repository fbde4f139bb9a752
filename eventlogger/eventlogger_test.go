package eventlogger

import (
	"bytes"
	"strings"
	"testing"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/game"
	"github.com/Parkreiner/bingosim/subscriptions"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level log.Level) (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: level, Formatter: log.LogfmtFormatter}), &buf
}

func TestEventLogger(t *testing.T) {
	t.Run("logs events at levels chosen by type", func(t *testing.T) {
		sm := subscriptions.New()
		logger, buf := newBufferedLogger(log.InfoLevel)
		el, err := New(Init{Subscriber: sm, Logger: logger})
		require.NoError(t, err)
		defer el.Close()

		require.NoError(t, sm.DispatchEvent(bingo.GameEvent{
			Type: bingo.EventTypeDrawCalled, BoardIndex: bingo.NoBoard, Ball: 7, Message: "called 7",
		}))
		require.NoError(t, sm.DispatchEvent(bingo.GameEvent{
			Type: bingo.EventTypeBoardWon, BoardIndex: 2, Ball: 24, DrawIndex: 11, Message: "board 2 completed row 2",
		}))

		out := buf.String()
		assert.NotContains(t, out, "called 7", "draws are debug-only")
		assert.Contains(t, out, "board 2 completed row 2")
		assert.Contains(t, out, "board=2")
		assert.Contains(t, out, "ball=24")
		assert.Contains(t, out, "draw=11")
	})

	t.Run("a game without a winner is a warning", func(t *testing.T) {
		sm := subscriptions.New()
		logger, buf := newBufferedLogger(log.WarnLevel)
		_, err := New(Init{Subscriber: sm, Logger: logger})
		require.NoError(t, err)

		require.NoError(t, sm.DispatchEvent(bingo.GameEvent{
			Type: bingo.EventTypeGameOver, BoardIndex: bingo.NoBoard, Message: "no winner",
		}))

		out := buf.String()
		assert.Contains(t, out, "no winner")
		assert.Contains(t, out, "level=warn")
		assert.NotContains(t, out, "board=")
		assert.NotContains(t, out, "ball=")
	})

	t.Run("close stops logging", func(t *testing.T) {
		sm := subscriptions.New()
		logger, buf := newBufferedLogger(log.DebugLevel)
		el, err := New(Init{Subscriber: sm, Logger: logger})
		require.NoError(t, err)

		require.NoError(t, el.Close())
		require.NoError(t, el.Close())
		require.NoError(t, sm.DispatchEvent(bingo.GameEvent{Type: bingo.EventTypeBoardWon, Message: "late"}))

		assert.Empty(t, strings.TrimSpace(buf.String()))
		assert.Equal(t, 0, sm.Len())
	})

	t.Run("requires its collaborators", func(t *testing.T) {
		logger, _ := newBufferedLogger(log.InfoLevel)
		_, err := New(Init{Logger: logger})
		require.Error(t, err)
		_, err = New(Init{Subscriber: subscriptions.New()})
		require.Error(t, err)
	})
}

func TestEventLoggerWithGame(t *testing.T) {
	logger, buf := newBufferedLogger(log.DebugLevel)
	boards := make([][]bingo.Ball, 0, 2)
	for _, start := range []int{1, 100} {
		board := make([]bingo.Ball, bingo.BoardCells)
		for i := range board {
			board[i] = bingo.Ball(start + i)
		}
		boards = append(boards, board)
	}
	// The game and the event logger share a logger, as they do in the CLI
	g, err := game.New(game.Init{
		Draws:  []bingo.Ball{1, 2, 3, 4, 5},
		Boards: boards,
		Logger: logger,
	})
	require.NoError(t, err)

	el, err := New(Init{Subscriber: g, Logger: logger})
	require.NoError(t, err)
	defer el.Close()

	_, err = g.PlayToFirstWin()
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "called 5"), "each draw is logged once")
	assert.Equal(t, 1, strings.Count(out, "board 0 completed row 0"), "each win is logged once")
	assert.Equal(t, 1, strings.Count(out, "board 0 wins on 5"))
}
