package bingo

import (
	"time"

	"github.com/google/uuid"
)

// GameEventType indicates the type and context of a new event's message
type GameEventType string

const (
	// EventTypeDrawCalled is dispatched once per draw, before any board is
	// marked with it.
	EventTypeDrawCalled GameEventType = "draw_called"
	// EventTypeBoardWon is dispatched on the single mark call that completes a
	// board's first row or column.
	EventTypeBoardWon GameEventType = "board_won"
	// EventTypeBoardEliminated is only dispatched during last-win playback,
	// when a winning board is removed from the working set.
	EventTypeBoardEliminated GameEventType = "board_eliminated"
	// EventTypeGameOver is dispatched exactly once at the end of every
	// playback, whether or not a winner was found.
	EventTypeGameOver GameEventType = "game_over"
)

// NoBoard is used for BoardIndex on events that are not tied to a board.
const NoBoard = -1

type GameEvent struct {
	ID         uuid.UUID     `json:"id"`
	GameID     uuid.UUID     `json:"gameId"`
	Type       GameEventType `json:"type"`
	Mode       PlaybackMode  `json:"mode"`
	Created    time.Time     `json:"created"`
	DrawIndex  int           `json:"drawIndex"`
	Ball       Ball          `json:"ball"`
	BoardIndex int           `json:"boardIndex"`
	// Winner is only meaningful on EventTypeGameOver events.
	Winner  bool   `json:"winner"`
	Message string `json:"message"`
}

// EventSubscriber is anything that lets a system listen to the events
// dispatched while a game is being replayed.
type EventSubscriber interface {
	// Subscribe registers a handler for the given event types. If the provided
	// slice is nil or empty, the handler receives ALL events. Handlers are
	// called synchronously, on the goroutine doing the replay.
	Subscribe(types []GameEventType, handler func(GameEvent)) (unsubscribe func(), err error)
}
