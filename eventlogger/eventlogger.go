// Package eventlogger writes a structured log line for every event a game
// dispatches.
package eventlogger

import (
	"errors"
	"fmt"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/charmbracelet/log"
)

// EventLogger forwards game events to a charmbracelet logger. Draws are logged
// at debug level, since there are many of them; wins and the final result are
// logged at info.
type EventLogger struct {
	logger      *log.Logger
	unsubscribe func()
}

// Init is used to instantiate an EventLogger via the New function.
type Init struct {
	Subscriber bingo.EventSubscriber
	Logger     *log.Logger
	// If empty, the logger subscribes to every event type
	Types []bingo.GameEventType
}

// New instantiates an EventLogger and immediately subscribes it.
func New(init Init) (*EventLogger, error) {
	if init.Subscriber == nil {
		return nil, errors.New("event logger needs a subscriber")
	}
	if init.Logger == nil {
		return nil, errors.New("event logger needs a logger")
	}

	el := &EventLogger{logger: init.Logger}
	unsub, err := init.Subscriber.Subscribe(init.Types, el.handle)
	if err != nil {
		return nil, fmt.Errorf("unable to subscribe to events: %w", err)
	}
	el.unsubscribe = unsub
	return el, nil
}

func (el *EventLogger) handle(event bingo.GameEvent) {
	keyvals := []any{"mode", event.Mode, "draw", event.DrawIndex}
	if event.Type != bingo.EventTypeGameOver || event.Winner {
		keyvals = append(keyvals, "ball", event.Ball)
	}
	if event.BoardIndex != bingo.NoBoard {
		keyvals = append(keyvals, "board", event.BoardIndex)
	}

	switch event.Type {
	case bingo.EventTypeDrawCalled, bingo.EventTypeBoardEliminated:
		el.logger.Debug(event.Message, keyvals...)
	case bingo.EventTypeGameOver:
		if !event.Winner {
			el.logger.Warn(event.Message, keyvals...)
			return
		}
		el.logger.Info(event.Message, keyvals...)
	default:
		el.logger.Info(event.Message, keyvals...)
	}
}

// Close unsubscribes the logger. Safe to call more than once.
func (el *EventLogger) Close() error {
	if el.unsubscribe != nil {
		el.unsubscribe()
		el.unsubscribe = nil
	}
	return nil
}
