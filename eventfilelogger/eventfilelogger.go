// Package eventfilelogger provides an easy way to write a transcript of game
// events to a specific file, one JSON object per line.
package eventfilelogger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	bingo "github.com/Parkreiner/bingosim"
)

// ErrClosed is returned when writing to a logger that has already been closed.
var ErrClosed = errors.New("logger is closed")

// EventLogger handles writes of three types:
//  1. Automatic transcript lines in response to every game event
//  2. A snapshot of the final game state after each game_over event, if a
//     snapshot provider was supplied
//  3. Arbitrary bytes written through the io.Writer interface
//
// Once instantiated, the logger will automatically start writing every event
// it is subscribed to. The logger can be disposed by calling the Close method.
type EventLogger struct {
	file        *os.File
	buffered    *bufio.Writer
	encoder     *json.Encoder
	snapshots   bingo.SnapshotProvider
	unsubscribe func()
	// The first error hit while writing an event. Events arrive through a
	// callback with no way to report failure, so it is held until Close
	eventErr error
	closed   bool
	mtx      *sync.Mutex
}

var _ io.WriteCloser = &EventLogger{}

// Init is used to instantiate an EventLogger via the New function.
type Init struct {
	Subscriber bingo.EventSubscriber
	OutputPath string
	// Optional. Usually the same game as the subscriber
	Snapshots bingo.SnapshotProvider
}

type snapshotLine struct {
	Type     string             `json:"type"`
	Snapshot bingo.GameSnapshot `json:"snapshot"`
}

// New creates (or truncates) the file at OutputPath and subscribes to every
// event the subscriber dispatches.
func New(init Init) (*EventLogger, error) {
	if init.Subscriber == nil {
		return nil, errors.New("event file logger needs a subscriber")
	}

	file, err := os.Create(init.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("creating transcript %q: %w", init.OutputPath, err)
	}

	buffered := bufio.NewWriter(file)
	logger := &EventLogger{
		file:      file,
		buffered:  buffered,
		encoder:   json.NewEncoder(buffered),
		snapshots: init.Snapshots,
		mtx:       &sync.Mutex{},
	}

	unsub, err := init.Subscriber.Subscribe(nil, logger.handle)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("unable to subscribe to all events: %w", err)
	}
	logger.unsubscribe = unsub

	return logger, nil
}

func (efl *EventLogger) handle(event bingo.GameEvent) {
	efl.mtx.Lock()
	defer efl.mtx.Unlock()

	if efl.closed || efl.eventErr != nil {
		return
	}
	// Encode terminates each value with a newline
	if err := efl.encoder.Encode(event); err != nil {
		efl.eventErr = fmt.Errorf("writing %s event: %w", event.Type, err)
		return
	}

	if event.Type != bingo.EventTypeGameOver || efl.snapshots == nil {
		return
	}
	line := snapshotLine{Type: "snapshot", Snapshot: efl.snapshots.Snapshot()}
	if err := efl.encoder.Encode(line); err != nil {
		efl.eventErr = fmt.Errorf("writing final snapshot: %w", err)
	}
}

func (efl *EventLogger) Write(content []byte) (int, error) {
	efl.mtx.Lock()
	defer efl.mtx.Unlock()

	if efl.closed {
		return 0, ErrClosed
	}
	return efl.buffered.Write(content)
}

// Close unsubscribes from all events, flushes everything written so far and
// closes the file. If writing any event failed, that error is returned here.
// This function is safe to call multiple times; calling it more than once
// results in a no-op.
func (efl *EventLogger) Close() error {
	efl.mtx.Lock()
	if efl.closed {
		efl.mtx.Unlock()
		return nil
	}
	efl.closed = true
	efl.mtx.Unlock()

	// Outside the lock: unsubscribing takes the subscription manager's lock,
	// and that manager may be in the middle of calling handle
	efl.unsubscribe()

	efl.mtx.Lock()
	defer efl.mtx.Unlock()
	flushErr := efl.buffered.Flush()
	closeErr := efl.file.Close()
	return errors.Join(efl.eventErr, flushErr, closeErr)
}
