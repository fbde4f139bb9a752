// Package subscriptions makes it easy to manage subscriptions to game events.
package subscriptions

import (
	"errors"
	"slices"
	"sync"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/google/uuid"
)

// ErrDisposed is returned by every method once a Manager has been disposed.
var ErrDisposed = errors.New("subscription manager has been disposed")

type subscriptionEntry struct {
	id            uuid.UUID
	handler       func(bingo.GameEvent)
	filteredTypes []bingo.GameEventType
}

// Manager fans events out to every interested subscriber. Dispatch is fully
// synchronous: handlers run on the dispatching goroutine, one after the other,
// in the order they subscribed. That keeps event order identical to the order
// the game produced them in.
type Manager struct {
	subs     []subscriptionEntry
	disposed bool
	mtx      *sync.Mutex
}

var _ bingo.EventSubscriber = &Manager{}

func New() *Manager {
	return &Manager{
		subs: nil,
		mtx:  &sync.Mutex{},
	}
}

// DispatchEvent delivers an event to every subscriber whose filter matches it.
// Handlers are allowed to unsubscribe (themselves or others) while a dispatch
// is in progress; the set of recipients is fixed when the dispatch starts.
func (sm *Manager) DispatchEvent(event bingo.GameEvent) error {
	sm.mtx.Lock()
	if sm.disposed {
		sm.mtx.Unlock()
		return ErrDisposed
	}
	var recipients []subscriptionEntry
	for _, s := range sm.subs {
		if isEligibleForDispatch(s, event) {
			recipients = append(recipients, s)
		}
	}
	sm.mtx.Unlock()

	for _, s := range recipients {
		s.handler(event)
	}
	return nil
}

// Subscribe registers handler for the given event types. A nil or empty slice
// subscribes to everything. The returned unsubscribe function is safe to call
// multiple times.
func (sm *Manager) Subscribe(types []bingo.GameEventType, handler func(bingo.GameEvent)) (func(), error) {
	if handler == nil {
		return nil, errors.New("handler must not be nil")
	}

	sm.mtx.Lock()
	defer sm.mtx.Unlock()
	if sm.disposed {
		return nil, ErrDisposed
	}

	subID := uuid.New()
	sm.subs = append(sm.subs, subscriptionEntry{
		id:            subID,
		handler:       handler,
		filteredTypes: slices.Clone(types),
	})

	unsubscribe := func() {
		sm.mtx.Lock()
		defer sm.mtx.Unlock()
		sm.subs = slices.DeleteFunc(sm.subs, func(entry subscriptionEntry) bool {
			return entry.id == subID
		})
	}
	return unsubscribe, nil
}

// Len returns the number of active subscriptions.
func (sm *Manager) Len() int {
	sm.mtx.Lock()
	defer sm.mtx.Unlock()
	return len(sm.subs)
}

// Dispose drops every subscription. Once disposed, the manager rejects all new
// subscriptions and dispatches. Calling Dispose more than once is a no-op.
func (sm *Manager) Dispose() {
	sm.mtx.Lock()
	defer sm.mtx.Unlock()
	sm.subs = nil
	sm.disposed = true
}

func isEligibleForDispatch(subscription subscriptionEntry, event bingo.GameEvent) bool {
	if len(subscription.filteredTypes) == 0 {
		return true
	}
	return slices.Contains(subscription.filteredTypes, event.Type)
}
