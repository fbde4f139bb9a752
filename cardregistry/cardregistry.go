// Package cardregistry generates random, reproducible puzzle inputs: a draw
// order plus a set of boards that are all meaningfully different from one
// another.
package cardregistry

import (
	"errors"
	"fmt"
	"io"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/parse"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultUniquenessThreshold is the number of cells that two boards are
// allowed to have in common to still be called unique from a fun, gameplay
// standpoint. A shared cell, in this case, refers to not just the numeric value
// of a cell, but also the position.
//
// The number is roughly 2/3 of the total cells of a board.
const DefaultUniquenessThreshold = 16

// Number of layouts tried for a single board before giving up
const maxAttemptsPerBoard = 1000

var ErrRegistryExhausted = errors.New("could not generate a board that satisfies the uniqueness threshold")

// Options controls puzzle generation.
type Options struct {
	Boards int
	// Draws and board numbers are picked from 0 through MaxValue, inclusive.
	// Must be at least 24 so that a board can hold 25 distinct numbers
	MaxValue int
	Seed     int64
	// The most same-position cells any two boards may share. 25 disables the
	// check entirely
	UniquenessThreshold int
	Logger              *log.Logger
}

func (o Options) validate() error {
	if o.Boards < 1 {
		return fmt.Errorf("board count must be at least 1, got %d", o.Boards)
	}
	if o.MaxValue < bingo.BoardCells-1 {
		return fmt.Errorf("max value must be at least %d, got %d", bingo.BoardCells-1, o.MaxValue)
	}
	if o.UniquenessThreshold < 0 || o.UniquenessThreshold > bingo.BoardCells {
		return fmt.Errorf("uniqueness threshold must be between 0 and %d, got %d", bingo.BoardCells, o.UniquenessThreshold)
	}
	return nil
}

// Entry is a single generated board.
type Entry struct {
	// Should be treated as 100% immutable
	ID uuid.UUID
	// Should be treated as 100% immutable
	Numbers []bingo.Ball
}

// Registry keeps track of every board generated so far, so that new boards can
// be checked against them.
type Registry struct {
	entries   []*Entry
	generator *cellsGenerator
	threshold int
	logger    *log.Logger
}

// NewRegistry validates the options and creates an empty registry. Only
// MaxValue, Seed, UniquenessThreshold and Logger are used; Boards is ignored.
func NewRegistry(opts Options) (*Registry, error) {
	check := opts
	check.Boards = 1
	if err := check.validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Registry{
		entries:   nil,
		generator: newCellsGenerator(opts.Seed, opts.MaxValue),
		threshold: opts.UniquenessThreshold,
		logger:    logger,
	}, nil
}

// Register generates one more board that shares no more than the threshold
// number of cells with any board already in the registry.
func (r *Registry) Register() (*Entry, error) {
	for attempt := 1; attempt <= maxAttemptsPerBoard; attempt++ {
		cells := r.generator.generateCells()
		if conflict := r.firstConflict(cells); conflict != nil {
			r.logger.Debug("rejected layout", "attempt", attempt, "conflictsWith", conflict.ID)
			continue
		}

		entry := &Entry{ID: uuid.New(), Numbers: cells}
		r.entries = append(r.entries, entry)
		r.logger.Debug("registered board", "id", entry.ID, "attempts", attempt)
		return entry, nil
	}

	return nil, fmt.Errorf("board %d: %w (threshold %d)", len(r.entries), ErrRegistryExhausted, r.threshold)
}

// Entries returns every registered board in the order they were generated.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) firstConflict(cells []bingo.Ball) *Entry {
	for _, entry := range r.entries {
		if SharedCells(entry.Numbers, cells) > r.threshold {
			return entry
		}
	}
	return nil
}

// SharedCells counts the positions at which two boards hold the same number.
func SharedCells(a, b []bingo.Ball) int {
	shared := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			shared++
		}
	}
	return shared
}

// Puzzle is a complete generated input.
type Puzzle struct {
	Draws   []bingo.Ball
	Entries []*Entry
}

// Input converts the puzzle into the form the parser produces, ready to be
// formatted or handed to a game.
func (p Puzzle) Input() parse.Input {
	boards := make([][]bingo.Ball, len(p.Entries))
	for i, e := range p.Entries {
		boards[i] = e.Numbers
	}
	return parse.Input{Draws: p.Draws, Boards: boards}
}

// Generate builds a whole puzzle: opts.Boards boards, followed by a draw order
// that contains every value from 0 through opts.MaxValue exactly once.
func Generate(opts Options) (Puzzle, error) {
	if err := opts.validate(); err != nil {
		return Puzzle{}, err
	}

	registry, err := NewRegistry(opts)
	if err != nil {
		return Puzzle{}, err
	}
	for i := 0; i < opts.Boards; i++ {
		if _, err := registry.Register(); err != nil {
			return Puzzle{}, err
		}
	}

	return Puzzle{
		Draws:   registry.generator.generateDraws(),
		Entries: registry.Entries(),
	}, nil
}
