package game

import (
	bingo "github.com/Parkreiner/bingosim"
)

// drawRegistry replays the fixed sequence of draws for a game. The draws
// themselves never change; the registry only tracks how far into them the
// current playback has gotten. It can be reused across playbacks by calling
// reset.
type drawRegistry struct {
	draws  []bingo.Ball
	cursor int
}

func newDrawRegistry(draws []bingo.Ball) *drawRegistry {
	owned := make([]bingo.Ball, len(draws))
	copy(owned, draws)
	return &drawRegistry{draws: owned}
}

// next produces the next draw along with its position in the sequence. The
// final return value is false once every draw has been called.
func (r *drawRegistry) next() (bingo.Ball, int, bool) {
	if r.cursor >= len(r.draws) {
		return 0, r.cursor, false
	}

	i := r.cursor
	r.cursor++
	return r.draws[i], i, true
}

// called returns a copy of every draw handed out so far, in order.
func (r *drawRegistry) called() []bingo.Ball {
	out := make([]bingo.Ball, r.cursor)
	copy(out, r.draws[:r.cursor])
	return out
}

// all returns a copy of the full draw sequence.
func (r *drawRegistry) all() []bingo.Ball {
	out := make([]bingo.Ball, len(r.draws))
	copy(out, r.draws)
	return out
}

// position is the number of draws called so far.
func (r *drawRegistry) position() int {
	return r.cursor
}

// reset rewinds the registry to the first draw. Should be called at the start
// of each playback.
func (r *drawRegistry) reset() {
	r.cursor = 0
}
