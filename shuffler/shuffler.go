// Package shuffler defines a tool for shuffling bingo balls in pseudo-random,
// seed-based ways. Two shufflers built from the same seed always produce the
// same sequence of shuffles.
package shuffler

import (
	"math/rand"

	bingo "github.com/Parkreiner/bingosim"
)

// Shuffler provides methods for shuffling draws and board numbers using
// seed-based random logic.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler creates a new instance of a Shuffler
func NewShuffler(rngSeed int64) *Shuffler {
	return &Shuffler{
		rng: rand.New(rand.NewSource(rngSeed)),
	}
}

// ShuffleBalls shuffles a slice of balls in place (Fisher-Yates).
func (s *Shuffler) ShuffleBalls(balls []bingo.Ball) {
	for i := len(balls) - 1; i >= 1; i-- {
		j := s.rng.Intn(i + 1)
		balls[i], balls[j] = balls[j], balls[i]
	}
}

// Sample returns n distinct balls picked at random from pool, without
// modifying pool. If n is larger than the pool, the whole pool is returned in
// shuffled order.
func (s *Shuffler) Sample(pool []bingo.Ball, n int) []bingo.Ball {
	shuffled := make([]bingo.Ball, len(pool))
	copy(shuffled, pool)
	s.ShuffleBalls(shuffled)
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// Range creates every ball from start to end, both inclusive. If end comes
// before start, the result is nil.
func Range(start, end int) []bingo.Ball {
	if end < start {
		return nil
	}
	balls := make([]bingo.Ball, 0, end-start+1)
	for i := start; i <= end; i++ {
		balls = append(balls, bingo.Ball(i))
	}
	return balls
}
