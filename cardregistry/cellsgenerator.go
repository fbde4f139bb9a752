package cardregistry

import (
	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/shuffler"
)

// cellsGenerator hands out random board layouts and draw orders. Every value
// it produces comes from the same seeded shuffler, so a given seed always
// yields the same puzzle.
type cellsGenerator struct {
	shuffler *shuffler.Shuffler
	pool     []bingo.Ball
}

func newCellsGenerator(seed int64, maxValue int) *cellsGenerator {
	return &cellsGenerator{
		shuffler: shuffler.NewShuffler(seed),
		pool:     shuffler.Range(0, maxValue),
	}
}

// generateCells picks 25 distinct numbers, laid out row by row. Sampling
// without replacement guarantees that a board never repeats a number.
func (cg *cellsGenerator) generateCells() []bingo.Ball {
	return cg.shuffler.Sample(cg.pool, bingo.BoardCells)
}

// generateDraws returns every value in the pool exactly once, in random order.
func (cg *cellsGenerator) generateDraws() []bingo.Ball {
	return cg.shuffler.Sample(cg.pool, len(cg.pool))
}
