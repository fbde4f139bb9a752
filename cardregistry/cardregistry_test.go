package cardregistry

import (
	"slices"
	"testing"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/parse"
	"github.com/Parkreiner/bingosim/shuffler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{
		Boards:              20,
		MaxValue:            99,
		Seed:                2021,
		UniquenessThreshold: DefaultUniquenessThreshold,
	}
}

func TestGenerate(t *testing.T) {
	t.Run("same seed, same puzzle", func(t *testing.T) {
		a, err := Generate(defaultOptions())
		require.NoError(t, err)
		b, err := Generate(defaultOptions())
		require.NoError(t, err)

		assert.Equal(t, a.Input(), b.Input())
		assert.NotEqual(t, a.Entries[0].ID, b.Entries[0].ID, "IDs are never reused")
	})

	t.Run("draws are a permutation of the value range", func(t *testing.T) {
		p, err := Generate(defaultOptions())
		require.NoError(t, err)

		sorted := slices.Clone(p.Draws)
		slices.Sort(sorted)
		assert.Equal(t, shuffler.Range(0, 99), sorted)
	})

	t.Run("boards hold 25 distinct in-range numbers", func(t *testing.T) {
		p, err := Generate(defaultOptions())
		require.NoError(t, err)
		require.Len(t, p.Entries, 20)

		for _, e := range p.Entries {
			require.Len(t, e.Numbers, bingo.BoardCells)
			seen := map[bingo.Ball]bool{}
			for _, n := range e.Numbers {
				assert.False(t, seen[n], "board %s repeats %d", e.ID, n)
				assert.GreaterOrEqual(t, int(n), 0)
				assert.LessOrEqual(t, int(n), 99)
				seen[n] = true
			}
		}
	})

	t.Run("boards respect the uniqueness threshold", func(t *testing.T) {
		opts := defaultOptions()
		opts.UniquenessThreshold = 2
		p, err := Generate(opts)
		require.NoError(t, err)

		for i := range p.Entries {
			for j := i + 1; j < len(p.Entries); j++ {
				assert.LessOrEqual(t, SharedCells(p.Entries[i].Numbers, p.Entries[j].Numbers), 2)
			}
		}
	})

	t.Run("output round-trips through the parser", func(t *testing.T) {
		p, err := Generate(defaultOptions())
		require.NoError(t, err)

		parsed, err := parse.Parse(parse.Format(p.Input()))
		require.NoError(t, err)
		assert.Equal(t, p.Input(), parsed)
	})

	t.Run("impossible thresholds exhaust the registry", func(t *testing.T) {
		// Only 25 values exist, so position 0 can hold at most 25 different
		// numbers across all boards
		_, err := Generate(Options{Boards: 26, MaxValue: 24, Seed: 1, UniquenessThreshold: 0})
		require.ErrorIs(t, err, ErrRegistryExhausted)
	})
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "no boards", opts: Options{Boards: 0, MaxValue: 99}},
		{name: "too few values", opts: Options{Boards: 1, MaxValue: 23}},
		{name: "negative threshold", opts: Options{Boards: 1, MaxValue: 99, UniquenessThreshold: -1}},
		{name: "threshold above board size", opts: Options{Boards: 1, MaxValue: 99, UniquenessThreshold: 26}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.opts)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrRegistryExhausted)
		})
	}
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(Options{MaxValue: 99, Seed: 5, UniquenessThreshold: 25})
	require.NoError(t, err)

	first, err := r.Register()
	require.NoError(t, err)
	second, err := r.Register()
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, first, entries[0])
	assert.Same(t, second, entries[1])
}

func TestSharedCells(t *testing.T) {
	a := []bingo.Ball{1, 2, 3, 4}
	b := []bingo.Ball{1, 9, 3, 9}
	assert.Equal(t, 2, SharedCells(a, b))
	assert.Equal(t, 4, SharedCells(a, a))
	assert.Equal(t, 0, SharedCells(a, nil))
}
