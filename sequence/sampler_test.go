package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// TestSample_SharedPool ensures one pool yields disjoint target/filler sets.
func TestSample_SharedPool(t *testing.T) {
	pool := makeItems("img", 50)
	original := append([]sequence.Item(nil), pool...)

	for _, pools := range []sequence.Pools{
		{Targets: pool},                // no filler pool
		{Targets: pool, Fillers: pool}, // same slice
	} {
		require.True(t, pools.Shared())
		targets, fillers, err := sequence.Sample(pools, 20, 30, sequence.WithSeed(3))
		require.NoError(t, err)
		assert.Len(t, targets, 20)
		assert.Len(t, fillers, 30)

		seen := make(map[string]bool)
		for _, it := range append(append([]sequence.Item(nil), targets...), fillers...) {
			assert.False(t, seen[it.ID], "item %s drawn twice", it.ID)
			seen[it.ID] = true
		}
	}
	assert.Equal(t, original, pool, "pool must not be mutated")
}

// TestSample_DistinctPools draws each set from its own pool.
func TestSample_DistinctPools(t *testing.T) {
	pools := sequence.Pools{Targets: makeItems("t", 10), Fillers: makeItems("f", 12)}
	require.False(t, pools.Shared())

	targets, fillers, err := sequence.Sample(pools, 10, 5, sequence.WithSeed(8))
	require.NoError(t, err)
	assert.ElementsMatch(t, pools.Targets, targets)
	assert.Len(t, fillers, 5)
	assert.Subset(t, pools.Fillers, fillers)
}

func TestSample_Determinism(t *testing.T) {
	pools := sequence.Pools{Targets: makeItems("img", 40)}
	a1, b1, err := sequence.Sample(pools, 10, 10, sequence.WithSeed(99))
	require.NoError(t, err)
	a2, b2, err := sequence.Sample(pools, 10, 10, sequence.WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestSample_Errors(t *testing.T) {
	shared := sequence.Pools{Targets: makeItems("img", 10)}
	_, _, err := sequence.Sample(shared, 6, 5, sequence.WithSeed(1))
	assert.ErrorIs(t, err, sequence.ErrInsufficientItems)

	distinct := sequence.Pools{Targets: makeItems("t", 3), Fillers: makeItems("f", 3)}
	_, _, err = sequence.Sample(distinct, 4, 1, sequence.WithSeed(1))
	assert.ErrorIs(t, err, sequence.ErrInsufficientItems)
	_, _, err = sequence.Sample(distinct, 1, 4, sequence.WithSeed(1))
	assert.ErrorIs(t, err, sequence.ErrInsufficientItems)

	_, _, err = sequence.Sample(distinct, -1, 1)
	assert.ErrorIs(t, err, sequence.ErrConfiguration)
}

func TestWithRand_NilPanics(t *testing.T) {
	assert.Panics(t, func() { sequence.WithRand(nil) })
	assert.Panics(t, func() { sequence.WithRepeatLag(3, 2) })
	assert.Panics(t, func() { sequence.WithVigilanceLag(-1, 2) })
	assert.Panics(t, func() { sequence.WithVigilanceCount(-1) })
}
