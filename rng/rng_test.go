package rng_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
)

// TestFromSeed_Determinism checks that equal seeds yield identical streams
// and that seed 0 maps onto the documented default stream.
func TestFromSeed_Determinism(t *testing.T) {
	a, b := rng.FromSeed(42), rng.FromSeed(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}

	z, one := rng.FromSeed(0), rng.FromSeed(1)
	assert.Equal(t, one.Int63(), z.Int63())
}

// TestDeriveSeed_Distinct verifies that neighbouring stream ids diverge.
func TestDeriveSeed_Distinct(t *testing.T) {
	seen := make(map[int64]bool)
	for s := uint64(0); s < 64; s++ {
		d := rng.DeriveSeed(7, s)
		assert.False(t, seen[d], "stream %d collided", s)
		seen[d] = true
	}
	assert.Equal(t, rng.DeriveSeed(7, 3), rng.DeriveSeed(7, 3))
}

// TestShuffle_Permutation ensures Shuffle only reorders elements.
func TestShuffle_Permutation(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := append([]int(nil), in...)
	rng.Shuffle(rng.FromSeed(5), s)

	sorted := append([]int(nil), s...)
	sort.Ints(sorted)
	assert.Equal(t, in, sorted)

	again := append([]int(nil), in...)
	rng.Shuffle(rng.FromSeed(5), again)
	assert.Equal(t, s, again, "same seed must give the same permutation")
}

func TestShuffle_Trivial(t *testing.T) {
	var empty []string
	rng.Shuffle(rng.FromSeed(1), empty)
	one := []string{"x"}
	rng.Shuffle(nil, one)
	assert.Equal(t, []string{"x"}, one)
}

// TestShuffleTogether_Aligned checks that pairs survive the permutation.
func TestShuffleTogether_Aligned(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	codes := []int{0, 1, 2, 3, 4, 5}
	index := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3, "e": 4, "f": 5}

	require.NoError(t, rng.ShuffleTogether(rng.FromSeed(11), ids, codes))
	for i := range ids {
		assert.Equal(t, index[ids[i]], codes[i], "pair broken at %d", i)
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, codes)
}

func TestShuffleTogether_Errors(t *testing.T) {
	err := rng.ShuffleTogether(rng.FromSeed(1), []int{1, 2}, []string{"a"})
	assert.ErrorIs(t, err, rng.ErrLengthMismatch)

	err = rng.ShuffleTogether(rng.FromSeed(1), []int{1, 2}, 3)
	assert.ErrorIs(t, err, rng.ErrNotSlice)

	assert.NoError(t, rng.ShuffleTogether(rng.FromSeed(1)))
}

// TestPickTake covers empty inputs and removal semantics.
func TestPickTake(t *testing.T) {
	_, idx, ok := rng.Pick[int](rng.FromSeed(1), nil)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	r := rng.FromSeed(9)
	pool := []string{"a", "b", "c", "d"}
	var drawn []string
	for len(pool) > 0 {
		var v string
		v, pool, ok = rng.Take(r, pool)
		require.True(t, ok)
		drawn = append(drawn, v)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, drawn)

	_, rest, ok := rng.Take(r, pool)
	assert.False(t, ok)
	assert.Empty(t, rest)
}
