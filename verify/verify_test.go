package verify_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/verify"
)

var fixation = sequence.Item{ID: "fixation.jpg", Path: "img/fixation.jpg"}

func pool(n int) sequence.Pools {
	items := make([]sequence.Item, n)
	for i := range items {
		id := fmt.Sprintf("img_%03d.jpg", i)
		items[i] = sequence.Item{ID: id, Path: "img/" + id}
	}

	return sequence.Pools{Targets: items}
}

func TestRun_DefaultsAreValid(t *testing.T) {
	rep, err := verify.Run(context.Background(), pool(200), sequence.DefaultParams(), fixation,
		verify.Options{Seeds: 64, BaseSeed: 11, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 64, rep.Runs)
	assert.True(t, rep.OK(), "failures: %+v", rep.Failures)
	assert.Equal(t, 135, rep.Counts.Filler)
}

func TestRun_FixedOrder(t *testing.T) {
	p := sequence.DefaultParams()
	p.FixedOrder = true
	p.FirstRepeatDelay = 5

	rep, err := verify.Run(context.Background(), pool(200), p, fixation, verify.Options{Seeds: 20, BaseSeed: 3})
	require.NoError(t, err)
	assert.True(t, rep.OK(), "failures: %+v", rep.Failures)
}

// TestRun_Exhaustion: with blocks of 3 and a vigilance trial every block,
// blocks alternate between holding a new filler and holding none, so the
// count arithmetic undersupplies fillers. Exhaustion is recorded per seed,
// never returned as an error.
func TestRun_Exhaustion(t *testing.T) {
	p := sequence.Params{TargetNum: 10, Schedule: sequence.Schedule{
		BlockSize: 3, FirstRepeatDelay: 3, MinRepeatDelay: 1, VigilanceInterval: 1,
	}}
	c, err := p.Counts()
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Filler, 0)

	rep, err := verify.Run(context.Background(), pool(c.Items()), p, fixation, verify.Options{Seeds: 8, BaseSeed: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, rep.Runs)
	require.Len(t, rep.Failures, 8)
	for _, f := range rep.Failures {
		assert.Contains(t, f.Error, "filler list exhausted")
		assert.Empty(t, f.Findings)
	}
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := verify.Run(ctx, pool(10), sequence.DefaultParams(), fixation, verify.Options{Seeds: 2})
	assert.ErrorIs(t, err, sequence.ErrInsufficientItems)

	bad := sequence.DefaultParams()
	bad.MinRepeatDelay = bad.FirstRepeatDelay
	_, err = verify.Run(ctx, pool(300), bad, fixation, verify.Options{Seeds: 2})
	assert.ErrorIs(t, err, sequence.ErrConfiguration)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = verify.Run(cancelled, pool(300), sequence.DefaultParams(), fixation, verify.Options{Seeds: 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Reproducible(t *testing.T) {
	p := sequence.DefaultParams()
	opts := verify.Options{Seeds: 10, BaseSeed: 99, Workers: 3}

	a, err := verify.Run(context.Background(), pool(200), p, fixation, opts)
	require.NoError(t, err)
	b, err := verify.Run(context.Background(), pool(200), p, fixation, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGrid(t *testing.T) {
	random := verify.Grid(verify.Axes{
		TargetNum:         []int{10, 20},
		BlockSize:         []int{4},
		FirstRepeatDelay:  []int{2, 4},
		MinRepeatDelay:    []int{0, 2, 4},
		VigilanceInterval: []int{1, 3},
	})
	// frd=2 admits mrd 0; frd=4 admits mrd 0,2.
	assert.Len(t, random, 2*3*2)
	for _, p := range random {
		assert.Less(t, p.MinRepeatDelay, p.FirstRepeatDelay)
	}

	fixed := verify.Grid(verify.Axes{
		TargetNum:         []int{10},
		BlockSize:         []int{4, 5},
		FirstRepeatDelay:  []int{0, 3},
		MinRepeatDelay:    []int{7, 8, 9},
		VigilanceInterval: []int{2},
		FixedOrder:        true,
	})
	require.Len(t, fixed, 2)
	for _, p := range fixed {
		assert.True(t, p.FixedOrder)
		assert.Equal(t, 3, p.FirstRepeatDelay)
		assert.Zero(t, p.MinRepeatDelay)
	}
}

func TestSweep(t *testing.T) {
	grid := verify.Grid(verify.Axes{
		TargetNum:         []int{15},
		BlockSize:         []int{4, 6},
		FirstRepeatDelay:  []int{3, 6},
		MinRepeatDelay:    []int{0, 2},
		VigilanceInterval: []int{1, 4},
	})
	reports, err := verify.Sweep(context.Background(), pool(200), grid, fixation, verify.Options{Seeds: 10, BaseSeed: 5})
	require.NoError(t, err)
	require.Len(t, reports, len(grid))
	for _, rep := range reports {
		assert.True(t, rep.OK(), "params %+v: %+v", rep.Params, rep.Failures)
	}

	_, err = verify.Sweep(context.Background(), pool(20), grid, fixation, verify.Options{Seeds: 1})
	assert.ErrorIs(t, err, sequence.ErrInsufficientItems)
}
