package sequence_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// TestCalculateTrialCounts covers the reference configurations and the
// vigilanceInterval == 1 correction.
func TestCalculateTrialCounts(t *testing.T) {
	tests := []struct {
		name                              string
		targets, block, firstDelay, vigil int
		want                              sequence.Counts
	}{
		{
			name: "reference example", targets: 60, block: 4, firstDelay: 5, vigil: 4,
			want: sequence.Counts{Blocks: 65, Total: 260, Target: 60, Repeat: 60, Filler: 124, Vigilance: 16},
		},
		{
			name: "defaults", targets: 60, block: 4, firstDelay: 8, vigil: 4,
			want: sequence.Counts{Blocks: 68, Total: 272, Target: 60, Repeat: 60, Filler: 135, Vigilance: 17},
		},
		{
			name: "interval one drops block one", targets: 10, block: 4, firstDelay: 3, vigil: 1,
			want: sequence.Counts{Blocks: 13, Total: 52, Target: 10, Repeat: 10, Filler: 20, Vigilance: 12},
		},
		{
			name: "exact multiple keeps floor", targets: 6, block: 5, firstDelay: 2, vigil: 4,
			want: sequence.Counts{Blocks: 8, Total: 40, Target: 6, Repeat: 6, Filler: 26, Vigilance: 2},
		},
		{
			name: "no blocks", targets: 0, block: 3, firstDelay: 0, vigil: 1,
			want: sequence.Counts{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sequence.CalculateTrialCounts(tc.targets, tc.block, tc.firstDelay, tc.vigil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got.Total, got.Target+got.Repeat+got.Filler+got.Vigilance)
		})
	}
}

// TestCalculateTrialCounts_IntervalOneDecrement checks the correction is
// exactly one trial against the plain floor.
func TestCalculateTrialCounts_IntervalOneDecrement(t *testing.T) {
	for blocks := 1; blocks < 30; blocks++ {
		c, err := sequence.CalculateTrialCounts(blocks, 4, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, blocks-1, c.Vigilance)
	}
}

func TestCalculateTrialCounts_Errors(t *testing.T) {
	cases := []struct {
		name                              string
		targets, block, firstDelay, vigil int
	}{
		{"negative targets", -1, 4, 5, 4},
		{"block too small", 10, 2, 5, 4},
		{"negative delay", 10, 4, -1, 4},
		{"zero interval", 10, 4, 5, 0},
		{"block count overflow", math.MaxInt, 4, 1, 4},
		{"trial count overflow", 1, 5, math.MaxInt / 4, math.MaxInt / 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sequence.CalculateTrialCounts(tc.targets, tc.block, tc.firstDelay, tc.vigil)
			assert.ErrorIs(t, err, sequence.ErrConfiguration)
		})
	}
}

// TestCounts_CheckPools exercises the caller-side sizing rules.
func TestCounts_CheckPools(t *testing.T) {
	c, err := sequence.CalculateTrialCounts(60, 4, 5, 4)
	require.NoError(t, err)

	assert.NoError(t, c.CheckPools(184, 0, true))
	assert.ErrorIs(t, c.CheckPools(183, 0, true), sequence.ErrInsufficientItems)
	assert.NoError(t, c.CheckPools(60, 124, false))
	assert.ErrorIs(t, c.CheckPools(59, 500, false), sequence.ErrInsufficientItems)
	assert.ErrorIs(t, c.CheckPools(500, 123, false), sequence.ErrInsufficientItems)

	neg := sequence.Counts{Total: 3, Target: 2, Repeat: 2, Filler: -1}
	assert.ErrorIs(t, neg.CheckPools(100, 100, false), sequence.ErrConfiguration)
}

// TestCounts_NonNegativeFillers sweeps valid tuples with block size ≥ 4:
// three special slots never exceed the block, so fillers stay ≥ 0.
func TestCounts_NonNegativeFillers(t *testing.T) {
	for targets := 0; targets <= 40; targets += 5 {
		for block := 4; block <= 6; block++ {
			for delay := 0; delay <= 10; delay += 2 {
				for vigil := 1; vigil <= 5; vigil++ {
					c, err := sequence.CalculateTrialCounts(targets, block, delay, vigil)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, c.Filler, 0, "t=%d b=%d d=%d v=%d", targets, block, delay, vigil)
				}
			}
		}
	}
}

func TestRoleCodes(t *testing.T) {
	want := map[sequence.Role]int{
		sequence.Fixation:     0,
		sequence.NewTarget:    1,
		sequence.TargetRepeat: 2,
		sequence.NewFiller:    3,
		sequence.Vigilance:    4,
	}
	for role, code := range want {
		assert.Equal(t, code, role.Code())
		back, err := sequence.RoleFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, role, back)
	}
	assert.Equal(t, "VIGILANCE", sequence.Vigilance.String())
	assert.Equal(t, "TARGET", sequence.NewTarget.String())

	_, err := sequence.RoleFromCode(5)
	assert.ErrorIs(t, err, sequence.ErrUnknownRole)
	assert.Equal(t, -1, sequence.Role(9).Code())
	assert.Equal(t, "Role(9)", sequence.Role(9).String())
}
