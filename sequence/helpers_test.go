package sequence_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

const fixID = "fixation.jpg"

var fixItem = sequence.Item{ID: fixID, Path: "img/" + fixID}

// makeItems returns n items named <prefix>_000.jpg, <prefix>_001.jpg, ...
func makeItems(prefix string, n int) []sequence.Item {
	items := make([]sequence.Item, n)
	for i := range items {
		id := fmt.Sprintf("%s_%03d.jpg", prefix, i)
		items[i] = sequence.Item{ID: id, Path: "img/" + id}
	}

	return items
}

// poolsFor returns distinct pools sized exactly for p (plus slack items).
func poolsFor(t *testing.T, p sequence.Params, slack int) sequence.Pools {
	t.Helper()
	c, err := p.Counts()
	require.NoError(t, err)

	return sequence.Pools{
		Targets: makeItems("target", c.Target+slack),
		Fillers: makeItems("filler", c.Filler+slack),
	}
}

// params is a compact constructor for test tables.
func params(targets, block, firstDelay, minDelay, vigilance int, fixed bool) sequence.Params {
	return sequence.Params{
		TargetNum: targets,
		Schedule: sequence.Schedule{
			BlockSize:         block,
			FirstRepeatDelay:  firstDelay,
			MinRepeatDelay:    minDelay,
			VigilanceInterval: vigilance,
			FixedOrder:        fixed,
		},
	}
}

// hasFinding reports whether any finding contains substr.
func hasFinding(findings []string, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f, substr) {
			return true
		}
	}

	return false
}

// blockOf maps a pre-interleave position to its 1-based block index.
func blockOf(pos, blockSize int) int {
	return pos/blockSize + 1
}
