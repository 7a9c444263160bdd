// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// sampler.go - disjoint target/filler draws from the stimulus pools.

package sequence

import (
	"math/rand"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
)

// Sample draws target and filler items from pools.
//
// Shared pools (see Pools.Shared): one shuffle of a copy of the target pool,
// then the first `target` items become targets and the next `filler` items
// fillers, so the two sets never overlap. Distinct pools: each pool is copied,
// shuffled and sliced independently.
//
// The pools are never mutated; the returned slices are fresh.
//
// Errors: ErrConfiguration for negative counts, ErrInsufficientItems when a
// draw exceeds its pool.
// Complexity: O(|pool|) time and space per pool touched.
func Sample(pools Pools, target, filler int, opts ...Option) (targets, fillers []Item, err error) {
	cfg := newConfig(opts...)

	return sample(cfg.rnd, pools, target, filler)
}

func sample(r *rand.Rand, pools Pools, target, filler int) ([]Item, []Item, error) {
	if target < 0 || filler < 0 {
		return nil, nil, sequenceErrorf(MethodSample, ErrConfiguration, "draw sizes must be ≥ 0, got target=%d filler=%d", target, filler)
	}

	if pools.Shared() {
		drawn, err := shuffleSlice(r, pools.Targets, target+filler, "shared")
		if err != nil {
			return nil, nil, err
		}

		return drawn[:target:target], drawn[target:], nil
	}

	targets, err := shuffleSlice(r, pools.Targets, target, "target")
	if err != nil {
		return nil, nil, err
	}
	fillers, err := shuffleSlice(r, pools.Fillers, filler, "filler")
	if err != nil {
		return nil, nil, err
	}

	return targets, fillers, nil
}

// shuffleSlice copies pool, shuffles the copy and returns its first n items.
func shuffleSlice(r *rand.Rand, pool []Item, n int, name string) ([]Item, error) {
	if n > len(pool) {
		return nil, sequenceErrorf(MethodSample, ErrInsufficientItems, "%s pool has %d items, need %d", name, len(pool), n)
	}
	work := make([]Item, len(pool))
	copy(work, pool)
	rng.Shuffle(r, work)

	return work[:n:n], nil
}
