// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// counts.go - trial-count calculator.

package sequence

import "math"

// CalculateTrialCounts maps the four top-level parameters to the exact number
// of trials per role.
//
//	blocks    = targetNum + firstRepeatDelay
//	total     = blocks × blockSize
//	target    = repeat = targetNum
//	vigilance = ⌊blocks / vigilanceInterval⌋, minus 1 when vigilanceInterval == 1
//	filler    = total − target − repeat − vigilance
//
// The vigilanceInterval == 1 correction exists because block 1 never hosts a
// vigilance trial (there is no previous block to look back on); for any other
// interval block 1 is not a multiple of it, so the floor is already exact.
// The vigilance count never drops below zero.
//
// The result may carry a negative Filler when blockSize is too small for the
// special trials; Counts.CheckPools rejects that.
//
// Errors: ErrConfiguration when targetNum < 0, blockSize < MinBlockSize,
// firstRepeatDelay < 0, vigilanceInterval < MinVigilanceInterval, or when
// the block or trial count does not fit in an int.
// Complexity: O(1).
func CalculateTrialCounts(targetNum, blockSize, firstRepeatDelay, vigilanceInterval int) (Counts, error) {
	switch {
	case targetNum < 0:
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration, "targetNum must be ≥ 0, got %d", targetNum)
	case blockSize < MinBlockSize:
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration, "blockSize must be ≥ %d, got %d", MinBlockSize, blockSize)
	case firstRepeatDelay < 0:
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration, "firstRepeatDelay must be ≥ 0, got %d", firstRepeatDelay)
	case vigilanceInterval < MinVigilanceInterval:
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration, "vigilanceInterval must be ≥ %d, got %d", MinVigilanceInterval, vigilanceInterval)
	}

	if targetNum > math.MaxInt-firstRepeatDelay {
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration,
			"targetNum %d + firstRepeatDelay %d overflows the block count", targetNum, firstRepeatDelay)
	}
	blocks := targetNum + firstRepeatDelay
	if blocks > math.MaxInt/blockSize {
		return Counts{}, sequenceErrorf(MethodCalculateTrialCounts, ErrConfiguration,
			"%d blocks of %d trials overflow the trial count", blocks, blockSize)
	}
	vigilance := blocks / vigilanceInterval
	if vigilanceInterval == 1 {
		vigilance--
	}
	if vigilance < 0 {
		vigilance = 0
	}
	total := blocks * blockSize

	return Counts{
		Blocks:    blocks,
		Total:     total,
		Target:    targetNum,
		Repeat:    targetNum,
		Filler:    total - 2*targetNum - vigilance,
		Vigilance: vigilance,
	}, nil
}

// CheckPools performs the caller-side checks that must hold before sampling:
// the filler count is non-negative and the pools can supply the draws. With
// a shared pool, targetPool must hold Target+Filler items; otherwise each
// pool must cover its own draw.
//
// Errors: ErrConfiguration (negative filler count), ErrInsufficientItems.
func (c Counts) CheckPools(targetPool, fillerPool int, shared bool) error {
	if c.Filler < 0 {
		return sequenceErrorf(MethodCheckPools, ErrConfiguration,
			"filler count is %d: blocks cannot hold %d targets, %d repeats and %d vigilance trials",
			c.Filler, c.Target, c.Repeat, c.Vigilance)
	}
	if shared {
		if targetPool < c.Target+c.Filler {
			return sequenceErrorf(MethodCheckPools, ErrInsufficientItems,
				"shared pool has %d items, need %d targets + %d fillers", targetPool, c.Target, c.Filler)
		}

		return nil
	}
	if targetPool < c.Target {
		return sequenceErrorf(MethodCheckPools, ErrInsufficientItems, "target pool has %d items, need %d", targetPool, c.Target)
	}
	if fillerPool < c.Filler {
		return sequenceErrorf(MethodCheckPools, ErrInsufficientItems, "filler pool has %d items, need %d", fillerPool, c.Filler)
	}

	return nil
}
