// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// builder.go - block-by-block sequence construction.
//
// Design contract (strict):
//   - One builder context per call (blockBuilder); no package-level state.
//   - Every block is filled slot by slot, then shuffled as a whole:
//     slot 1 vigilance-or-filler, slot 2 repeat-or-filler,
//     slot 3 target-or-filler, then filler padding up to BlockSize.
//     Each special role therefore appears at most once per block, and the
//     shuffle removes any link between role and position.
//   - The loop ends once every target has been repeated exactly once.
//   - Failures return nil; a partial sequence never escapes.
//
// Target lifecycle (random order):
//
//	unseen ──slot 3──▶ shown (FIFO) ──promotion──▶ ready ──slot 2──▶ repeated
//
// Promotion moves the oldest shown target once blockIndex > MinRepeatDelay+1;
// the repeat itself is drawn uniformly among ready targets.
// In fixed order the repeat is always the oldest unrepeated target.

package sequence

import (
	"math/rand"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
)

// Build produces the role-tagged, not yet fixation-interleaved sequence.
// targets fixes the order of first presentation; fillers are consumed in
// order. Both slices are read-only for Build.
//
// Errors:
//   - ErrConfiguration: empty item lists, BlockSize < MinBlockSize,
//     VigilanceInterval < 1, FirstRepeatDelay < 0, FirstRepeatDelay == 0 in
//     fixed order, MinRepeatDelay outside [0, FirstRepeatDelay) in random order.
//   - ErrFillerExhausted / ErrRepeatExhausted (see IsExhaustion).
//
// Complexity: O((T+D)·B) time and space for T targets, first repeat delay D
// and block size B.
func Build(targets, fillers []Item, s Schedule, opts ...Option) (*Sequence, error) {
	cfg := newConfig(opts...)

	return build(cfg.rnd, targets, fillers, s)
}

func build(r *rand.Rand, targets, fillers []Item, s Schedule) (*Sequence, error) {
	if err := s.validate(MethodBuild, len(targets), len(fillers)); err != nil {
		return nil, err
	}

	b := newBlockBuilder(r, targets, fillers, s)
	for b.repeatCursor < len(b.targets) {
		if err := b.buildBlock(); err != nil {
			return nil, err
		}
		b.blockIndex++
	}

	return b.out, nil
}

// validate checks the schedule against the sampled list sizes.
func (s Schedule) validate(method string, nTargets, nFillers int) error {
	switch {
	case nTargets == 0:
		return sequenceErrorf(method, ErrConfiguration, "target list is empty")
	case nFillers == 0:
		return sequenceErrorf(method, ErrConfiguration, "filler list is empty")
	case s.BlockSize < MinBlockSize:
		return sequenceErrorf(method, ErrConfiguration, "blockSize must be ≥ %d, got %d", MinBlockSize, s.BlockSize)
	case s.VigilanceInterval < MinVigilanceInterval:
		return sequenceErrorf(method, ErrConfiguration, "vigilanceInterval must be ≥ %d, got %d", MinVigilanceInterval, s.VigilanceInterval)
	case s.FirstRepeatDelay < 0:
		return sequenceErrorf(method, ErrConfiguration, "firstRepeatDelay must be ≥ 0, got %d", s.FirstRepeatDelay)
	}

	if s.FixedOrder {
		// A zero delay would repeat a target inside its own first block.
		if s.FirstRepeatDelay == 0 {
			return sequenceErrorf(method, ErrConfiguration, "firstRepeatDelay must be ≥ 1 in fixed order")
		}

		return nil
	}
	if s.MinRepeatDelay < 0 || s.MinRepeatDelay >= s.FirstRepeatDelay {
		return sequenceErrorf(method, ErrConfiguration,
			"minRepeatDelay must be in [0,%d), got %d", s.FirstRepeatDelay, s.MinRepeatDelay)
	}

	return nil
}

// blockBuilder owns every cursor and pool of one Build call.
type blockBuilder struct {
	sched   Schedule
	r       *rand.Rand
	targets []Item
	fillers []Item

	blockIndex   int // 1-based
	targetCursor int // next target to present
	fillerCursor int // next filler to present
	repeatCursor int // number of targets repeated so far

	prevFillers  []Item // new fillers of the previous block
	blockFillers []Item // new fillers of the current block

	shown []Item // random order: presented once, FIFO by first presentation
	ready []Item // random order: eligible for repeat

	// current block, index-aligned
	entries []Entry
	img     []string
	roles   []Role

	out *Sequence
}

func newBlockBuilder(r *rand.Rand, targets, fillers []Item, s Schedule) *blockBuilder {
	blocks := len(targets) + s.FirstRepeatDelay

	return &blockBuilder{
		sched:      s,
		r:          r,
		targets:    targets,
		fillers:    fillers,
		blockIndex: 1,
		entries:    make([]Entry, 0, s.BlockSize),
		img:        make([]string, 0, s.BlockSize),
		roles:      make([]Role, 0, s.BlockSize),
		out:        NewSequence(blocks * s.BlockSize),
	}
}

// buildBlock fills, shuffles and appends one block.
func (b *blockBuilder) buildBlock() error {
	b.entries, b.img, b.roles = b.entries[:0], b.img[:0], b.roles[:0]

	// The one-block lookback: last block's fillers are usable now and never later.
	prev := b.prevFillers
	b.prevFillers = nil

	if !b.sched.FixedOrder && b.blockIndex > b.sched.MinRepeatDelay+1 && len(b.shown) > 0 {
		b.ready = append(b.ready, b.shown[0])
		b.shown = b.shown[1:]
	}

	// slot 1: vigilance or filler
	if len(prev) > 0 && b.blockIndex%b.sched.VigilanceInterval == 0 {
		item, _, _ := rng.Pick(b.r, prev)
		b.add(Vigilance, item)
	} else if err := b.addFiller(); err != nil {
		return err
	}

	// slot 2: repeat or filler
	if b.blockIndex > b.sched.FirstRepeatDelay {
		if err := b.addRepeat(); err != nil {
			return err
		}
	} else if err := b.addFiller(); err != nil {
		return err
	}

	// slot 3: new target or filler
	if b.targetCursor < len(b.targets) {
		item := b.targets[b.targetCursor]
		b.targetCursor++
		if !b.sched.FixedOrder {
			b.shown = append(b.shown, item)
		}
		b.add(NewTarget, item)
	} else if err := b.addFiller(); err != nil {
		return err
	}

	for len(b.entries) < b.sched.BlockSize {
		if err := b.addFiller(); err != nil {
			return err
		}
	}

	if err := rng.ShuffleTogether(b.r, b.entries, b.img, b.roles); err != nil {
		return sequenceErrorf(MethodBuild, ErrProjectionMismatch, "block %d: %v", b.blockIndex, err)
	}
	b.out.Entries = append(b.out.Entries, b.entries...)
	b.out.Img = append(b.out.Img, b.img...)
	b.out.Type = append(b.out.Type, b.roles...)
	b.prevFillers = b.blockFillers
	b.blockFillers = nil

	return nil
}

func (b *blockBuilder) add(role Role, item Item) {
	b.entries = append(b.entries, Entry{Role: role, ItemID: item.ID, SourcePath: item.Path})
	b.img = append(b.img, item.ID)
	b.roles = append(b.roles, role)
}

func (b *blockBuilder) addFiller() error {
	if b.fillerCursor >= len(b.fillers) {
		return sequenceErrorf(MethodBuild, ErrFillerExhausted,
			"block %d needs filler #%d, only %d sampled", b.blockIndex, b.fillerCursor+1, len(b.fillers))
	}
	item := b.fillers[b.fillerCursor]
	b.fillerCursor++
	b.blockFillers = append(b.blockFillers, item)
	b.add(NewFiller, item)

	return nil
}

func (b *blockBuilder) addRepeat() error {
	var item Item
	if b.sched.FixedOrder {
		if b.repeatCursor >= b.targetCursor {
			return sequenceErrorf(MethodBuild, ErrRepeatExhausted,
				"block %d: target #%d not presented yet", b.blockIndex, b.repeatCursor+1)
		}
		item = b.targets[b.repeatCursor]
	} else {
		var ok bool
		item, b.ready, ok = rng.Take(b.r, b.ready)
		if !ok {
			return sequenceErrorf(MethodBuild, ErrRepeatExhausted, "block %d: ready pool empty", b.blockIndex)
		}
	}
	b.repeatCursor++
	b.add(TargetRepeat, item)

	return nil
}
