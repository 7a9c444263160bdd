// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// generate.go - one-call pipeline for a single participant:
// counts → pool checks → sample → build → interleave.

package sequence

import "fmt"

// Generate runs the whole generation path with one generator shared by the
// sampler and the builder, so WithSeed reproduces the complete result.
//
// Errors: anything the individual steps return, wrapped with "Generate: ".
func Generate(pools Pools, p Params, fixation Item, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)

	counts, err := p.Counts()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGenerate, err)
	}
	if err = counts.CheckPools(len(pools.Targets), len(pools.Fillers), pools.Shared()); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGenerate, err)
	}

	targets, fillers, err := sample(cfg.rnd, pools, counts.Target, counts.Filler)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGenerate, err)
	}

	seq, err := build(cfg.rnd, targets, fillers, p.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGenerate, err)
	}

	interleaved, err := InterleaveFixation(seq, fixation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGenerate, err)
	}

	return &Result{
		Counts:   counts,
		Targets:  targets,
		Fillers:  fillers,
		Sequence: interleaved,
	}, nil
}

// Validate audits r.Sequence against r.Counts, including the vigilance count.
func (r *Result) Validate(fixationID string, opts ...CheckOption) []string {
	opts = append([]CheckOption{WithVigilanceCount(r.Counts.Vigilance)}, opts...)

	return Validate(r.Sequence, fixationID, r.Counts.Target, r.Counts.Filler, opts...)
}
