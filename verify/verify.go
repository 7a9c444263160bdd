// SPDX-License-Identifier: MIT
// Package: crt/verify
//
// verify.go - parallel multi-seed build-and-validate harness.

package verify

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// DefaultSeeds is the number of runs when Options.Seeds is zero.
const DefaultSeeds = 100

// Options controls one verification run.
type Options struct {
	Seeds    int   // runs per parameter tuple; 0 means DefaultSeeds
	BaseSeed int64 // parent seed every run seed is derived from
	Workers  int   // concurrent builds; ≤ 0 means GOMAXPROCS
}

func (o Options) normalized() Options {
	if o.Seeds <= 0 {
		o.Seeds = DefaultSeeds
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// Failure is one seed whose build failed or whose sequence did not validate.
type Failure struct {
	Seed     int64    `json:"seed" yaml:"seed"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
	Findings []string `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Report summarizes the runs of one parameter tuple.
type Report struct {
	Params   sequence.Params `json:"params" yaml:"params"`
	Counts   sequence.Counts `json:"counts" yaml:"counts"`
	Runs     int             `json:"runs" yaml:"runs"`
	Failures []Failure       `json:"failures" yaml:"failures"`
}

// OK reports whether every run produced a valid sequence.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// ExpectedLags returns the lag checks implied by s, in stimulus trials.
// Random order never repeats a target sooner than MinRepeatDelay+1 blocks;
// fixed order repeats exactly FirstRepeatDelay blocks later, give or take
// the within-block shuffle. A vigilance trial always recalls a filler from
// the block just before.
func ExpectedLags(s sequence.Schedule) []sequence.CheckOption {
	b := s.BlockSize
	repeat := sequence.WithRepeatLag(s.MinRepeatDelay*b+1, -1)
	if s.FixedOrder {
		repeat = sequence.WithRepeatLag(s.FirstRepeatDelay*b-(b-1), s.FirstRepeatDelay*b+(b-1))
	}

	return []sequence.CheckOption{repeat, sequence.WithVigilanceLag(1, 2*b-1)}
}

// fatal reports errors that every seed would hit alike.
func fatal(err error) bool {
	return errors.Is(err, sequence.ErrConfiguration) || errors.Is(err, sequence.ErrInsufficientItems)
}

// Run generates opts.Seeds sequences for p and validates each one.
// Runs execute on at most opts.Workers goroutines; run i uses
// rng.DeriveSeed(opts.BaseSeed, i).
//
// Exhaustion errors and validation findings are recorded as failures.
// Configuration errors abort the whole run and are returned, as is
// ctx.Err() when ctx is cancelled first.
func Run(ctx context.Context, pools sequence.Pools, p sequence.Params, fixation sequence.Item, opts Options) (Report, error) {
	opts = opts.normalized()

	counts, err := p.Counts()
	if err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}
	if err = counts.CheckPools(len(pools.Targets), len(pools.Fillers), pools.Shared()); err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}
	checks := ExpectedLags(p.Schedule)

	var (
		mu       sync.Mutex
		failures []Failure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := 0; i < opts.Seeds; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := rng.DeriveSeed(opts.BaseSeed, uint64(i))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := sequence.Generate(pools, p, fixation, sequence.WithSeed(seed))
			var f Failure
			switch {
			case err != nil && fatal(err):
				return err
			case err != nil:
				f = Failure{Seed: seed, Error: err.Error()}
			default:
				findings := res.Validate(fixation.ID, checks...)
				if len(findings) == 0 {
					return nil
				}
				f = Failure{Seed: seed, Findings: findings}
			}
			mu.Lock()
			failures = append(failures, f)
			mu.Unlock()

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("verify: %w", err)
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Seed < failures[j].Seed })

	return Report{Params: p, Counts: counts, Runs: opts.Seeds, Failures: failures}, nil
}

// Sweep runs Run for every tuple in grid, in order. It stops at the first
// returned error; reports gathered so far are returned with it.
func Sweep(ctx context.Context, pools sequence.Pools, grid []sequence.Params, fixation sequence.Item, opts Options) ([]Report, error) {
	reports := make([]Report, 0, len(grid))
	for _, p := range grid {
		rep, err := Run(ctx, pools, p, fixation, opts)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}

	return reports, nil
}
