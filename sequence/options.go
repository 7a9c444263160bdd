// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// options.go - functional options for sampling, building and validation.
//
// Contract:
//   - Option constructors validate and PANIC on meaningless inputs
//     (nil generator, inverted lag bounds). Algorithms never panic.
//   - Determinism is explicit: WithSeed or WithRand. Without either, each
//     call gets its own time-seeded generator, so concurrent builds never
//     share random state.

package sequence

import (
	"math/rand"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
)

// config is resolved once per call and passed by value.
type config struct {
	rnd *rand.Rand // nil until resolved; never nil after newConfig
}

// Option customizes Sample, Build and Generate.
type Option func(*config)

// WithSeed makes the call reproducible: same inputs and seed ⇒ same sequence.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rnd = rng.FromSeed(seed)
	}
}

// WithRand injects a caller-owned generator. The generator is consumed by the
// call, so do not share it with a concurrently running build.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("sequence: WithRand(nil)")
	}

	return func(c *config) {
		c.rnd = r
	}
}

// newConfig applies opts in order (last wins) and resolves the generator.
func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rnd == nil {
		cfg.rnd = rng.New()
	}

	return cfg
}

// lagBounds is an inclusive [min,max] range; max < 0 means unbounded.
type lagBounds struct {
	min, max int
	set      bool
}

func (b lagBounds) contains(lag int) bool {
	if lag < b.min {
		return false
	}

	return b.max < 0 || lag <= b.max
}

// checkConfig holds the optional validator checks.
type checkConfig struct {
	vigilanceCount int // < 0 ⇒ not checked
	repeatLag      lagBounds
	vigilanceLag   lagBounds
}

// CheckOption enables an optional Validate check.
type CheckOption func(*checkConfig)

// WithVigilanceCount asserts the exact number of Vigilance trials.
// Panics if n < 0.
func WithVigilanceCount(n int) CheckOption {
	if n < 0 {
		panic("sequence: WithVigilanceCount(n<0)")
	}

	return func(c *checkConfig) {
		c.vigilanceCount = n
	}
}

// WithRepeatLag bounds the lag, in stimulus trials, between a target and
// its repeat. Both ends are inclusive: a lag of exactly min or max passes.
// A strict lower bound m (lag > m) is WithRepeatLag(m+1, max).
// max < 0 leaves the upper end open. Panics if min < 0 or 0 ≤ max < min.
func WithRepeatLag(min, max int) CheckOption {
	validateLag("WithRepeatLag", min, max)

	return func(c *checkConfig) {
		c.repeatLag = lagBounds{min: min, max: max, set: true}
	}
}

// WithVigilanceLag bounds the lag between a filler and its vigilance repeat.
// Same conventions as WithRepeatLag, inclusive at both ends.
func WithVigilanceLag(min, max int) CheckOption {
	validateLag("WithVigilanceLag", min, max)

	return func(c *checkConfig) {
		c.vigilanceLag = lagBounds{min: min, max: max, set: true}
	}
}

func validateLag(name string, min, max int) {
	if min < 0 || (max >= 0 && max < min) {
		panic("sequence: " + name + "(invalid bounds)")
	}
}

func newCheckConfig(opts ...CheckOption) checkConfig {
	cfg := checkConfig{vigilanceCount: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
