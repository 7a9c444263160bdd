// SPDX-License-Identifier: MIT
// Package: crt/rng
//
// rng.go - randomization primitives shared by the sampler, the sequence
// builder and the verification harness.
//
// Goals:
//   - Determinism: same seed ⇒ identical shuffles and draws across platforms.
//   - Injection: every helper receives its *rand.Rand explicitly; no hidden
//     process-global source is consulted by library code.
//   - Safety: no panics on caller input; length mismatches surface as
//     ErrLengthMismatch.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines. Use Derive to create independent streams per worker.
package rng

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"
)

// ErrLengthMismatch is returned by ShuffleTogether when the supplied slices
// do not share one length (their elements could not stay index-aligned).
var ErrLengthMismatch = errors.New("rng: slices differ in length")

// ErrNotSlice is returned by ShuffleTogether when an argument is not a slice.
var ErrNotSlice = errors.New("rng: argument is not a slice")

// defaultSeed is the fixed “zero” seed used by FromSeed when seed==0.
const defaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// New returns a generator seeded from the wall clock. Each call yields an
// independent stream, which is what production builds want: one participant,
// one fresh order.
func New() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed using the SplitMix64 finalizer, so neighbouring stream ids produce
// unrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent deterministic stream from parent and stream.
// Call it during setup, once per worker or per run.
func Derive(parent int64, stream uint64) *rand.Rand {
	return FromSeed(DeriveSeed(parent, stream))
}

// Shuffle performs an in-place Fisher–Yates shuffle of s using r.
// A nil r falls back to the defaultSeed stream.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle[T any](r *rand.Rand, s []T) {
	n := len(s)
	if n <= 1 {
		return
	}
	if r == nil {
		r = FromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// ShuffleTogether applies one uniformly random permutation to every slice in
// slices, so elements sharing an index before the call still share an index
// after it. All arguments must be slices of equal length; otherwise the call
// fails before touching any of them.
//
// Complexity: O(k·n) time for k slices of length n, O(k) extra space.
func ShuffleTogether(r *rand.Rand, slices ...any) error {
	if len(slices) == 0 {
		return nil
	}

	swaps := make([]func(i, j int), len(slices))
	n := -1
	for k, s := range slices {
		v := reflect.ValueOf(s)
		if v.Kind() != reflect.Slice {
			return fmt.Errorf("ShuffleTogether: argument %d (%T): %w", k, s, ErrNotSlice)
		}
		if n >= 0 && v.Len() != n {
			return fmt.Errorf("ShuffleTogether: argument %d has length %d, want %d: %w", k, v.Len(), n, ErrLengthMismatch)
		}
		n = v.Len()
		swaps[k] = reflect.Swapper(s)
	}
	if n <= 1 {
		return nil
	}
	if r == nil {
		r = FromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		for _, swap := range swaps {
			swap(i, j)
		}
	}

	return nil
}

// Pick returns a uniformly random element of s and its index.
// ok is false when s is empty.
func Pick[T any](r *rand.Rand, s []T) (v T, idx int, ok bool) {
	if len(s) == 0 {
		return v, -1, false
	}
	if r == nil {
		r = FromSeed(0)
	}
	idx = r.Intn(len(s))

	return s[idx], idx, true
}

// Take removes and returns a uniformly random element of s. The relative
// order of the remaining elements is not preserved.
func Take[T any](r *rand.Rand, s []T) (v T, rest []T, ok bool) {
	v, idx, ok := Pick(r, s)
	if !ok {
		return v, s, false
	}
	last := len(s) - 1
	s[idx] = s[last]
	var zero T
	s[last] = zero

	return v, s[:last], true
}
