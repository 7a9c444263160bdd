// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// errors.go - sentinel errors for the sequence package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with sequenceErrorf, which keeps the
//     sentinel reachable through %w.
//   - Two fatal classes exist. Configuration errors (ErrConfiguration,
//     ErrInsufficientItems, ErrProjectionMismatch) are detected before or at
//     build start. Exhaustion errors (ErrFillerExhausted, ErrRepeatExhausted)
//     surface mid-build when the count arithmetic and the pools disagree.
//     Neither is retried and no partial sequence is ever returned.
//   - Validator findings are not errors; see Validate.

package sequence

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates malformed or inconsistent parameters.
var ErrConfiguration = errors.New("sequence: invalid configuration")

// ErrInsufficientItems indicates a requested draw larger than its pool.
var ErrInsufficientItems = errors.New("sequence: insufficient items in pool")

// ErrFillerExhausted indicates the builder needed another new filler after
// the sampled filler list was used up. The trial counts undersupplied fillers.
var ErrFillerExhausted = errors.New("sequence: filler list exhausted")

// ErrRepeatExhausted indicates a repeat slot found no eligible target.
var ErrRepeatExhausted = errors.New("sequence: no target eligible for repeat")

// ErrProjectionMismatch indicates a sequence whose Entries/Img/Type
// projections differ in length.
var ErrProjectionMismatch = errors.New("sequence: projections differ in length")

// ErrUnknownRole indicates a numeric role code outside 0..4.
var ErrUnknownRole = errors.New("sequence: unknown role code")

// IsExhaustion reports whether err belongs to the exhaustion class.
func IsExhaustion(err error) bool {
	return errors.Is(err, ErrFillerExhausted) || errors.Is(err, ErrRepeatExhausted)
}

// sequenceErrorf returns "<method>: <message>: <sentinel>" with the sentinel
// wrapped for errors.Is.
func sequenceErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
