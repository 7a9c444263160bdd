// SPDX-License-Identifier: MIT
// Package: crt/timeline
//
// errors.go - sentinel errors for the presentation boundary.

package timeline

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indicates parallel trial lists of different lengths.
var ErrLengthMismatch = errors.New("timeline: sequence lengths do not match")

// ErrMalformedSession indicates a wire field that cannot be parsed.
var ErrMalformedSession = errors.New("timeline: malformed session field")

// Method names used as error context.
const (
	MethodExtract        = "Extract"
	MethodDecode         = "Decode"
	MethodParseResponses = "ParseResponses"
)

func timelineErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
