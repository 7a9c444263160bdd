// SPDX-License-Identifier: MIT
// Package: crt/timeline
//
// results.go - pairing presented trials with the participant's responses.

package timeline

import "github.com/nwrim/continuous-recognition-task-jsPsych/sequence"

// DefaultValidKeys are the key values the browser task logs for the
// response key: the letter in both cases and its key codes.
var DefaultValidKeys = []string{"R", "r", "82", "114"}

// Response is what the runtime reported for one trial.
type Response struct {
	Key string  `json:"key" yaml:"key"` // empty when nothing was pressed
	RT  float64 `json:"rt" yaml:"rt"`   // milliseconds from trial onset; 0 when no response
}

// Result is one trial with its response attached.
type Result struct {
	Trial    Descriptor `json:"trial"`
	Response Response   `json:"response"`
}

// Responded reports whether the trial's key is one of validKeys. A nil
// validKeys means DefaultValidKeys.
func (r Result) Responded(validKeys []string) bool {
	if validKeys == nil {
		validKeys = DefaultValidKeys
	}
	for _, k := range validKeys {
		if r.Response.Key == k {
			return true
		}
	}

	return false
}

// IsStimulus reports whether the trial showed an image (not a fixation).
func (r Result) IsStimulus() bool {
	return r.Trial.Code != sequence.Fixation.Code()
}

// Extract pairs descs[i] with responses[i].
//
// Errors: ErrLengthMismatch when the lists differ in length.
func Extract(descs []Descriptor, responses []Response) ([]Result, error) {
	if len(descs) != len(responses) {
		return nil, timelineErrorf(MethodExtract, ErrLengthMismatch, "%d trials, %d responses", len(descs), len(responses))
	}

	out := make([]Result, len(descs))
	for i := range descs {
		out[i] = Result{Trial: descs[i], Response: responses[i]}
	}

	return out, nil
}
