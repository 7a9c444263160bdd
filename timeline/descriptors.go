// SPDX-License-Identifier: MIT
// Package: crt/timeline
//
// descriptors.go - presentation descriptors with onset/duration schedule.

package timeline

import (
	"encoding/json"
	"time"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

// Default presentation timing of the browser task.
const (
	DefaultStimulusDuration = 1000 * time.Millisecond
	DefaultISI              = 1000 * time.Millisecond
)

// Timing holds how long each trial kind stays on screen.
// Stimulus applies to every image trial, ISI to every fixation trial.
type Timing struct {
	Stimulus time.Duration
	ISI      time.Duration
}

// DefaultTiming returns DefaultStimulusDuration / DefaultISI.
func DefaultTiming() Timing {
	return Timing{Stimulus: DefaultStimulusDuration, ISI: DefaultISI}
}

// durationOf returns the on-screen time of a trial with role r.
func (t Timing) durationOf(r sequence.Role) time.Duration {
	if r == sequence.Fixation {
		return t.ISI
	}

	return t.Stimulus
}

// Descriptor is one presentation-ready trial.
type Descriptor struct {
	Index     int           // position in the interleaved sequence
	Stimulus  string        // path the runtime loads
	ItemID    string        // image filename
	Code      int           // numeric role code (0..4)
	TrialType string        // role name (FIXATION, TARGET, ...)
	Onset     time.Duration // offset from the first trial
	Duration  time.Duration
}

// descriptorJSON is the wire shape of Descriptor; times are milliseconds.
type descriptorJSON struct {
	Index      int    `json:"index"`
	Stimulus   string `json:"stimulus"`
	ItemID     string `json:"item_id"`
	Code       int    `json:"code"`
	TrialType  string `json:"trial_type"`
	OnsetMS    int64  `json:"onset_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// MarshalJSON encodes onset and duration in whole milliseconds.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		Index:      d.Index,
		Stimulus:   d.Stimulus,
		ItemID:     d.ItemID,
		Code:       d.Code,
		TrialType:  d.TrialType,
		OnsetMS:    d.Onset.Milliseconds(),
		DurationMS: d.Duration.Milliseconds(),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var w descriptorJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*d = Descriptor{
		Index:     w.Index,
		Stimulus:  w.Stimulus,
		ItemID:    w.ItemID,
		Code:      w.Code,
		TrialType: w.TrialType,
		Onset:     time.Duration(w.OnsetMS) * time.Millisecond,
		Duration:  time.Duration(w.DurationMS) * time.Millisecond,
	}

	return nil
}

// Descriptors returns one descriptor per entry of seq. Onsets accumulate from
// zero: each trial starts when the previous one ends. Entries without a
// source path fall back to their item id as stimulus.
//
// A nil or empty sequence yields nil.
// Complexity: O(n).
func Descriptors(seq *sequence.Sequence, t Timing) []Descriptor {
	if seq.Len() == 0 {
		return nil
	}

	out := make([]Descriptor, len(seq.Entries))
	var onset time.Duration
	for i, e := range seq.Entries {
		stim := e.SourcePath
		if stim == "" {
			stim = e.ItemID
		}
		d := t.durationOf(e.Role)
		out[i] = Descriptor{
			Index:     i,
			Stimulus:  stim,
			ItemID:    e.ItemID,
			Code:      e.Role.Code(),
			TrialType: e.Role.String(),
			Onset:     onset,
			Duration:  d,
		}
		onset += d
	}

	return out
}
