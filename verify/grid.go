// SPDX-License-Identifier: MIT
// Package: crt/verify
//
// grid.go - parameter grids for Sweep.

package verify

import "github.com/nwrim/continuous-recognition-task-jsPsych/sequence"

// Axes lists the values to combine for each parameter.
type Axes struct {
	TargetNum         []int `json:"target_num" yaml:"target_num" mapstructure:"target_num"`
	BlockSize         []int `json:"block_size" yaml:"block_size" mapstructure:"block_size"`
	FirstRepeatDelay  []int `json:"first_repeat_delay" yaml:"first_repeat_delay" mapstructure:"first_repeat_delay"`
	MinRepeatDelay    []int `json:"min_repeat_delay" yaml:"min_repeat_delay" mapstructure:"min_repeat_delay"`
	VigilanceInterval []int `json:"vigilance_interval" yaml:"vigilance_interval" mapstructure:"vigilance_interval"`
	FixedOrder        bool  `json:"fixed_order" yaml:"fixed_order" mapstructure:"fixed_order"`
}

// Grid expands a into every admissible tuple, in axis order (the last axis
// varies fastest). Tuples the builder would reject are skipped: random order
// needs MinRepeatDelay < FirstRepeatDelay, fixed order needs
// FirstRepeatDelay > 0 and collapses the MinRepeatDelay axis, which it
// ignores.
func Grid(a Axes) []sequence.Params {
	minDelays := a.MinRepeatDelay
	if a.FixedOrder {
		minDelays = []int{0}
	}

	var out []sequence.Params
	for _, t := range a.TargetNum {
		for _, b := range a.BlockSize {
			for _, frd := range a.FirstRepeatDelay {
				for _, mrd := range minDelays {
					if a.FixedOrder && frd == 0 {
						continue
					}
					if !a.FixedOrder && (mrd < 0 || mrd >= frd) {
						continue
					}
					for _, vi := range a.VigilanceInterval {
						out = append(out, sequence.Params{
							TargetNum: t,
							Schedule: sequence.Schedule{
								BlockSize:         b,
								FirstRepeatDelay:  frd,
								MinRepeatDelay:    mrd,
								VigilanceInterval: vi,
								FixedOrder:        a.FixedOrder,
							},
						})
					}
				}
			}
		}
	}

	return out
}
