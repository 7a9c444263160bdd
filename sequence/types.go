// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// types.go - data model shared by the calculator, sampler, builder,
// interleaver and validator.
//
// Design contract (strict):
//   - Role is a closed enum. Numeric codes exist only at the boundary
//     (Code / RoleFromCode) and form a stable external contract:
//     0=Fixation, 1=NewTarget, 2=TargetRepeat, 3=NewFiller, 4=Vigilance.
//   - Sequence keeps Entries, Img and Type index-aligned at all times;
//     Append is the only mutator used by this package.
//   - Entries are values; once appended they are never rewritten.

package sequence

import "fmt"

// Role tags a trial with its function in the continuous recognition task.
type Role int

const (
	// Fixation is the neutral inter-stimulus display.
	Fixation Role = iota
	// NewTarget is the first presentation of a target image.
	NewTarget
	// TargetRepeat is the second (and last) presentation of a target image.
	TargetRepeat
	// NewFiller is the first presentation of a filler image.
	NewFiller
	// Vigilance repeats a filler from the immediately preceding block.
	Vigilance

	roleCount
)

// roleNames are the trial_type labels used by downstream tabular records.
var roleNames = [roleCount]string{
	Fixation:     "FIXATION",
	NewTarget:    "TARGET",
	TargetRepeat: "REPEAT",
	NewFiller:    "FILLER",
	Vigilance:    "VIGILANCE",
}

// roleCodes pins the external numeric encoding. Never renumber.
var roleCodes = [roleCount]int{
	Fixation:     0,
	NewTarget:    1,
	TargetRepeat: 2,
	NewFiller:    3,
	Vigilance:    4,
}

// String returns the upper-case trial type label (e.g. "TARGET").
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}

	return roleNames[r]
}

// Valid reports whether r is one of the five declared roles.
func (r Role) Valid() bool {
	return r >= Fixation && r < roleCount
}

// Code returns the stable numeric code of r for the wire format.
func (r Role) Code() int {
	if !r.Valid() {
		return -1
	}

	return roleCodes[r]
}

// IsRepeat reports whether r is a second presentation (TargetRepeat or Vigilance).
func (r Role) IsRepeat() bool {
	return r == TargetRepeat || r == Vigilance
}

// RoleFromCode maps a wire code back to its Role.
// Unknown codes return ErrUnknownRole.
func RoleFromCode(code int) (Role, error) {
	for r := Fixation; r < roleCount; r++ {
		if roleCodes[r] == code {
			return r, nil
		}
	}

	return Fixation, fmt.Errorf("RoleFromCode: code %d: %w", code, ErrUnknownRole)
}

// Item is one image available for sampling.
type Item struct {
	ID   string `json:"id" yaml:"id"`     // filename, unique within a pool
	Path string `json:"path" yaml:"path"` // location handed to the presentation runtime
}

// Entry is one trial of a sequence (a StimulusEntry).
type Entry struct {
	Role       Role   `json:"role" yaml:"role"`
	ItemID     string `json:"item_id" yaml:"item_id"`
	SourcePath string `json:"source_path" yaml:"source_path"`
}

// Sequence is an ordered trial list plus its index-aligned projections.
// Img[i] == Entries[i].ItemID and Type[i] == Entries[i].Role for every i.
type Sequence struct {
	Entries []Entry  `json:"entries" yaml:"entries"`
	Img     []string `json:"img" yaml:"img"`
	Type    []Role   `json:"type" yaml:"type"`
}

// NewSequence returns an empty sequence with room for capacity entries.
func NewSequence(capacity int) *Sequence {
	if capacity < 0 {
		capacity = 0
	}

	return &Sequence{
		Entries: make([]Entry, 0, capacity),
		Img:     make([]string, 0, capacity),
		Type:    make([]Role, 0, capacity),
	}
}

// Append adds e and extends both projections.
func (s *Sequence) Append(e Entry) {
	s.Entries = append(s.Entries, e)
	s.Img = append(s.Img, e.ItemID)
	s.Type = append(s.Type, e.Role)
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Entries)
}

// Codes returns the numeric role projection used on the wire.
func (s *Sequence) Codes() []int {
	codes := make([]int, len(s.Type))
	for i, r := range s.Type {
		codes[i] = r.Code()
	}

	return codes
}

// Count returns how many entries carry role r.
func (s *Sequence) Count(r Role) int {
	n := 0
	for _, t := range s.Type {
		if t == r {
			n++
		}
	}

	return n
}

// aligned reports whether Entries, Img and Type share one length.
func (s *Sequence) aligned() bool {
	return len(s.Entries) == len(s.Img) && len(s.Img) == len(s.Type)
}

// Counts holds the exact number of trials per role for one parameter tuple.
type Counts struct {
	Blocks    int `json:"blocks" yaml:"blocks"`
	Total     int `json:"total" yaml:"total"`
	Target    int `json:"target" yaml:"target"`
	Repeat    int `json:"repeat" yaml:"repeat"`
	Filler    int `json:"filler" yaml:"filler"`
	Vigilance int `json:"vigilance" yaml:"vigilance"`
}

// Items returns the number of distinct images a sequence with these counts
// draws from the pools (targets plus fillers).
func (c Counts) Items() int {
	return c.Target + c.Filler
}

// Schedule carries the block-timing knobs consumed by Build.
//
// Fields:
//   - BlockSize         - entries per block (≥ MinBlockSize).
//   - FirstRepeatDelay  - blocks between a target's first presentation and
//     the first block allowed to host a repeat.
//   - MinRepeatDelay    - random order only: blocks a target waits in the
//     shown queue before it may be promoted; 0 ≤ MinRepeatDelay < FirstRepeatDelay.
//   - VigilanceInterval - a vigilance trial may occur in every block whose
//     index is a multiple of this value.
//   - FixedOrder        - repeat targets in first-presentation order
//     (constant lag) instead of drawing among eligible targets.
type Schedule struct {
	BlockSize         int  `json:"block_size" yaml:"block_size" mapstructure:"block_size"`
	FirstRepeatDelay  int  `json:"first_repeat_delay" yaml:"first_repeat_delay" mapstructure:"first_repeat_delay"`
	MinRepeatDelay    int  `json:"min_repeat_delay" yaml:"min_repeat_delay" mapstructure:"min_repeat_delay"`
	VigilanceInterval int  `json:"vigilance_interval" yaml:"vigilance_interval" mapstructure:"vigilance_interval"`
	FixedOrder        bool `json:"fixed_order" yaml:"fixed_order" mapstructure:"fixed_order"`
}

// Params is the full top-level parameter tuple of one experiment.
type Params struct {
	TargetNum int `json:"target_num" yaml:"target_num" mapstructure:"target_num"`
	Schedule  `yaml:",inline" mapstructure:",squash"`
}

// DefaultParams returns the configuration of the reference experiment:
// 60 targets, blocks of 4, first repeat after 8 blocks, minimum wait of
// 4 blocks, vigilance every 4th block, random repeat order.
func DefaultParams() Params {
	return Params{
		TargetNum: DefaultTargetNum,
		Schedule: Schedule{
			BlockSize:         DefaultBlockSize,
			FirstRepeatDelay:  DefaultFirstRepeatDelay,
			MinRepeatDelay:    DefaultMinRepeatDelay,
			VigilanceInterval: DefaultVigilanceInterval,
			FixedOrder:        false,
		},
	}
}

// Counts evaluates CalculateTrialCounts for p.
func (p Params) Counts() (Counts, error) {
	return CalculateTrialCounts(p.TargetNum, p.BlockSize, p.FirstRepeatDelay, p.VigilanceInterval)
}

// Pools are the candidate images for sampling. An empty Fillers pool means
// fillers are the leftover of the Targets pool.
type Pools struct {
	Targets []Item `json:"targets" yaml:"targets"`
	Fillers []Item `json:"fillers" yaml:"fillers"`
}

// Shared reports whether targets and fillers are drawn from one pool: either
// no filler pool was given, or both slices are the same slice.
func (p Pools) Shared() bool {
	if len(p.Fillers) == 0 {
		return true
	}

	return len(p.Targets) == len(p.Fillers) && &p.Targets[0] == &p.Fillers[0]
}

// Result bundles everything Generate produced for one participant.
type Result struct {
	Counts   Counts    `json:"counts" yaml:"counts"`
	Targets  []Item    `json:"targets" yaml:"targets"`
	Fillers  []Item    `json:"fillers" yaml:"fillers"`
	Sequence *Sequence `json:"sequence" yaml:"sequence"`
}
