// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// validate.go - post-hoc audit of a fixation-interleaved sequence.
//
// Design principles:
//   - Independent of the builder: every check is derived from the Img/Type
//     projections alone, the same data a logged session carries.
//   - Findings accumulate; one call reports every violation.
//   - Pure: the input is never mutated and no state is kept between calls,
//     so concurrent and repeated calls are safe and give identical output.
//   - Deterministic message order (sets are reported in sorted order).

package sequence

import (
	"fmt"
	"sort"
)

// Validate audits seq and returns human-readable violation messages; an empty
// result means the sequence is valid.
//
// Always checked:
//   - Img and Type (and Entries, when present) have one length and agree.
//   - NewTarget count == expectedTargets, NewFiller count == expectedFillers,
//     NewTarget count == TargetRepeat count.
//   - No item appears twice within one role.
//   - Repeated items == newly targeted items; targets ∩ fillers == ∅;
//     vigilance items ⊆ fillers.
//   - Every TargetRepeat/Vigilance has an earlier occurrence whose role is
//     NewTarget/NewFiller respectively.
//   - No item other than fixationID occurs more than twice.
//   - Even positions are non-Fixation; odd positions are Fixation showing
//     fixationID; the length is even.
//   - With WithVigilanceCount, the length equals
//     2·(2·expectedTargets + expectedFillers + vigilance).
//
// Optional checks are enabled with CheckOption values.
// Complexity: O(n log n) for n entries (sorting of reported sets).
func Validate(seq *Sequence, fixationID string, expectedTargets, expectedFillers int, opts ...CheckOption) []string {
	cfg := newCheckConfig(opts...)
	var v validation
	if seq == nil {
		v.addf("sequence is nil")

		return v.findings
	}

	img, types := seq.Img, seq.Type
	if len(img) != len(types) {
		v.addf("img and type projections differ in length: %d vs %d", len(img), len(types))
	}
	n := len(img)
	if len(types) < n {
		n = len(types)
	}
	v.checkEntries(seq, n)

	var (
		byRole     [roleCount][]string
		firstIndex = make(map[string]int, n)
		occurrence = make(map[string]int, n)
	)

	for i := 0; i < n; i++ {
		id, role := img[i], types[i]
		if !role.Valid() {
			v.addf("index %d: unknown role %d", i, int(role))
			continue
		}
		byRole[role] = append(byRole[role], id)
		if id != fixationID {
			occurrence[id]++
		}

		if role.IsRepeat() {
			v.checkEarlier(i, id, role, types, firstIndex, cfg)
		}
		if _, seen := firstIndex[id]; !seen {
			firstIndex[id] = i
		}

		// structural alternation
		if i%2 == 0 && role == Fixation {
			v.addf("index %d: even position holds a fixation trial", i)
		}
		if i%2 == 1 {
			if role != Fixation {
				v.addf("index %d: odd position holds %s, want FIXATION", i, role)
			}
			if id != fixationID {
				v.addf("index %d: odd position shows %q, want fixation %q", i, id, fixationID)
			}
		}
	}

	targets, repeats := byRole[NewTarget], byRole[TargetRepeat]
	fillers, vigilance := byRole[NewFiller], byRole[Vigilance]

	if len(targets) != expectedTargets {
		v.addf("found %d TARGET trials, want %d", len(targets), expectedTargets)
	}
	if len(fillers) != expectedFillers {
		v.addf("found %d FILLER trials, want %d", len(fillers), expectedFillers)
	}
	if len(targets) != len(repeats) {
		v.addf("found %d TARGET trials but %d REPEAT trials", len(targets), len(repeats))
	}
	if cfg.vigilanceCount >= 0 && len(vigilance) != cfg.vigilanceCount {
		v.addf("found %d VIGILANCE trials, want %d", len(vigilance), cfg.vigilanceCount)
	}
	if n%2 != 0 {
		v.addf("sequence ends without its fixation trial (length %d)", n)
	}
	if cfg.vigilanceCount >= 0 {
		if want := 2 * (2*expectedTargets + expectedFillers + cfg.vigilanceCount); n != want {
			v.addf("sequence has %d trials, want %d", n, want)
		}
	}

	v.checkUnique(NewTarget, targets)
	v.checkUnique(TargetRepeat, repeats)
	v.checkUnique(NewFiller, fillers)
	v.checkUnique(Vigilance, vigilance)

	targetSet, repeatSet, fillerSet := toSet(targets), toSet(repeats), toSet(fillers)
	for _, id := range sortedDiff(targetSet, repeatSet) {
		v.addf("target %q is never repeated", id)
	}
	for _, id := range sortedDiff(repeatSet, targetSet) {
		v.addf("repeated item %q is not a target", id)
	}
	for _, id := range sortedIntersect(targetSet, fillerSet) {
		v.addf("item %q is both a target and a filler", id)
	}
	for _, id := range sortedDiff(toSet(vigilance), fillerSet) {
		v.addf("vigilance item %q is not a filler", id)
	}

	over := make([]string, 0)
	for id, c := range occurrence {
		if c > 2 {
			over = append(over, id)
		}
	}
	sort.Strings(over)
	for _, id := range over {
		v.addf("item %q occurs %d times, at most 2 allowed", id, occurrence[id])
	}

	return v.findings
}

// validation accumulates findings for one Validate call.
type validation struct {
	findings []string
}

func (v *validation) addf(format string, args ...interface{}) {
	v.findings = append(v.findings, fmt.Sprintf(format, args...))
}

// checkEntries compares the entry list with the projections when present.
func (v *validation) checkEntries(seq *Sequence, n int) {
	if seq.Entries == nil {
		return
	}
	if len(seq.Entries) != len(seq.Img) || len(seq.Entries) != len(seq.Type) {
		v.addf("entries length %d differs from projections (img=%d, type=%d)", len(seq.Entries), len(seq.Img), len(seq.Type))
	}
	mismatched, first := 0, -1
	for i := 0; i < n && i < len(seq.Entries); i++ {
		e := seq.Entries[i]
		if e.ItemID != seq.Img[i] || e.Role != seq.Type[i] {
			if first < 0 {
				first = i
			}
			mismatched++
		}
	}
	if mismatched > 0 {
		v.addf("%d entries disagree with their projections, first at index %d", mismatched, first)
	}
}

// checkEarlier verifies that the repeat at i recycles an item first shown
// with the matching "new" role, and applies the optional lag bounds.
func (v *validation) checkEarlier(i int, id string, role Role, types []Role, firstIndex map[string]int, cfg checkConfig) {
	want, bounds := NewTarget, cfg.repeatLag
	if role == Vigilance {
		want, bounds = NewFiller, cfg.vigilanceLag
	}

	j, ok := firstIndex[id]
	if !ok {
		v.addf("index %d: %s of %q has no earlier occurrence", i, role, id)
		return
	}
	if types[j] != want {
		v.addf("index %d: %s of %q follows a %s at index %d, want %s", i, role, id, types[j], j, want)
	}
	if bounds.set {
		lag := (i - j) / 2
		if !bounds.contains(lag) {
			v.addf("index %d: %s of %q has lag %d, outside [%d,%s]", i, role, id, lag, bounds.min, maxString(bounds.max))
		}
	}
}

// checkUnique reports items listed more than once under one role.
func (v *validation) checkUnique(role Role, ids []string) {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	dups := make([]string, 0)
	for id, c := range seen {
		if c > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		v.addf("item %q appears %d times as %s", id, seen[id], role)
	}
}

func maxString(max int) string {
	if max < 0 {
		return "∞"
	}

	return fmt.Sprint(max)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

// sortedDiff returns the sorted members of a that are not in b.
func sortedDiff(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// sortedIntersect returns the sorted members present in both a and b.
func sortedIntersect(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for id := range a {
		if _, ok := b[id]; ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}
