// SPDX-License-Identifier: MIT
// Package: crt/sequence
//
// interleave.go - fixation insertion.

package sequence

// InterleaveFixation returns a new sequence of twice the length in which
// every entry of seq sits at an even position and is immediately followed by
// a Fixation entry for the fixation item. seq is not modified. No randomness.
//
// Errors: ErrConfiguration for a nil sequence, ErrProjectionMismatch when
// Entries, Img and Type differ in length.
// Complexity: O(n).
func InterleaveFixation(seq *Sequence, fixation Item) (*Sequence, error) {
	if seq == nil {
		return nil, sequenceErrorf(MethodInterleave, ErrConfiguration, "nil sequence")
	}
	if !seq.aligned() {
		return nil, sequenceErrorf(MethodInterleave, ErrProjectionMismatch,
			"entries=%d img=%d type=%d", len(seq.Entries), len(seq.Img), len(seq.Type))
	}

	fix := Entry{Role: Fixation, ItemID: fixation.ID, SourcePath: fixation.Path}
	out := NewSequence(2 * len(seq.Entries))
	for i := range seq.Entries {
		out.Entries = append(out.Entries, seq.Entries[i], fix)
		out.Img = append(out.Img, seq.Img[i], fix.ItemID)
		out.Type = append(out.Type, seq.Type[i], Fixation)
	}

	return out, nil
}
