// SPDX-License-Identifier: MIT
// Package: crt/timeline
//
// session.go - comma-joined wire projections logged by the browser task.

package timeline

import (
	"strconv"
	"strings"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
)

const wireSep = ","

// Session is one participant's logged record as the runtime submits it.
// ImSeq and ImTypeSeq are produced by Encode; KeyPresses and RTs are filled
// in by the runtime, one field per trial (empty when nothing was pressed).
type Session struct {
	ImSeq      string `json:"imseq" yaml:"imseq"`
	ImTypeSeq  string `json:"imtypeseq" yaml:"imtypeseq"`
	KeyPresses string `json:"keyPressSequence,omitempty" yaml:"keyPressSequence,omitempty"`
	RTs        string `json:"RTSequence,omitempty" yaml:"RTSequence,omitempty"`
}

// Encode flattens seq into its imseq/imtypeseq wire strings.
func Encode(seq *sequence.Sequence) Session {
	if seq == nil {
		return Session{}
	}
	codes := make([]string, len(seq.Type))
	for i, r := range seq.Type {
		codes[i] = strconv.Itoa(r.Code())
	}

	return Session{
		ImSeq:     strings.Join(seq.Img, wireSep),
		ImTypeSeq: strings.Join(codes, wireSep),
	}
}

// splitField splits a comma-joined field; an empty field has no elements.
func splitField(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, wireSep)
}

// Decode rebuilds a sequence from the wire projections. Source paths are not
// part of the wire format and stay empty.
//
// Errors: ErrLengthMismatch when imseq and imtypeseq differ in length;
// ErrMalformedSession for a non-numeric code; sequence.ErrUnknownRole for a
// code outside 0..4.
func Decode(s Session) (*sequence.Sequence, error) {
	img, types := splitField(s.ImSeq), splitField(s.ImTypeSeq)
	if len(img) != len(types) {
		return nil, timelineErrorf(MethodDecode, ErrLengthMismatch, "imseq has %d fields, imtypeseq %d", len(img), len(types))
	}

	seq := sequence.NewSequence(len(img))
	for i, raw := range types {
		code, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, timelineErrorf(MethodDecode, ErrMalformedSession, "imtypeseq[%d] = %q", i, raw)
		}
		role, err := sequence.RoleFromCode(code)
		if err != nil {
			return nil, timelineErrorf(MethodDecode, err, "imtypeseq[%d]", i)
		}
		seq.Append(sequence.Entry{Role: role, ItemID: img[i]})
	}

	return seq, nil
}

// Responses parses the logged key presses and reaction times.
func (s Session) Responses() ([]Response, error) {
	return ParseResponses(s.KeyPresses, s.RTs)
}

// ParseResponses pairs the comma-joined key and reaction-time fields. An empty
// RT field means no response; RTs are milliseconds and may be fractional.
//
// Errors: ErrLengthMismatch, ErrMalformedSession.
func ParseResponses(keys, rts string) ([]Response, error) {
	k, r := splitField(keys), splitField(rts)
	if len(k) != len(r) {
		return nil, timelineErrorf(MethodParseResponses, ErrLengthMismatch, "%d keys, %d reaction times", len(k), len(r))
	}

	out := make([]Response, len(k))
	for i := range k {
		out[i].Key = k[i]
		raw := strings.TrimSpace(r[i])
		if raw == "" {
			continue
		}
		ms, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, timelineErrorf(MethodParseResponses, ErrMalformedSession, "RTSequence[%d] = %q", i, r[i])
		}
		out[i].RT = ms
	}

	return out, nil
}
