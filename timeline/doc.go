// Package timeline is the boundary between a built sequence and the
// presentation runtime.
//
// Outbound, Descriptors turns an interleaved sequence into one presentation
// descriptor per trial (stimulus path, numeric role code, onset, duration)
// and Encode flattens it into the comma-joined imseq/imtypeseq strings the
// browser task logs back. Inbound, Decode rebuilds a sequence from those
// strings, ParseResponses reads the logged key presses and reaction times,
// and Extract pairs every trial with what the participant did.
//
//	descs := timeline.Descriptors(res.Sequence, timeline.DefaultTiming())
//	sess := timeline.Encode(res.Sequence)
//	...
//	seq, err := timeline.Decode(sess)
//	resp, err := sess.Responses()
//	results, err := timeline.Extract(descs, resp)
//
// Role codes on the wire are the stable 0..4 contract of package sequence.
package timeline
