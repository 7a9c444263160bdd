// Package verify certifies the sequence builder empirically: it generates
// many independently seeded sequences for a parameter tuple (or a grid of
// tuples) in parallel and audits each with sequence.Validate, including the
// lag bounds the schedule implies.
//
//	rep, err := verify.Run(ctx, pools, sequence.DefaultParams(), fixation,
//		verify.Options{Seeds: 1000, BaseSeed: 7})
//	if err == nil && !rep.OK() {
//		// rep.Failures lists every seed that produced an invalid sequence
//	}
//
// Seeds are derived from BaseSeed with rng.DeriveSeed, so any failure can be
// replayed alone with sequence.WithSeed(failure.Seed).
package verify
