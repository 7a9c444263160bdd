// Package sequence generates and audits the trial order of a continuous
// recognition memorability experiment.
//
// What it builds:
//
//	Targets are shown exactly twice (first presentation, then one repeat after
//	a controlled delay). Fillers are mostly shown once; every few blocks one
//	filler from the previous block comes back as a vigilance check. No image
//	is shown more than twice, and a fixation trial follows every image trial.
//
// Pipeline:
//
//	CalculateTrialCounts → Counts.CheckPools → Sample → Build → InterleaveFixation
//	                                                         ↘ Validate (offline)
//
// Generate chains the whole path for one participant. Validate is an
// independent post-hoc audit used to certify the builder across many seeds
// (see package verify).
//
// Usage:
//
//	pools := sequence.Pools{Targets: targets, Fillers: fillers}
//	res, err := sequence.Generate(pools, sequence.DefaultParams(),
//		sequence.Item{ID: "fixation.jpg", Path: "img/fixation.jpg"},
//		sequence.WithSeed(7))
//	if err != nil {
//		// errors.Is(err, sequence.ErrConfiguration), sequence.IsExhaustion(err)
//	}
//	findings := res.Validate("fixation.jpg") // empty ⇒ valid
//
// Role codes on the wire: 0 FIXATION, 1 TARGET, 2 REPEAT, 3 FILLER,
// 4 VIGILANCE. They are a stable contract with downstream analysis.
//
// Concurrency: every call owns its cursors and pools. Independent builds may
// run in parallel as long as they do not share a *rand.Rand.
package sequence
