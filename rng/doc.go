// Package rng holds the randomization primitives of the sequencer: seeded
// generators, independent derived streams, in-place shuffles (single and
// index-synchronized across several slices) and uniform picks.
//
// Every helper takes its *rand.Rand as an argument. Reproducible builds pass
// FromSeed(seed); production callers pass New() per build.
//
//	r := rng.FromSeed(42)
//	items := []string{"a.jpg", "b.jpg", "c.jpg"}
//	roles := []int{1, 3, 3}
//	_ = rng.ShuffleTogether(r, items, roles) // items[i] still pairs with roles[i]
package rng
