// Package shuffle randomizes the presentation order of a scene's options.
//
// Shuffling changes position only. Every input option appears exactly once
// in the output, and the set of correct options is unchanged. With a seed
// the permutation is reproducible on every platform, which lets a content
// run be regenerated byte for byte.
//
// The seeded source is the classic linear congruential generator
//
//	seed' = (seed*9301 + 49297) mod 233280
//	value = seed' / 233280
//
// Seeds are explicit parameters; the package holds no global state.
package shuffle
