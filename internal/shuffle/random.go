package shuffle

import "math/rand"

// LCG constants.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// LCG is a deterministic linear congruential generator.
// Not safe for concurrent use; each shuffle stream owns its own instance.
type LCG struct {
	state int64
}

// NewLCG creates a generator starting from seed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: seed}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (g *LCG) Float64() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	if g.state < 0 {
		g.state += lcgModulus
	}
	return float64(g.state) / lcgModulus
}

// unseeded draws from the runtime's random source.
type unseeded struct{}

func (unseeded) Float64() float64 {
	return rand.Float64()
}

// newSource returns the stream for a given seed offset.
// Offsets keep the correct, incorrect and interleave streams independent.
func newSource(opts Options, offset int64) Source {
	if !opts.UseSeed {
		return unseeded{}
	}
	return NewLCG(opts.Seed + offset)
}

// intn maps a uniform value onto [0, n).
func intn(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// fisherYates shuffles items in place.
func fisherYates[T any](items []T, src Source) {
	for i := len(items) - 1; i > 0; i-- {
		j := intn(src, i+1)
		items[i], items[j] = items[j], items[i]
	}
}
