// Package rng implements the deterministic generator that places snakes and names rounds.
//
// Clients and tests reproduce a server's rounds from its seed, so the sequence is a fixed
// multiplicative congruential generator rather than math/rand.
package rng

const (
	// Modulus of the generator.
	Modulus uint64 = 4294967291
	// Multiplier of the generator.
	Multiplier uint64 = 279470273
)

// Generator yields a deterministic pseudo-random sequence. It is not safe for concurrent use.
type Generator struct {
	r uint64
}

// New creates a Generator whose first value is seed reduced modulo Modulus.
func New(seed uint32) *Generator {
	return &Generator{r: uint64(seed) % Modulus}
}

// Next returns the current value and advances the generator.
func (g *Generator) Next() uint32 {
	cur := g.r
	g.r = g.r * Multiplier % Modulus
	return uint32(cur)
}
