// Package jrand implements the 48-bit linear congruential generator used by the
// Java edition of the game. World seeds, weather draws and random block ticks
// must consume from this exact sequence to stay deterministic across runs.
package jrand

const (
	multiplier = 0x5DEECE66D
	increment  = 0xB
	mask       = (1 << 48) - 1
)

// Source is a seeded LCG. The zero value is a valid generator seeded with 0;
// use New to scramble a seed the way Java does.
type Source struct {
	state int64
}

// New returns a Source seeded with the given seed, scrambled with the LCG
// multiplier as Java's Random(long) constructor does.
func New(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state from the given seed.
func (s *Source) Seed(seed int64) {
	s.state = (seed ^ multiplier) & mask
}

// State returns the raw 48-bit generator state, used when persisting the
// generator alongside the world.
func (s *Source) State() int64 {
	return s.state
}

// SetState restores a raw state previously obtained from State.
func (s *Source) SetState(state int64) {
	s.state = state & mask
}

// next advances the generator and returns the requested number of high bits.
func (s *Source) next(bits uint) int32 {
	s.state = (s.state*multiplier + increment) & mask
	return int32(s.state >> (48 - bits))
}

// Int32 returns the next full-width 32-bit value.
func (s *Source) Int32() int32 {
	return s.next(32)
}

// Int64 returns the next 64-bit value, composed of two 32-bit draws.
func (s *Source) Int64() int64 {
	hi := int64(s.next(32))
	lo := int64(s.next(32))
	return (hi << 32) + lo
}

// IntBounded returns a uniform value in [0, bound). It panics if bound is not
// positive. The power-of-two fast path and the rejection loop both match Java.
func (s *Source) IntBounded(bound int32) int32 {
	if bound <= 0 {
		panic("jrand: bound must be positive")
	}
	if bound&-bound == bound {
		return int32((int64(bound) * int64(s.next(31))) >> 31)
	}
	for {
		bits := s.next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}

// Float32 returns a uniform value in [0, 1).
func (s *Source) Float32() float32 {
	return float32(s.next(24)) / (1 << 24)
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	hi := int64(s.next(26))
	lo := int64(s.next(27))
	return float64(hi<<27+lo) / (1 << 53)
}

// Bool returns the next boolean draw.
func (s *Source) Bool() bool {
	return s.next(1) != 0
}

// ChoiceIndex returns a uniform index in [0, n), for picking one of n options.
func (s *Source) ChoiceIndex(n int) int {
	return int(s.IntBounded(int32(n)))
}
