package vmath

// --- Integer helpers ---

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// --- Randomness ---

// FastRand is a seeded xorshift64 generator. The zero seed is remapped so
// the state never collapses to all zeros.
//
// Simulation code threads a *FastRand explicitly through every step that
// needs a tie-break, so two runs from the same seed are bit-identical.
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Bool returns a uniform coin flip.
func (r *FastRand) Bool() bool {
	return r.Next()&1 == 1
}

// State returns the current generator state, usable as a seed to resume an
// identical sequence.
func (r *FastRand) State() uint64 {
	return r.state
}
