package jitter

import "math/rand/v2"

// NewSource returns a deterministic PCG-backed source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Script is a Source that replays a fixed list of values, cycling when it
// runs out. It is intended for tests and reproducible fixtures.
type Script struct {
	values []float64
	next   int
	calls  int
}

// NewScript returns a Script replaying values. With no values it always
// returns 0.
func NewScript(values ...float64) *Script {
	return &Script{values: values}
}

// Float64 returns the next scripted value.
func (s *Script) Float64() float64 {
	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Calls reports how many values have been drawn.
func (s *Script) Calls() int { return s.calls }

// Constant is a Source that always returns the same value.
type Constant float64

// Float64 returns c.
func (c Constant) Float64() float64 { return float64(c) }
