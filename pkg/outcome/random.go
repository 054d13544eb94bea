package outcome

import (
	"math/rand/v2"
	"sync"
	"time"
)

// UniformSource draws from a PCG generator. Safe for concurrent use.
type UniformSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformSource seeds from the wall clock.
func NewUniformSource() *UniformSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed uint64) *UniformSource {
	return &UniformSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *UniformSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// FixedSource always returns the same sample.
type FixedSource float64

func (f FixedSource) Float64() float64 {
	return float64(f)
}

// AlwaysSucceed and AlwaysFail pin the fault channel to one branch.
const (
	AlwaysSucceed FixedSource = 0
	AlwaysFail    FixedSource = 0.9
)

// SequenceSource replays samples in order, wrapping around.
type SequenceSource struct {
	mu      sync.Mutex
	samples []float64
	next    int
	drawn   int
}

// NewSequenceSource panics on an empty sequence.
func NewSequenceSource(samples ...float64) *SequenceSource {
	if len(samples) == 0 {
		panic("outcome: empty sample sequence")
	}
	return &SequenceSource{samples: samples}
}

func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.samples[s.next]
	s.next = (s.next + 1) % len(s.samples)
	s.drawn++
	return v
}

// Drawn reports how many samples have been consumed.
func (s *SequenceSource) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}
