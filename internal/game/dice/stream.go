package dice

import (
	"fmt"
	"math"
)

// Stream is a deterministic mulberry32 random stream.
//
// A Stream is owned by exactly one caller and is not safe for concurrent use.
// Every draw advances the single state word; Fork is itself a draw, so the
// order of Fork calls is part of the reproducibility contract.
type Stream struct {
	seed  uint32
	state uint32
}

// NewStream returns a Stream rooted at seed.
//
// Postcondition: two Streams built from equal seeds produce identical sequences.
func NewStream(seed Seed) *Stream {
	return newStream(seed.Value)
}

func newStream(v uint32) *Stream {
	return &Stream{seed: v, state: v}
}

// Seed returns the 32-bit value this Stream was seeded with.
func (s *Stream) Seed() uint32 {
	return s.seed
}

func (s *Stream) next() uint32 {
	s.state += 0x6d2b79f5
	t := s.state
	r := (t ^ (t >> 15)) * (1 | t)
	r ^= r + (r^(r>>7))*(61|r)
	return r ^ (r >> 14)
}

// Float returns a float in [0, 1).
func (s *Stream) Float() float64 {
	return float64(s.next()) / 4294967296
}

// Int returns an integer in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
func (s *Stream) Int(lo, hi int) int {
	return int(math.Floor(s.Float()*float64(hi-lo+1))) + lo
}

// Intn returns an integer in [0, n), satisfying Source.
//
// Precondition: n > 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.Int(0, n-1)
}

// Chance reports true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Float() < p
}

// Fork derives an independent child stream from this stream's seed, label,
// and one consumed Int draw.
//
// Postcondition: the parent has advanced by exactly one draw.
func (s *Stream) Fork(label string) *Stream {
	draw := s.Int(0, 0xffffffff)
	return newStream(HashString(fmt.Sprintf("%d:%s:%d", s.seed, label, draw)))
}
