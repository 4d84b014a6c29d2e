package playerdomain

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource picks reward boost types. Implementations return a value in
// [0, n).
type RandomSource interface {
	IntN(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRandomSource returns a PCG-backed source. A zero seed draws one from
// crypto/rand.
func NewRandomSource(seed int64) (RandomSource, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)), nil
}

// FixedSource always returns the same index, clamped to n. Useful in tests.
type FixedSource int

func (f FixedSource) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}

// SequenceSource cycles through a list of indexes.
type SequenceSource struct {
	Values []int
	next   int
}

func (s *SequenceSource) IntN(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return ((v % n) + n) % n
}

// RandomBoostType draws a boost type uniformly from BoostTypes.
func RandomBoostType(src RandomSource) BoostType {
	types := BoostTypes()
	return types[src.IntN(len(types))]
}
