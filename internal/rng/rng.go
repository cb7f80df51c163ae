// Package rng provides the single random source every probabilistic game
// decision draws from: dice rolls, board layout, damage variance, flee
// chance, treasure and trap magnitude, and enemy selection.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Source produces uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// RNG derives integer ranges and dice rolls from a Source.
type RNG struct {
	src Source
}

// New wraps a sample source.
func New(src Source) *RNG {
	return &RNG{src: src}
}

// NewSeeded returns an RNG backed by math/rand seeded with seed.
// Identical seeds replay identical games.
func NewSeeded(seed int64) *RNG {
	return New(rand.New(rand.NewSource(seed)))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Float64 returns the next uniform sample in [0, 1).
func (r *RNG) Float64() float64 {
	return r.src.Float64()
}

// IntRange returns a uniform integer in the closed range [lo, hi].
// It consumes exactly one sample: lo + floor(sample * (hi-lo+1)).
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := hi - lo + 1
	v := int(r.src.Float64() * float64(n))
	// Guard against a source that returns exactly 1.0.
	if v >= n {
		v = n - 1
	}
	return lo + v
}

// Intn returns a uniform integer in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntRange(0, n-1)
}

// Roll rolls a single die with the given number of sides.
func (r *RNG) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	return r.IntRange(1, size), nil
}

// RollN rolls count dice with the given number of sides.
func (r *RNG) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid dice count %d", count)
	}
	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Ensure RNG can stand in for the toolkit's roller.
var _ dice.Roller = (*RNG)(nil)
