// Package dice provides the roll sources consumed by a game session.
//
// A Source is the only place randomness enters the game. Swapping a Random
// source for a Scripted one must never change how the engine behaves, which
// makes games reproducible in tests and replays.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// DefaultFaces is the number of faces on a standard die.
const DefaultFaces = 6

// Source produces die rolls.
type Source interface {
	// Next returns the next roll, normally in [1, Faces()].
	Next() int

	// Faces returns the number of faces on the die.
	Faces() int
}

// Random rolls a fair die using a seeded pseudo-random generator.
// Not safe for concurrent use; give each session its own source.
type Random struct {
	faces int
	seed  int64
	rng   *rand.Rand
}

// NewRandom creates a fair die with the given number of faces.
// A zero seed is replaced by a fresh seed from NewSeed.
func NewRandom(faces int, seed int64) *Random {
	if faces < 1 {
		faces = DefaultFaces
	}
	if seed == 0 {
		if s, err := NewSeed(); err == nil {
			seed = s
		} else {
			seed = 1
		}
	}
	return &Random{
		faces: faces,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns a uniformly distributed roll in [1, Faces()].
func (r *Random) Next() int {
	return r.rng.Intn(r.faces) + 1
}

// Faces returns the number of faces.
func (r *Random) Faces() int {
	return r.faces
}

// Seed returns the seed the generator was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("dice: read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
