package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// New returns a PRNG for combat rolls. A zero seed is remapped to 1.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// DeterministicSeed derives a stable seed from a label and a name, so the
// same name always produces the same stream for the same purpose.
func DeterministicSeed(label, name string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(label))
	hasher.Write([]byte{0})
	hasher.Write([]byte(name))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewNamed returns a PRNG seeded from DeterministicSeed(label, name).
func NewNamed(label, name string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeed(label, name)))
}

// NewSeed draws a fresh seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// Hash64 is the fnv64a hash used for team identifiers.
func Hash64(s string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(s))
	return hasher.Sum64()
}
