package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZeroSeedMatchesOne(t *testing.T) {
	a := New(0)
	b := New(1)
	for i := 0; i < 16; i++ {
		assert.Equal(t, b.Int63(), a.Int63())
	}
}

func TestDeterministicSeedStable(t *testing.T) {
	assert.Equal(t, DeterministicSeed("blueprint", "alice"), DeterministicSeed("blueprint", "alice"))
	assert.NotEqual(t, DeterministicSeed("blueprint", "alice"), DeterministicSeed("blueprint", "bob"))
	assert.NotEqual(t, DeterministicSeed("blueprint", "alice"), DeterministicSeed("combat", "alice"))
}

func TestNewNamedReproducible(t *testing.T) {
	a := NewNamed("blueprint", "alice")
	b := NewNamed("blueprint", "alice")
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestNewSeedNonZero(t *testing.T) {
	seed, err := NewSeed()
	require.NoError(t, err)
	assert.NotZero(t, seed)
}

func TestHash64(t *testing.T) {
	assert.Equal(t, Hash64("red"), Hash64("red"))
	assert.NotEqual(t, Hash64("red"), Hash64("blue"))
}
