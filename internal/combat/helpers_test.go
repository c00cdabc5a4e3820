package combat

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"gamerena/internal/config"
)

// constRand never lets a dodge roll succeed (Intn returns n-1) and always
// rolls the same fraction.
type constRand struct{ f float64 }

func (c constRand) Intn(n int) int   { return n - 1 }
func (c constRand) Float64() float64 { return c.f }

// scriptRand replays fixed sequences, cycling when exhausted.
type scriptRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (s *scriptRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.i%len(s.ints)]
	s.i++
	return v % n
}

func (s *scriptRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopEffect(*Resolver, *Entity, *Entity) Outcome { return Outcome{} }

func stats(hp, v int) Stats {
	return Stats{HP: hp, Attack: v, Defense: v, Magic: v, MagicDefense: v, Speed: v, Accuracy: v, Intelligence: v}
}

// newTestEntity builds an entity with explicit stats and a single enemy
// skill that does nothing.
func newTestEntity(t *testing.T, team, name string, base Stats) *Entity {
	t.Helper()
	sel := &SkillSelector{}
	require.NoError(t, sel.Add(Skill{ID: "poke", Target: TargetEnemy, Weight: 1, Effect: noopEffect}))
	return NewEntity(NewBlueprintWithStats(team, name, base, sel))
}

// duelTuning keeps only the two baseline attacks, so a match cannot stall
// on heals.
func duelTuning() config.Tuning {
	cfg := config.DefaultTuning()
	cfg.Skills = cfg.Skills[:2]
	return cfg
}
