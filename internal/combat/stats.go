package combat

import (
	"fmt"

	"gamerena/internal/config"
)

type Stat int

const (
	StatHP Stat = iota
	StatAttack
	StatDefense
	StatMagic
	StatMagicDefense
	StatSpeed
	StatAccuracy
	StatIntelligence
	statCount
)

func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return fmt.Sprintf("Stat(%d)", int(s))
	}
	return config.StatNames[s]
}

// ParseStat resolves a config stat key.
func ParseStat(name string) (Stat, bool) {
	for i, n := range config.StatNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}

// Stats is a full stat block. It is a plain value: assignment copies it.
type Stats struct {
	HP           int `json:"hp"`
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	Magic        int `json:"magic"`
	MagicDefense int `json:"magic_defense"`
	Speed        int `json:"speed"`
	Accuracy     int `json:"accuracy"`
	Intelligence int `json:"intelligence"`
}

func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatMagic:
		return s.Magic
	case StatMagicDefense:
		return s.MagicDefense
	case StatSpeed:
		return s.Speed
	case StatAccuracy:
		return s.Accuracy
	case StatIntelligence:
		return s.Intelligence
	}
	return 0
}

func (s Stats) IsZero() bool { return s == Stats{} }

// Stat floors applied while folding modifiers.
const (
	MinFoldHP    = 1
	MinStateHP   = 0
	MinAccuracy  = 5
	MinOffensive = 0
)

// apply adds delta to s and clamps each stat to its floor.
func (s Stats) apply(d Stats) Stats {
	return Stats{
		HP:           max(s.HP+d.HP, MinFoldHP),
		Attack:       max(s.Attack+d.Attack, MinOffensive),
		Defense:      s.Defense + d.Defense,
		Magic:        max(s.Magic+d.Magic, MinOffensive),
		MagicDefense: s.MagicDefense + d.MagicDefense,
		Speed:        s.Speed + d.Speed,
		Accuracy:     max(s.Accuracy+d.Accuracy, MinAccuracy),
		Intelligence: max(s.Intelligence+d.Intelligence, MinOffensive),
	}
}

// Unlimited marks a modifier lifetime without a bound.
const Unlimited = -1

// Modifier is a timed additive stat delta.
type Modifier struct {
	Name      string
	Delta     Stats
	MaxRounds int
	MaxTicks  float64

	rounds int
	ticks  float64
}

// NewModifier returns a modifier that never expires on its own.
func NewModifier(name string, delta Stats) *Modifier {
	return &Modifier{Name: name, Delta: delta, MaxRounds: Unlimited, MaxTicks: Unlimited}
}

// WithLifetime bounds the modifier to rounds owner turns and ticks of
// simulation time. Pass Unlimited to leave either side open.
func (m *Modifier) WithLifetime(rounds int, ticks float64) *Modifier {
	m.MaxRounds = rounds
	m.MaxTicks = ticks
	return m
}

func (m *Modifier) Rounds() int    { return m.rounds }
func (m *Modifier) Ticks() float64 { return m.ticks }

func (m *Modifier) expired() bool {
	if m.MaxRounds != Unlimited && m.rounds >= m.MaxRounds {
		return true
	}
	return m.MaxTicks != Unlimited && m.ticks >= m.MaxTicks
}

func validateModifier(m *Modifier) error {
	switch {
	case m == nil:
		return newError(CodeInvalidModifier, "modifier can't be nil")
	case m.Delta.IsZero():
		return newError(CodeInvalidModifier, fmt.Sprintf("modifier %q is empty", m.Name))
	case m.MaxRounds != Unlimited && m.MaxRounds <= 0:
		return newError(CodeInvalidModifier, fmt.Sprintf("modifier %q: max rounds must be positive or unlimited", m.Name))
	case m.MaxTicks != Unlimited && m.MaxTicks <= 0:
		return newError(CodeInvalidModifier, fmt.Sprintf("modifier %q: max ticks must be positive or unlimited", m.Name))
	}
	return nil
}

// Fold applies mods in order over a copy of base. Clamping happens after
// each modifier, so order matters.
func Fold(base Stats, mods []Modifier) Stats {
	out := base
	for i := range mods {
		out = out.apply(mods[i].Delta)
	}
	return out
}
