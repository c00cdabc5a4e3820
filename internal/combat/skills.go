package combat

import (
	"fmt"

	"gamerena/internal/config"
)

// Effect resolves a skill from actor onto target.
type Effect func(rv *Resolver, actor, target *Entity) Outcome

type Skill struct {
	ID     string
	Verb   string
	Target TargetClass
	Weight int
	Effect Effect
}

// SkillSelector is a weighted table of skills.
type SkillSelector struct {
	skills []Skill
	total  int
}

func (s *SkillSelector) Add(sk Skill) error {
	if sk.Weight <= 0 {
		return newError(CodeInvalidSkill, fmt.Sprintf("skill %q: weight must be positive, got %d", sk.ID, sk.Weight))
	}
	if sk.Effect == nil {
		return newError(CodeInvalidSkill, fmt.Sprintf("skill %q: effect is nil", sk.ID))
	}
	s.skills = append(s.skills, sk)
	s.total += sk.Weight
	return nil
}

func (s *SkillSelector) TotalWeight() int { return s.total }

func (s *SkillSelector) Len() int {
	if s == nil {
		return 0
	}
	return len(s.skills)
}

// Skills returns a copy of the table in insertion order.
func (s *SkillSelector) Skills() []Skill {
	if s == nil {
		return nil
	}
	out := make([]Skill, len(s.skills))
	copy(out, s.skills)
	return out
}

// Pick draws k in [0, total) and walks the table in insertion order.
// The table must not be empty.
func (s *SkillSelector) Pick(r Rand) Skill {
	k := r.Intn(s.total)
	for _, sk := range s.skills {
		if k < sk.Weight {
			return sk
		}
		k -= sk.Weight
	}
	return s.skills[len(s.skills)-1]
}

// SkillWeight evaluates def's weight formula against base. The jitter draw
// is taken from r only when the formula asks for it.
func SkillWeight(def config.WeightDef, base Stats, r Rand) int {
	sum := 0.0
	for i, name := range config.StatNames {
		if k, ok := def.Scale[name]; ok {
			sum += k * float64(base.Get(Stat(i)))
		}
	}
	if def.Jitter {
		sum *= 0.5 + r.Float64()
	}
	return int(def.Base + sum)
}

// BuildSkills generates a skill table for base. Mandatory skills always make
// it in, with at least minWeight; the rest need a weight above their
// threshold.
func BuildSkills(defs []config.SkillDef, minWeight int, base Stats, r Rand) (*SkillSelector, error) {
	sel := &SkillSelector{}
	for _, def := range defs {
		w := SkillWeight(def.Weight, base, r)
		if def.Mandatory {
			w = max(w, minWeight)
		} else if float64(w) <= def.Threshold || w <= 0 {
			continue
		}
		sk, err := skillFromDef(def, w)
		if err != nil {
			return nil, err
		}
		if err := sel.Add(sk); err != nil {
			return nil, err
		}
	}
	if sel.Len() == 0 {
		return nil, newError(CodeInvalidSkill, "skill table is empty")
	}
	return sel, nil
}

func skillFromDef(def config.SkillDef, weight int) (Skill, error) {
	sk := Skill{ID: def.ID, Verb: def.Verb, Weight: weight}
	switch def.Target {
	case config.TargetAlly:
		sk.Target = TargetAlly
	case config.TargetEnemy:
		sk.Target = TargetEnemy
	default:
		return sk, newError(CodeInvalidSkill, fmt.Sprintf("skill %q: unknown target %q", def.ID, def.Target))
	}
	factor := def.Multiplier()
	switch def.Kind {
	case config.KindPhysical:
		sk.Effect = func(rv *Resolver, a, t *Entity) Outcome { return rv.Physical(a, t, factor) }
	case config.KindMagical:
		sk.Effect = func(rv *Resolver, a, t *Entity) Outcome { return rv.Magical(a, t, factor) }
	case config.KindHeal:
		sk.Effect = func(rv *Resolver, a, t *Entity) Outcome { return rv.Heal(a, t, factor) }
	default:
		return sk, newError(CodeInvalidSkill, fmt.Sprintf("skill %q: unknown kind %q", def.ID, def.Kind))
	}
	return sk, nil
}
