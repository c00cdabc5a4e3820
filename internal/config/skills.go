package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	KindPhysical = "physical"
	KindMagical  = "magical"
	KindHeal     = "heal"

	TargetEnemy = "enemy"
	TargetAlly  = "ally"
)

type SkillDef struct {
	ID        string    `yaml:"id"`
	Verb      string    `yaml:"verb"`
	Kind      string    `yaml:"kind"`
	Target    string    `yaml:"target"`
	Mandatory bool      `yaml:"mandatory"`
	Threshold float64   `yaml:"threshold"`
	Factor    float64   `yaml:"factor"`
	Weight    WeightDef `yaml:"weight"`
}

// WeightDef computes a skill's selection weight from the owner's base stats:
// Base + sum(Scale[stat]*stat), the sum multiplied by (0.5+U) when Jitter.
type WeightDef struct {
	Base   float64            `yaml:"base"`
	Scale  map[string]float64 `yaml:"scale"`
	Jitter bool               `yaml:"jitter"`
}

// Multiplier returns Factor, treating an omitted factor as 1.
func (s SkillDef) Multiplier() float64 {
	if s.Factor == 0 {
		return 1
	}
	return s.Factor
}

func (s SkillDef) validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	switch s.Kind {
	case KindPhysical, KindMagical, KindHeal:
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", s.Kind))
	}
	switch s.Target {
	case TargetEnemy, TargetAlly:
	default:
		errs = append(errs, fmt.Errorf("unknown target %q", s.Target))
	}
	if s.Factor < 0 {
		errs = append(errs, fmt.Errorf("factor must not be negative, got %v", s.Factor))
	}
	for stat := range s.Weight.Scale {
		if !slices.Contains(StatNames, stat) {
			errs = append(errs, fmt.Errorf("weight.scale: unknown stat %q", stat))
		}
	}
	return errors.Join(errs...)
}

// DefaultSkills is the classic five-skill table: two mandatory baselines
// and three stat-gated extras.
func DefaultSkills() []SkillDef {
	return []SkillDef{
		{
			ID: "attack", Verb: "attacks", Kind: KindPhysical, Target: TargetEnemy, Mandatory: true,
			Weight: WeightDef{Base: 250, Scale: map[string]float64{"attack": 4, "magic": -4}, Jitter: true},
		},
		{
			ID: "magic", Verb: "hurls a spell", Kind: KindMagical, Target: TargetEnemy, Mandatory: true,
			Weight: WeightDef{Base: 250, Scale: map[string]float64{"magic": 4, "attack": -4}, Jitter: true},
		},
		{
			ID: "fireball", Verb: "launches a fireball", Kind: KindMagical, Target: TargetEnemy,
			Threshold: 140, Factor: 1.8,
			Weight: WeightDef{Base: 50, Scale: map[string]float64{"intelligence": 0.5, "magic": 1}},
		},
		{
			ID: "critical", Verb: "strikes at a weak point", Kind: KindPhysical, Target: TargetEnemy,
			Threshold: 125, Factor: 2.15,
			Weight: WeightDef{Base: 30, Scale: map[string]float64{"intelligence": 0.25, "attack": 0.5, "accuracy": 0.5}},
		},
		{
			ID: "cure", Verb: "casts a healing spell", Kind: KindHeal, Target: TargetAlly,
			Threshold: 100, Factor: 1.2,
			Weight: WeightDef{Base: 60, Scale: map[string]float64{"intelligence": 0.5, "magic": 0.25}},
		},
	}
}
