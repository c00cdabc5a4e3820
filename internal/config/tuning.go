package config

import (
	"errors"
	"fmt"
)

// StatNames lists the stat keys accepted in weight coefficients, in the
// order the combat package lays out its stat block.
var StatNames = []string{
	"hp",
	"attack",
	"defense",
	"magic",
	"magic_defense",
	"speed",
	"accuracy",
	"intelligence",
}

// Tuning is the whole numeric surface of a match. Nothing in the combat
// formulas is hard-coded outside of DefaultTuning.
type Tuning struct {
	Scheduler      SchedulerDef `yaml:"scheduler"`
	Blueprint      BlueprintDef `yaml:"blueprint"`
	Physical       DamageDef    `yaml:"physical"`
	Magical        DamageDef    `yaml:"magical"`
	Heal           HealDef      `yaml:"heal"`
	KillBonus      int          `yaml:"kill_bonus"`
	MinSkillWeight int          `yaml:"min_skill_weight"`
	Skills         []SkillDef   `yaml:"skills"`
}

type SchedulerDef struct {
	BaseWaitTime float64 `yaml:"base_wait_time"`
	SpeedFactor  float64 `yaml:"speed_factor"`
	SpeedJitter  float64 `yaml:"speed_jitter"`
	MinWaitTime  float64 `yaml:"min_wait_time"`
}

// StatRange is a half-open interval [Min, Max).
type StatRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type BlueprintDef struct {
	HP   StatRange `yaml:"hp"`
	Stat StatRange `yaml:"stat"`
}

// DamageDef parameterises one damage resolution shape. Offense and guard
// are Attack/Defense for physical skills and Magic/MagicDefense for magical
// ones. A zero divisor disables its dodge term.
type DamageDef struct {
	DodgeBase        int     `yaml:"dodge_base"`
	AccuracyDiv      int     `yaml:"accuracy_div"`
	GuardDiv         int     `yaml:"guard_div"`
	InsightDiv       int     `yaml:"insight_div"`
	Base             float64 `yaml:"base"`
	OffenseFlat      float64 `yaml:"offense_flat"`
	OffenseRand      float64 `yaml:"offense_rand"`
	DefenseFlat      float64 `yaml:"defense_flat"`
	DefenseRand      float64 `yaml:"defense_rand"`
	IntelligenceFlat float64 `yaml:"intelligence_flat"`
}

type HealDef struct {
	Base             float64 `yaml:"base"`
	MagicFlat        float64 `yaml:"magic_flat"`
	MagicRand        float64 `yaml:"magic_rand"`
	IntelligenceFlat float64 `yaml:"intelligence_flat"`
}

// DefaultTuning reproduces the classic arena balance.
func DefaultTuning() Tuning {
	return Tuning{
		Scheduler: SchedulerDef{
			BaseWaitTime: 160,
			SpeedFactor:  0.3,
			SpeedJitter:  0.5,
			MinWaitTime:  1,
		},
		Blueprint: BlueprintDef{
			HP:   StatRange{Min: 200, Max: 350},
			Stat: StatRange{Min: 30, Max: 100},
		},
		Physical: DamageDef{
			DodgeBase:   16,
			AccuracyDiv: 4,
			GuardDiv:    8,
			Base:        15,
			OffenseFlat: 0.3,
			OffenseRand: 0.9,
			DefenseFlat: 0.2,
			DefenseRand: 0.3,
		},
		Magical: DamageDef{
			DodgeBase:        25,
			AccuracyDiv:      8,
			GuardDiv:         8,
			InsightDiv:       8,
			Base:             25,
			OffenseFlat:      0.6,
			OffenseRand:      0.6,
			DefenseRand:      0.75,
			IntelligenceFlat: 0.2,
		},
		Heal: HealDef{
			Base:             10,
			MagicFlat:        0.25,
			MagicRand:        0.35,
			IntelligenceFlat: 0.4,
		},
		KillBonus:      30,
		MinSkillWeight: 1,
		Skills:         DefaultSkills(),
	}
}

// Validate reports every problem found, joined.
func (t Tuning) Validate() error {
	var errs []error
	s := t.Scheduler
	if s.BaseWaitTime <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.base_wait_time must be positive, got %v", s.BaseWaitTime))
	}
	if s.MinWaitTime <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.min_wait_time must be positive, got %v", s.MinWaitTime))
	}
	if s.SpeedFactor < 0 || s.SpeedJitter < 0 {
		errs = append(errs, errors.New("scheduler speed factors must not be negative"))
	}
	for name, r := range map[string]StatRange{"hp": t.Blueprint.HP, "stat": t.Blueprint.Stat} {
		if r.Min >= r.Max {
			errs = append(errs, fmt.Errorf("blueprint.%s: min %d must be below max %d", name, r.Min, r.Max))
		}
	}
	if t.Blueprint.HP.Min < 1 {
		errs = append(errs, errors.New("blueprint.hp.min must be at least 1"))
	}
	for name, d := range map[string]DamageDef{"physical": t.Physical, "magical": t.Magical} {
		if d.AccuracyDiv < 0 || d.GuardDiv < 0 || d.InsightDiv < 0 {
			errs = append(errs, fmt.Errorf("%s: dodge divisors must not be negative", name))
		}
	}
	if t.KillBonus < 0 {
		errs = append(errs, errors.New("kill_bonus must not be negative"))
	}
	if t.MinSkillWeight < 1 {
		errs = append(errs, errors.New("min_skill_weight must be at least 1"))
	}
	if len(t.Skills) == 0 {
		errs = append(errs, errors.New("skills: at least one skill is required"))
	}
	mandatory := 0
	seen := map[string]bool{}
	for i, sk := range t.Skills {
		if err := sk.validate(); err != nil {
			errs = append(errs, fmt.Errorf("skills[%d]: %w", i, err))
		}
		if seen[sk.ID] {
			errs = append(errs, fmt.Errorf("skills[%d]: duplicate id %q", i, sk.ID))
		}
		seen[sk.ID] = true
		if sk.Mandatory {
			mandatory++
		}
	}
	if len(t.Skills) > 0 && mandatory == 0 {
		errs = append(errs, errors.New("skills: at least one skill must be mandatory"))
	}
	return errors.Join(errs...)
}
