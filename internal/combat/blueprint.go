package combat

import (
	"gamerena/internal/config"
	"gamerena/internal/util"
)

// Blueprint is the immutable template of a named entity. Entities cloned
// from one another point at the same Blueprint.
type Blueprint struct {
	name   string
	team   string
	teamID uint64
	base   Stats
	skills *SkillSelector
}

// TeamID derives a team identifier from its name.
func TeamID(team string) uint64 { return util.Hash64(team) }

// NewBlueprint rolls base stats and the skill table from a stream seeded by
// the entity name alone, so a name always yields the same blueprint under
// the same tuning.
func NewBlueprint(team, name string, cfg *config.Tuning) (*Blueprint, error) {
	rng := util.NewNamed("blueprint", name)
	roll := func(r config.StatRange) int { return r.Min + rng.Intn(r.Max-r.Min) }

	st := cfg.Blueprint.Stat
	base := Stats{HP: roll(cfg.Blueprint.HP)}
	base.Attack = roll(st)
	base.Defense = roll(st)
	base.Magic = roll(st)
	base.MagicDefense = roll(st)
	base.Speed = roll(st)
	base.Accuracy = roll(st)
	base.Intelligence = roll(st)

	skills, err := BuildSkills(cfg.Skills, cfg.MinSkillWeight, base, rng)
	if err != nil {
		return nil, err
	}
	return NewBlueprintWithStats(team, name, base, skills), nil
}

// NewBlueprintWithStats builds a blueprint from explicit stats and skills.
func NewBlueprintWithStats(team, name string, base Stats, skills *SkillSelector) *Blueprint {
	return &Blueprint{
		name:   name,
		team:   team,
		teamID: TeamID(team),
		base:   base,
		skills: skills,
	}
}

func (b *Blueprint) Name() string           { return b.name }
func (b *Blueprint) Team() string           { return b.team }
func (b *Blueprint) TeamID() uint64         { return b.teamID }
func (b *Blueprint) Stats() Stats           { return b.base }
func (b *Blueprint) Skills() *SkillSelector { return b.skills }
