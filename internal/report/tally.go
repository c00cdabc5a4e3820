package report

import "gamerena/internal/combat"

// Tally aggregates a recorded event stream.
type Tally struct {
	Turns           int            `json:"turns"`
	Casts           map[string]int `json:"casts"`
	Dodges          int            `json:"dodges"`
	DamageBySkill   map[string]int `json:"damage_by_skill"`
	DamageByEntity  map[string]int `json:"damage_by_entity"`
	HealingByEntity map[string]int `json:"healing_by_entity,omitempty"`
	Kills           map[string]int `json:"kills,omitempty"`
	TotalDamage     int            `json:"total_damage"`
}

// TallyEvents attributes every hit and heal to its caster, and to the skill
// of the caster's latest cast.
func TallyEvents(events []combat.Event) Tally {
	t := Tally{
		Casts:           map[string]int{},
		DamageBySkill:   map[string]int{},
		DamageByEntity:  map[string]int{},
		HealingByEntity: map[string]int{},
		Kills:           map[string]int{},
	}
	lastSkill := map[string]string{}
	for _, ev := range events {
		switch ev.Type {
		case combat.EventTurn:
			t.Turns++
		case combat.EventCast:
			caster, skill := str(ev.Payload["caster"]), str(ev.Payload["skill"])
			lastSkill[caster] = skill
			t.Casts[skill]++
		case combat.EventDodge:
			t.Dodges++
		case combat.EventHit:
			caster, dmg := str(ev.Payload["caster"]), num(ev.Payload["dmg"])
			t.DamageByEntity[caster] += dmg
			t.DamageBySkill[lastSkill[caster]] += dmg
			t.TotalDamage += dmg
		case combat.EventHeal:
			t.HealingByEntity[str(ev.Payload["caster"])] += num(ev.Payload["heal"])
		case combat.EventDefeat:
			t.Kills[str(ev.Payload["by"])]++
		}
	}
	return t
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// num accepts ints from live events and float64 from decoded JSON.
func num(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
