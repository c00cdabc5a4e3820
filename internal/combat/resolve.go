package combat

import (
	"math"

	"gamerena/internal/config"
)

type OutcomeKind int

const (
	OutcomeSkipped OutcomeKind = iota
	OutcomeDodged
	OutcomeHit
	OutcomeHealed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDodged:
		return "dodged"
	case OutcomeHit:
		return "hit"
	case OutcomeHealed:
		return "healed"
	}
	return "skipped"
}

// Outcome is what one skill resolution did.
type Outcome struct {
	Kind   OutcomeKind
	Amount int
	Killed bool
}

// Resolver applies the damage and heal formulas. Every constant comes from
// the tuning it was built with.
type Resolver struct {
	cfg  *config.Tuning
	rng  Rand
	now  func() float64
	emit func(Event)
}

func NewResolver(cfg *config.Tuning, rng Rand) *Resolver {
	return &Resolver{cfg: cfg, rng: rng, now: func() float64 { return 0 }, emit: func(Event) {}}
}

// Physical resolves an Attack-versus-Defense hit.
func (rv *Resolver) Physical(actor, target *Entity, factor float64) Outcome {
	a, t := actor.Effective(), target.Effective()
	return rv.damage(actor, target, rv.cfg.Physical, factor, a.Attack, t.Defense, a, t, "physical")
}

// Magical resolves a Magic-versus-MagicDefense hit.
func (rv *Resolver) Magical(actor, target *Entity, factor float64) Outcome {
	a, t := actor.Effective(), target.Effective()
	return rv.damage(actor, target, rv.cfg.Magical, factor, a.Magic, t.MagicDefense, a, t, "magical")
}

// DodgeChance is the percentage chance that target evades actor.
func DodgeChance(d config.DamageDef, a, t Stats, offense, guard int) int {
	chance := d.DodgeBase
	if d.AccuracyDiv > 0 {
		chance += (t.Accuracy - a.Accuracy) / d.AccuracyDiv
	}
	if d.GuardDiv > 0 {
		chance += (guard - offense) / d.GuardDiv
	}
	if d.InsightDiv > 0 {
		chance -= a.Intelligence / d.InsightDiv
	}
	return chance
}

func (rv *Resolver) damage(actor, target *Entity, d config.DamageDef, factor float64, offense, guard int, a, t Stats, elem string) Outcome {
	if !target.Active() {
		return Outcome{Kind: OutcomeSkipped}
	}
	if rv.rng.Intn(100) < DodgeChance(d, a, t, offense, guard) {
		rv.emit(Event{T: rv.now(), Type: EventDodge, Payload: map[string]any{
			"caster": actor.Name(), "target": target.Name(), "elem": elem,
		}})
		return Outcome{Kind: OutcomeDodged}
	}
	off, def := float64(offense), float64(guard)
	raw := d.Base +
		off*d.OffenseFlat + off*d.OffenseRand*rv.rng.Float64() -
		def*d.DefenseFlat - def*d.DefenseRand*rv.rng.Float64() +
		float64(a.Intelligence)*d.IntelligenceFlat
	dmg := max(1, int(math.Floor(raw*factor)))

	actor.AddScore(dmg)
	killed := target.TakeDamage(dmg)
	rv.emit(Event{T: rv.now(), Type: EventHit, Payload: map[string]any{
		"caster": actor.Name(), "target": target.Name(), "elem": elem, "dmg": dmg, "hp": target.HP(),
	}})
	if killed {
		actor.AddScore(rv.cfg.KillBonus)
		rv.emit(Event{T: rv.now(), Type: EventDefeat, Payload: map[string]any{
			"target": target.Name(), "by": actor.Name(), "bonus": rv.cfg.KillBonus,
		}})
	}
	return Outcome{Kind: OutcomeHit, Amount: dmg, Killed: killed}
}

// Heal restores target's HP, never past its MaxHP. The actor scores the HP
// actually restored.
func (rv *Resolver) Heal(actor, target *Entity, factor float64) Outcome {
	if !target.Active() {
		return Outcome{Kind: OutcomeSkipped}
	}
	h := rv.cfg.Heal
	a := actor.Effective()
	mag := float64(a.Magic)
	raw := h.Base + mag*h.MagicFlat + mag*h.MagicRand*rv.rng.Float64() + float64(a.Intelligence)*h.IntelligenceFlat
	amount := max(1, int(math.Floor(raw*factor)))

	healed := target.Restore(amount)
	actor.AddScore(healed)
	rv.emit(Event{T: rv.now(), Type: EventHeal, Payload: map[string]any{
		"caster": actor.Name(), "target": target.Name(), "heal": healed, "hp": target.HP(),
	}})
	return Outcome{Kind: OutcomeHealed, Amount: healed}
}
