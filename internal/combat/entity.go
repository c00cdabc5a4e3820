package combat

import "slices"

// State is the mutable battle state of one entity. It is never shared.
type State struct {
	hp       int
	active   bool
	score    int
	readyAt  float64
	lastTurn float64
	teamID   uint64

	modifiers    []Modifier
	onDeactivate []func(*Entity)
}

// Action is something an entity does on its turn.
type Action func(e *Entity)

// Entity pairs a shared, immutable Blueprint with its own State.
type Entity struct {
	bp      *Blueprint
	st      *State
	actions []Action
	named   map[string]Action
}

func NewEntity(bp *Blueprint) *Entity {
	return &Entity{
		bp: bp,
		st: &State{
			hp:     bp.base.HP,
			active: true,
			teamID: bp.teamID,
		},
	}
}

func (e *Entity) Blueprint() *Blueprint { return e.bp }
func (e *Entity) Name() string          { return e.bp.name }
func (e *Entity) Team() string          { return e.bp.team }
func (e *Entity) TeamID() uint64        { return e.st.teamID }
func (e *Entity) HP() int               { return e.st.hp }
func (e *Entity) Active() bool          { return e.st.active }
func (e *Entity) Score() int            { return e.st.score }
func (e *Entity) ReadyAt() float64      { return e.st.readyAt }
func (e *Entity) Base() Stats           { return e.bp.base }

// Effective folds the active modifiers over the blueprint stats. It is
// recomputed on every call.
func (e *Entity) Effective() Stats { return Fold(e.bp.base, e.st.modifiers) }

func (e *Entity) MaxHP() int { return e.Effective().HP }

func (e *Entity) Skills() []Skill { return e.bp.skills.Skills() }

// Modifiers returns a copy of the attached modifiers in insertion order.
func (e *Entity) Modifiers() []Modifier { return slices.Clone(e.st.modifiers) }

// AddModifier validates m, applies its HP delta to the current HP and keeps
// a copy. Dropping to 0 HP this way deactivates the entity.
func (e *Entity) AddModifier(m *Modifier) error {
	if err := validateModifier(m); err != nil {
		return err
	}
	cp := *m
	cp.rounds, cp.ticks = 0, 0
	e.st.modifiers = append(e.st.modifiers, cp)
	if m.Delta.HP != 0 && e.st.active {
		e.st.hp = max(e.st.hp+m.Delta.HP, MinStateHP)
		if e.st.hp == 0 {
			e.Deactivate()
		}
	}
	return nil
}

// RemoveModifier drops every modifier with the given name and reports how
// many were removed.
func (e *Entity) RemoveModifier(name string) int {
	before := len(e.st.modifiers)
	e.st.modifiers = slices.DeleteFunc(e.st.modifiers, func(m Modifier) bool { return m.Name == name })
	removed := before - len(e.st.modifiers)
	if removed > 0 {
		e.capHP()
	}
	return removed
}

// age advances modifier lifetimes by one owner turn and dt of clock time.
func (e *Entity) age(now float64) {
	dt := now - e.st.lastTurn
	e.st.lastTurn = now
	if len(e.st.modifiers) == 0 {
		return
	}
	for i := range e.st.modifiers {
		e.st.modifiers[i].rounds++
		e.st.modifiers[i].ticks += dt
	}
	before := len(e.st.modifiers)
	e.st.modifiers = slices.DeleteFunc(e.st.modifiers, func(m Modifier) bool { return m.expired() })
	if len(e.st.modifiers) != before {
		e.capHP()
	}
}

func (e *Entity) capHP() {
	if maxHP := e.MaxHP(); e.st.hp > maxHP {
		e.st.hp = maxHP
	}
}

// OnDeactivate registers fn to run once when the entity leaves play.
func (e *Entity) OnDeactivate(fn func(*Entity)) {
	if fn != nil {
		e.st.onDeactivate = append(e.st.onDeactivate, fn)
	}
}

// Deactivate takes the entity out of play. Callbacks run only on the first
// call.
func (e *Entity) Deactivate() {
	if !e.st.active {
		return
	}
	e.st.active = false
	for _, fn := range e.st.onDeactivate {
		fn(e)
	}
}

// TakeDamage subtracts n from HP (floor 0) and reports whether this call
// deactivated the entity. Inactive entities are left untouched.
func (e *Entity) TakeDamage(n int) bool {
	if !e.st.active || n <= 0 {
		return false
	}
	e.st.hp = max(e.st.hp-n, MinStateHP)
	if e.st.hp == 0 {
		e.Deactivate()
		return true
	}
	return false
}

// Restore adds up to n HP without exceeding MaxHP and returns the amount
// actually restored.
func (e *Entity) Restore(n int) int {
	if !e.st.active || n <= 0 {
		return 0
	}
	n = min(n, e.MaxHP()-e.st.hp)
	if n <= 0 {
		return 0
	}
	e.st.hp += n
	return n
}

func (e *Entity) AddScore(n int) { e.st.score += n }

func (e *Entity) AddAction(a Action) error {
	if a == nil {
		return newError(CodeInvalidAction, "action is nil")
	}
	e.actions = append(e.actions, a)
	return nil
}

// AddNamedAction registers a as a regular action and also makes it
// reachable through TryAction.
func (e *Entity) AddNamedAction(name string, a Action) error {
	if err := e.AddAction(a); err != nil {
		return err
	}
	if e.named == nil {
		e.named = map[string]Action{}
	}
	e.named[name] = a
	return nil
}

func (e *Entity) TryAction(name string) bool {
	a, ok := e.named[name]
	if !ok {
		return false
	}
	a(e)
	return true
}

// Act runs every registered action in order.
func (e *Entity) Act() {
	for _, a := range e.actions {
		a(e)
	}
}

// Clone shares the blueprint and copies the state. Callbacks and actions
// belong to a registration and are not carried over.
func (e *Entity) Clone() *Entity {
	st := *e.st
	st.modifiers = slices.Clone(e.st.modifiers)
	st.onDeactivate = nil
	return &Entity{bp: e.bp, st: &st}
}
