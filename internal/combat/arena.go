package combat

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gamerena/internal/config"
)

var tracer = otel.Tracer("gamerena/internal/combat")

// Report is the outcome of Arena.Run.
type Report struct {
	HasWinner  bool    `json:"has_winner"`
	WinnerID   uint64  `json:"winner_id,omitempty"`
	WinnerName string  `json:"winner,omitempty"`
	Turns      int     `json:"turns"`
	Clock      float64 `json:"clock"`
	Aborted    bool    `json:"aborted,omitempty"`
}

// TeamSnapshot lists every member ever registered to a team, live or not.
type TeamSnapshot struct {
	ID      uint64
	Name    string
	Members []*Entity
}

// Arena owns the participants of one match and drives it to the end.
// It is not safe for concurrent use, except for Abort.
type Arena struct {
	cfg      *config.Tuning
	rng      Rand
	log      *slog.Logger
	sched    *Scheduler
	targets  *TargetSelector
	resolver *Resolver

	entities  []*Entity
	byName    map[string]*Entity
	teamNames map[uint64]string

	// Emit receives the narrative of the match. Nil discards it.
	Emit func(Event)

	started bool
	aborted atomic.Bool
}

// NewArena builds an empty arena. rng drives every combat roll; blueprints
// use their own name-seeded streams.
func NewArena(cfg *config.Tuning, rng Rand) *Arena {
	a := &Arena{
		cfg:       cfg,
		rng:       rng,
		log:       slog.Default(),
		sched:     NewScheduler(cfg.Scheduler, rng),
		targets:   NewTargetSelector(rng),
		byName:    map[string]*Entity{},
		teamNames: map[uint64]string{},
	}
	a.resolver = NewResolver(cfg, rng)
	a.resolver.now = a.sched.Now
	a.resolver.emit = a.emit
	return a
}

func (a *Arena) SetLogger(l *slog.Logger) {
	if l != nil {
		a.log = l
	}
}

func (a *Arena) emit(ev Event) {
	if a.Emit != nil {
		a.Emit(ev)
	}
}

// Register creates a participant. Nothing is registered when an error is
// returned.
func (a *Arena) Register(team, name string) (*Entity, error) {
	switch {
	case a.started:
		return nil, newError(CodeArenaStarted, "registration is closed once the match has started")
	case strings.TrimSpace(name) == "":
		return nil, newError(CodeEmptyName, "name shouldn't be empty")
	case strings.TrimSpace(team) == "":
		return nil, newError(CodeEmptyTeam, fmt.Sprintf("team of %q shouldn't be empty", name))
	}
	if _, ok := a.byName[name]; ok {
		return nil, newError(CodeDuplicateName, fmt.Sprintf("name %q has been used", name))
	}

	bp, err := NewBlueprint(team, name, a.cfg)
	if err != nil {
		return nil, err
	}
	e := NewEntity(bp)
	if err := e.AddAction(a.turn); err != nil {
		return nil, err
	}
	e.OnDeactivate(func(*Entity) { a.targets.MarkDirty() })

	a.entities = append(a.entities, e)
	a.byName[name] = e
	if _, ok := a.teamNames[e.TeamID()]; !ok {
		a.teamNames[e.TeamID()] = team
	}
	a.sched.Insert(e)
	a.targets.AddEntity(e)

	base := e.Base()
	a.log.Info("registered", "name", name, "team", team, "hp", base.HP, "skills", bp.skills.Len())
	a.emit(Event{T: a.sched.Now(), Type: EventRegister, Payload: map[string]any{
		"name": name, "team": team, "hp": e.HP(), "max_hp": e.MaxHP(),
	}})
	return e, nil
}

// turn is the action bound to every registered entity.
func (a *Arena) turn(e *Entity) {
	now := a.sched.Now()
	a.emit(Event{T: now, Type: EventTurn, Payload: map[string]any{"actor": e.Name(), "hp": e.HP()}})

	sk := e.bp.skills.Pick(a.rng)
	var target *Entity
	switch sk.Target {
	case TargetAlly:
		target = a.targets.RandomAlly(e)
	default:
		target = a.targets.RandomEnemy(e)
	}
	if target == nil {
		a.log.Debug("no target", "actor", e.Name(), "skill", sk.ID)
		return
	}
	a.emit(Event{T: now, Type: EventCast, Payload: map[string]any{
		"caster": e.Name(), "skill": sk.ID, "verb": sk.Verb, "target": target.Name(),
	}})
	out := sk.Effect(a.resolver, e, target)
	a.log.Debug("turn",
		"t", now, "actor", e.Name(), "skill", sk.ID, "target", target.Name(),
		"outcome", out.Kind.String(), "amount", out.Amount, "killed", out.Killed)
}

// Run drives the scheduler until fewer than two teams are active, ctx is
// done or Abort is called.
func (a *Arena) Run(ctx context.Context) (Report, error) {
	ctx, span := tracer.Start(ctx, "arena.run", trace.WithAttributes(
		attribute.Int("arena.entities", len(a.entities)),
		attribute.Int("arena.teams", a.targets.ActiveTeamCount()),
	))
	defer span.End()

	if len(a.entities) == 0 {
		err := newError(CodeNoParticipants, "no participants")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}
	a.started = true

	var rep Report
	for a.targets.ActiveTeamCount() >= 2 {
		if a.aborted.Load() || ctx.Err() != nil {
			rep.Aborted = true
			break
		}
		ok, err := a.sched.Advance()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return rep, err
		}
		if !ok {
			break
		}
	}

	rep.Turns = a.sched.Turns()
	rep.Clock = a.sched.Now()
	if teams := a.targets.Teams(); len(teams) == 1 && !rep.Aborted {
		rep.HasWinner = true
		rep.WinnerID = teams[0]
		rep.WinnerName = a.teamNames[teams[0]]
	}

	span.SetAttributes(
		attribute.Int("arena.turns", rep.Turns),
		attribute.Bool("arena.aborted", rep.Aborted),
		attribute.String("arena.winner", rep.WinnerName),
	)
	a.emit(Event{T: rep.Clock, Type: EventEnd, Payload: map[string]any{
		"winner": rep.WinnerName, "turns": rep.Turns, "aborted": rep.Aborted,
	}})
	a.log.Info("match over", "winner", rep.WinnerName, "turns", rep.Turns, "clock", rep.Clock, "aborted", rep.Aborted)
	return rep, nil
}

// Abort stops Run before its next turn. Safe to call from any goroutine.
func (a *Arena) Abort() { a.aborted.Store(true) }

// ActiveTeamCount is the number of teams that still have a live member.
func (a *Arena) ActiveTeamCount() int { return a.targets.ActiveTeamCount() }

func (a *Arena) Now() float64 { return a.sched.Now() }

// Entities returns every participant in registration order.
func (a *Arena) Entities() []*Entity { return slices.Clone(a.entities) }

func (a *Arena) Lookup(name string) (*Entity, bool) {
	e, ok := a.byName[name]
	return e, ok
}

// Teams groups all participants by team, ordered by team id; members keep
// registration order.
func (a *Arena) Teams() []TeamSnapshot {
	idx := map[uint64]int{}
	var out []TeamSnapshot
	for _, e := range a.entities {
		i, ok := idx[e.TeamID()]
		if !ok {
			i = len(out)
			idx[e.TeamID()] = i
			out = append(out, TeamSnapshot{ID: e.TeamID(), Name: a.teamNames[e.TeamID()]})
		}
		out[i].Members = append(out[i].Members, e)
	}
	slices.SortFunc(out, func(x, y TeamSnapshot) int { return cmp.Compare(x.ID, y.ID) })
	return out
}
