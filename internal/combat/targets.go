package combat

import "slices"

// TargetSelector partitions live entities by team. The partition is rebuilt
// lazily: deactivations only mark it dirty.
type TargetSelector struct {
	rng     Rand
	teams   []uint64
	members map[uint64][]*Entity
	dirty   bool
}

func NewTargetSelector(rng Rand) *TargetSelector {
	return &TargetSelector{rng: rng, members: map[uint64][]*Entity{}}
}

// AddEntity tracks e under its team, keeping team ids sorted.
func (ts *TargetSelector) AddEntity(e *Entity) {
	id := e.TeamID()
	if _, ok := ts.members[id]; !ok {
		i, _ := slices.BinarySearch(ts.teams, id)
		ts.teams = slices.Insert(ts.teams, i, id)
	}
	ts.members[id] = append(ts.members[id], e)
	if !e.Active() {
		ts.dirty = true
	}
}

func (ts *TargetSelector) MarkDirty() { ts.dirty = true }

func (ts *TargetSelector) rebuild() {
	if !ts.dirty {
		return
	}
	ts.dirty = false
	for id, list := range ts.members {
		list = slices.DeleteFunc(list, func(e *Entity) bool { return !e.Active() })
		if len(list) == 0 {
			delete(ts.members, id)
			if i, ok := slices.BinarySearch(ts.teams, id); ok {
				ts.teams = slices.Delete(ts.teams, i, i+1)
			}
			continue
		}
		ts.members[id] = list
	}
}

// ActiveTeamCount is the number of teams with at least one live member.
func (ts *TargetSelector) ActiveTeamCount() int {
	ts.rebuild()
	return len(ts.teams)
}

// Teams returns the active team ids in ascending order.
func (ts *TargetSelector) Teams() []uint64 {
	ts.rebuild()
	return slices.Clone(ts.teams)
}

// Members returns the live members of team id.
func (ts *TargetSelector) Members(id uint64) []*Entity {
	ts.rebuild()
	return slices.Clone(ts.members[id])
}

// RandomEnemy picks a team other than e's uniformly, then a member of it
// uniformly. If e's team is not tracked every active team is a candidate.
// Returns nil when there is nobody to fight.
func (ts *TargetSelector) RandomEnemy(e *Entity) *Entity {
	ts.rebuild()
	own, tracked := slices.BinarySearch(ts.teams, e.TeamID())
	var team uint64
	switch {
	case !tracked && len(ts.teams) > 0:
		team = ts.teams[ts.rng.Intn(len(ts.teams))]
	case tracked && len(ts.teams) > 1:
		i := ts.rng.Intn(len(ts.teams) - 1)
		if i >= own {
			i++
		}
		team = ts.teams[i]
	default:
		return nil
	}
	list := ts.members[team]
	return list[ts.rng.Intn(len(list))]
}

// RandomAlly picks one of e's live teammates uniformly. With no teammate
// left, e targets itself.
func (ts *TargetSelector) RandomAlly(e *Entity) *Entity {
	ts.rebuild()
	list := ts.members[e.TeamID()]
	n := len(list)
	if slices.Contains(list, e) {
		n--
	}
	if n <= 0 {
		return e
	}
	k := ts.rng.Intn(n)
	for _, m := range list {
		if m == e {
			continue
		}
		if k == 0 {
			return m
		}
		k--
	}
	return e
}
