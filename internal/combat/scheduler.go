package combat

import (
	"container/heap"

	"gamerena/internal/config"
)

type queued struct {
	e   *Entity
	seq uint64
}

// readyHeap is a min-heap by ready time. Equal times leave in insertion
// order (seq).
type readyHeap []queued

func (h readyHeap) Len() int { return len(h) }
func (h readyHeap) Less(i, j int) bool {
	ti, tj := h[i].e.st.readyAt, h[j].e.st.readyAt
	if ti != tj {
		return ti < tj
	}
	return h[i].seq < h[j].seq
}
func (h readyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *readyHeap) Push(x any)   { *h = append(*h, x.(queued)) }
func (h *readyHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = queued{}
	*h = old[:n-1]
	return it
}

// Scheduler hands out turns in ascending ready time. Entities that went
// inactive stay in the heap until they reach the top and are discarded
// there.
type Scheduler struct {
	cfg     config.SchedulerDef
	rng     Rand
	h       readyHeap
	seq     uint64
	now     float64
	turns   int
	last    *Entity
	started bool
}

func NewScheduler(cfg config.SchedulerDef, rng Rand) *Scheduler {
	return &Scheduler{cfg: cfg, rng: rng}
}

// Wait is the delay before e may act again:
// BaseWaitTime - SpeedFactor*Speed - SpeedJitter*Speed*U, at least MinWaitTime.
func (s *Scheduler) Wait(e *Entity) float64 {
	spd := float64(e.Effective().Speed)
	w := s.cfg.BaseWaitTime - s.cfg.SpeedFactor*spd - s.cfg.SpeedJitter*spd*s.rng.Float64()
	return max(w, s.cfg.MinWaitTime)
}

// Insert schedules e's first turn relative to the current clock.
func (s *Scheduler) Insert(e *Entity) {
	e.st.readyAt = s.now + s.Wait(e)
	e.st.lastTurn = s.now
	s.push(e)
}

func (s *Scheduler) push(e *Entity) {
	s.seq++
	heap.Push(&s.h, queued{e: e, seq: s.seq})
}

// Advance runs one turn. It returns false once fewer than two entities are
// left to take turns; that is the normal end of a match. Advancing a
// scheduler that never had an entity is an error.
func (s *Scheduler) Advance() (bool, error) {
	if !s.started && len(s.h) == 0 {
		return false, newError(CodeNoParticipants, "no participants")
	}
	s.started = true
	for len(s.h) > 0 && !s.h[0].e.Active() {
		heap.Pop(&s.h)
	}
	if len(s.h) < 2 {
		return false, nil
	}
	e := heap.Pop(&s.h).(queued).e
	s.now = e.st.readyAt
	s.last = e
	s.turns++

	e.Act()
	e.age(s.now)

	e.st.readyAt = s.now + s.Wait(e)
	s.push(e)
	return true, nil
}

func (s *Scheduler) Now() float64       { return s.now }
func (s *Scheduler) Turns() int         { return s.turns }
func (s *Scheduler) Len() int           { return len(s.h) }
func (s *Scheduler) LastActor() *Entity { return s.last }
