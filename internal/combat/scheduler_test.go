package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerena/internal/config"
)

func TestSchedulerNoParticipants(t *testing.T) {
	s := NewScheduler(config.DefaultTuning().Scheduler, constRand{f: 0.5})
	ok, err := s.Advance()
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeNoParticipants))
	assert.True(t, errors.Is(err, ErrPreconditionViolated))
}

func TestSchedulerWait(t *testing.T) {
	cfg := config.DefaultTuning().Scheduler
	s := NewScheduler(cfg, constRand{f: 0.5})

	e := newTestEntity(t, "a", "x", Stats{HP: 10, Speed: 100})
	assert.InDelta(t, 160-30-25, s.Wait(e), 1e-9)

	fast := newTestEntity(t, "a", "y", Stats{HP: 10, Speed: 1000})
	assert.Equal(t, cfg.MinWaitTime, s.Wait(fast))

	// negative speed only lengthens the wait
	slow := newTestEntity(t, "a", "z", Stats{HP: 10, Speed: -20})
	assert.InDelta(t, 160+6+5, s.Wait(slow), 1e-9)
}

func TestSchedulerClockIsMonotonic(t *testing.T) {
	s := NewScheduler(config.DefaultTuning().Scheduler, &scriptRand{floats: []float64{0.1, 0.9, 0.4, 0.7, 0.0}})
	actors := map[string]int{}
	for i, sp := range []int{30, 55, 80, 100} {
		team := "odd"
		if i%2 == 0 {
			team = "even"
		}
		e := newTestEntity(t, team, string(rune('a'+i)), Stats{HP: 10, Speed: sp})
		require.NoError(t, e.AddAction(func(e *Entity) { actors[e.Name()]++ }))
		s.Insert(e)
	}

	prev := s.Now()
	for i := 0; i < 400; i++ {
		ok, err := s.Advance()
		require.NoError(t, err)
		require.True(t, ok)
		require.GreaterOrEqual(t, s.Now(), prev)
		require.Equal(t, s.Now(), s.LastActor().st.lastTurn)
		prev = s.Now()
	}
	assert.Equal(t, 400, s.Turns())
	assert.Greater(t, actors["d"], actors["a"], "faster entities act more often")
}

func TestSchedulerTieBreakIsFIFO(t *testing.T) {
	cfg := config.SchedulerDef{BaseWaitTime: 10, MinWaitTime: 1}
	s := NewScheduler(cfg, constRand{})

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		e := newTestEntity(t, name, name, Stats{HP: 10})
		require.NoError(t, e.AddAction(func(e *Entity) { order = append(order, e.Name()) }))
		s.Insert(e)
	}
	for i := 0; i < 6; i++ {
		_, err := s.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"first", "second", "third", "first", "second", "third"}, order)
}

func TestSchedulerDiscardsInactive(t *testing.T) {
	s := NewScheduler(config.SchedulerDef{BaseWaitTime: 10, MinWaitTime: 1}, constRand{})

	var acted []string
	var es []*Entity
	for _, name := range []string{"a", "b", "c"} {
		e := newTestEntity(t, name, name, Stats{HP: 10})
		require.NoError(t, e.AddAction(func(e *Entity) { acted = append(acted, e.Name()) }))
		s.Insert(e)
		es = append(es, e)
	}
	es[0].Deactivate()
	es[2].Deactivate()

	calls := 0
	for {
		ok, err := s.Advance()
		require.NoError(t, err)
		if !ok {
			break
		}
		calls++
		require.LessOrEqual(t, calls, 2)
	}
	for _, name := range acted {
		assert.Equal(t, "b", name)
	}
	assert.Equal(t, 1, s.Len())
}
