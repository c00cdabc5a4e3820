package report

import (
	"encoding/json"

	"gamerena/internal/combat"
)

type Member struct {
	Name   string       `json:"name"`
	HP     int          `json:"hp"`
	MaxHP  int          `json:"max_hp"`
	Score  int          `json:"score"`
	Active bool         `json:"active"`
	Base   combat.Stats `json:"base"`
	Skills []string     `json:"skills"`
}

type Team struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Match is the JSON document written after a single run.
type Match struct {
	Seed   int64          `json:"seed"`
	Result combat.Report  `json:"result"`
	Teams  []Team         `json:"teams"`
	Tally  *Tally         `json:"tally,omitempty"`
	Events []combat.Event `json:"events,omitempty"`
}

// NewMatch snapshots teams. Tally and Events are only filled when events
// were recorded.
func NewMatch(seed int64, rep combat.Report, teams []combat.TeamSnapshot, events []combat.Event) Match {
	m := Match{Seed: seed, Result: rep}
	for _, t := range teams {
		team := Team{Name: t.Name}
		for _, e := range t.Members {
			var skills []string
			for _, sk := range e.Skills() {
				skills = append(skills, sk.ID)
			}
			team.Members = append(team.Members, Member{
				Name:   e.Name(),
				HP:     e.HP(),
				MaxHP:  e.MaxHP(),
				Score:  e.Score(),
				Active: e.Active(),
				Base:   e.Base(),
				Skills: skills,
			})
		}
		m.Teams = append(m.Teams, team)
	}
	if len(events) > 0 {
		t := TallyEvents(events)
		m.Tally = &t
		m.Events = events
	}
	return m
}

// Batch aggregates many runs of the same roster.
type Batch struct {
	Runs     int                `json:"runs"`
	Seed     int64              `json:"seed"`
	Wins     map[string]int     `json:"wins"`
	WinRate  map[string]float64 `json:"win_rate"`
	NoWinner int                `json:"no_winner"`
	AvgTurns float64            `json:"avg_turns"`
	AvgClock float64            `json:"avg_clock"`

	sumTurns int
	sumClock float64
}

func NewBatch(seed int64) *Batch {
	return &Batch{Seed: seed, Wins: map[string]int{}, WinRate: map[string]float64{}}
}

// Add records one run. Callers serialize access.
func (b *Batch) Add(rep combat.Report) {
	b.Runs++
	b.sumTurns += rep.Turns
	b.sumClock += rep.Clock
	if rep.HasWinner {
		b.Wins[rep.WinnerName]++
	} else {
		b.NoWinner++
	}
}

// Finish computes the averages and rates from the recorded runs.
func (b *Batch) Finish() {
	if b.Runs == 0 {
		return
	}
	n := float64(b.Runs)
	b.AvgTurns = float64(b.sumTurns) / n
	b.AvgClock = b.sumClock / n
	for team, w := range b.Wins {
		b.WinRate[team] = float64(w) / n
	}
}

// MarshalPretty is json.MarshalIndent with two-space indentation.
func MarshalPretty(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
