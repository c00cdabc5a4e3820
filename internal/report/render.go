// Package report turns arena state into text sheets and JSON summaries.
package report

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gamerena/internal/combat"
)

// Detail levels for Render.
const (
	LevelBrief = iota
	LevelStats
	LevelScore
)

const (
	barFull  = "#"
	barEmpty = "."
	indent   = "    "
)

// Printer returns a message printer for a BCP 47 tag. Unknown or empty
// tags fall back to English.
func Printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// HealthBar draws one cell per 20 HP, rounded to the nearest cell.
func HealthBar(hp, maxHP int) string {
	total := max((maxHP+10)/20, 0)
	filled := min(max((hp+10)/20, 0), total)
	return "<" + strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, total-filled) + ">"
}

// Render writes one block per team. LevelStats adds the effective stat
// sheet of live entities; LevelScore also prints scores.
func Render(w io.Writer, p *message.Printer, teams []combat.TeamSnapshot, level int) error {
	for _, t := range teams {
		if _, err := p.Fprintf(w, "Team: %s\n", t.Name); err != nil {
			return err
		}
		for _, e := range t.Members {
			if err := renderEntity(w, p, e, level); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderEntity(w io.Writer, p *message.Printer, e *combat.Entity, level int) error {
	maxHP := e.MaxHP()
	if _, err := p.Fprintf(w, "%sName: %s  HP: %d / %d  %s\n", indent, e.Name(), e.HP(), maxHP, HealthBar(e.HP(), maxHP)); err != nil {
		return err
	}
	if level >= LevelScore {
		if _, err := p.Fprintf(w, "%sScore: %d\n", indent, e.Score()); err != nil {
			return err
		}
	}
	if !e.Active() {
		_, err := p.Fprintf(w, "%sdefeated\n", indent)
		return err
	}
	if level >= LevelStats {
		s := e.Effective()
		if _, err := p.Fprintf(w, "%sAtk: %d  Def: %d  Acc: %d\n", indent, s.Attack, s.Defense, s.Accuracy); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "%sMag: %d  MDef: %d  Spd: %d  Int: %d\n", indent, s.Magic, s.MagicDefense, s.Speed, s.Intelligence); err != nil {
			return err
		}
	}
	return nil
}

// Rank orders entities by score, highest first. Ties keep the given order.
func Rank(entities []*combat.Entity) []*combat.Entity {
	out := slices.Clone(entities)
	slices.SortStableFunc(out, func(a, b *combat.Entity) int { return cmp.Compare(b.Score(), a.Score()) })
	return out
}

// Standings prints the ranked score table.
func Standings(w io.Writer, p *message.Printer, entities []*combat.Entity) error {
	for i, e := range Rank(entities) {
		state := "alive"
		if !e.Active() {
			state = "defeated"
		}
		if _, err := p.Fprintf(w, "%2d. %s (%s) %d [%s]\n", i+1, e.Name(), e.Team(), e.Score(), state); err != nil {
			return err
		}
	}
	return nil
}
