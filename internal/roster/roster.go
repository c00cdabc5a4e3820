// Package roster reads the "name@team" participant lists fed to the arena
// host.
package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultTeam is used for lines that carry no "@team" suffix.
const DefaultTeam = "~@Default"

// CommandPrefix marks a line as a host command rather than a participant.
const CommandPrefix = ">"

var (
	ErrEmptyName = errors.New("name shouldn't be empty")
	ErrEmptyTeam = errors.New("team name shouldn't be empty")
	ErrCommand   = errors.New("commands are not supported")
)

// Entry is one participant line.
type Entry struct {
	Line int    `json:"line"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// LineError reports a line that was skipped.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Roster is the result of Parse. Skipped lines do not stop parsing.
type Roster struct {
	Entries []Entry
	Skipped []*LineError
}

// ParseLine splits s at its last '@'. Everything before it is the name,
// everything after it the team; without '@' the whole line is the name and
// the team is DefaultTeam.
func ParseLine(s string) (Entry, error) {
	if strings.HasPrefix(s, CommandPrefix) {
		return Entry{}, ErrCommand
	}
	name, team := s, DefaultTeam
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		name, team = s[:i], s[i+1:]
	}
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	if team == "" {
		return Entry{}, ErrEmptyTeam
	}
	return Entry{Name: name, Team: team}, nil
}

// Parse reads r line by line. Blank lines are ignored. Only a read failure
// is returned as an error; bad lines end up in Roster.Skipped.
func Parse(r io.Reader) (Roster, error) {
	var out Roster
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			out.Skipped = append(out.Skipped, &LineError{Line: n, Text: text, Err: err})
			continue
		}
		e.Line = n
		out.Entries = append(out.Entries, e)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("reading roster: %w", err)
	}
	return out, nil
}
