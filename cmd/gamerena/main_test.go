package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerena/internal/config"
	"gamerena/internal/report"
)

func writeRoster(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func TestParseFlagsDefaultsFromEnv(t *testing.T) {
	env := config.Env{TuningPath: "x.yaml", Seed: 9, LogLevel: "warn", Workers: 3}
	o, err := parseFlags(nil, env)
	require.NoError(t, err)
	assert.Equal(t, "x.yaml", o.tuning)
	assert.Equal(t, int64(9), o.seed)
	assert.Equal(t, "warn", o.logLevel)
	assert.Equal(t, 3, o.workers)
	assert.Equal(t, 1, o.n)

	o, err = parseFlags([]string{"-seed", "5", "-workers", "0"}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(5), o.seed)
	assert.Equal(t, 1, o.workers)

	_, err = parseFlags([]string{"-n", "0"}, env)
	assert.Error(t, err)
}

func TestRunSingle(t *testing.T) {
	rosterPath := writeRoster(t, "alice@red", "bob@blue", "alice@green", "> go", "carol@red")
	out := filepath.Join(t.TempDir(), "match.json")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-roster", rosterPath, "-seed", "42", "-out", out, "-events", "-log-level", "error",
	}, strings.NewReader(""), &stdout)
	require.NoError(t, err)

	text := stdout.String()
	assert.Contains(t, text, "Seed: 42")
	assert.Contains(t, text, "Team: red")
	assert.Contains(t, text, "Winner: ")
	assert.Contains(t, text, "targeting")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var m report.Match
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, int64(42), m.Seed)
	assert.True(t, m.Result.HasWinner)
	require.NotNil(t, m.Tally)
	assert.Equal(t, m.Result.Turns, m.Tally.Turns)
	assert.NotEmpty(t, m.Events)

	names := 0
	for _, team := range m.Teams {
		names += len(team.Members)
	}
	assert.Equal(t, 3, names, "the duplicate and the command line are skipped")
}

func TestRunSingleIsReproducible(t *testing.T) {
	rosterPath := writeRoster(t, "alice@red", "bob@blue", "carol@green")
	args := []string{"-roster", rosterPath, "-seed", "7", "-log-level", "error", "-quiet"}

	var first, second bytes.Buffer
	require.NoError(t, run(context.Background(), args, strings.NewReader(""), &first))
	require.NoError(t, run(context.Background(), args, strings.NewReader(""), &second))
	assert.Equal(t, first.String(), second.String())
}

func TestRunBatch(t *testing.T) {
	rosterPath := writeRoster(t, "alice@red", "bob@blue")
	out := filepath.Join(t.TempDir(), "batch.json")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-roster", rosterPath, "-seed", "100", "-n", "20", "-workers", "4", "-out", out, "-log-level", "error",
	}, strings.NewReader(""), &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Batch of 20 runs")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var b report.Batch
	require.NoError(t, json.Unmarshal(data, &b))
	assert.Equal(t, 20, b.Runs)
	wins := 0
	for _, w := range b.Wins {
		wins += w
	}
	assert.Equal(t, 20, wins+b.NoWinner)
}

func TestRunWithoutParticipants(t *testing.T) {
	err := run(context.Background(), []string{"-seed", "1", "-log-level", "error"}, strings.NewReader("\n@red\n"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no participants")
}
