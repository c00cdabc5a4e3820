package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestLoadTuningMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), cfg)
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte(`
scheduler:
  base_wait_time: 200
kill_bonus: 50
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Scheduler.BaseWaitTime)
	assert.Equal(t, 0.3, cfg.Scheduler.SpeedFactor)
	assert.Equal(t, 50, cfg.KillBonus)
	assert.Len(t, cfg.Skills, 5)
}

func TestParseTuningReplacesSkills(t *testing.T) {
	cfg, err := ParseTuning([]byte(`
skills:
  - id: punch
    kind: physical
    target: enemy
    mandatory: true
    weight: {base: 10}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Skills, 1)
	assert.Equal(t, "punch", cfg.Skills[0].ID)
	assert.Equal(t, 1.0, cfg.Skills[0].Multiplier())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero wait", func(c *Tuning) { c.Scheduler.BaseWaitTime = 0 }},
		{"zero min wait", func(c *Tuning) { c.Scheduler.MinWaitTime = 0 }},
		{"inverted range", func(c *Tuning) { c.Blueprint.Stat = StatRange{Min: 10, Max: 10} }},
		{"no skills", func(c *Tuning) { c.Skills = nil }},
		{"no mandatory", func(c *Tuning) {
			for i := range c.Skills {
				c.Skills[i].Mandatory = false
			}
		}},
		{"bad kind", func(c *Tuning) { c.Skills[0].Kind = "psychic" }},
		{"bad target", func(c *Tuning) { c.Skills[0].Target = "everyone" }},
		{"bad stat", func(c *Tuning) { c.Skills[0].Weight.Scale = map[string]float64{"luck": 1} }},
		{"duplicate id", func(c *Tuning) { c.Skills[1].ID = c.Skills[0].ID }},
		{"negative kill bonus", func(c *Tuning) { c.KillBonus = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTuning()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GAMERENA_SEED", "42")
	t.Setenv("GAMERENA_LOG_LEVEL", "debug")
	t.Setenv("GAMERENA_WORKERS", "0")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.Seed)
	assert.Equal(t, "debug", e.LogLevel)
	assert.Equal(t, "assets/tuning.yaml", e.TuningPath)
	assert.Equal(t, 1, e.Workers)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestShippedTuningMatchesDefaults(t *testing.T) {
	cfg, err := LoadTuning(filepath.Join("..", "..", "assets", "tuning.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), cfg)
}
