package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Env holds the run options that may come from the environment. CLI flags
// default to these values.
type Env struct {
	TuningPath   string `env:"GAMERENA_TUNING" envDefault:"assets/tuning.yaml"`
	Seed         int64  `env:"GAMERENA_SEED"`
	LogLevel     string `env:"GAMERENA_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint string `env:"GAMERENA_OTEL_ENDPOINT"`
	Workers      int    `env:"GAMERENA_WORKERS" envDefault:"8"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return e, err
	}
	if e.Workers < 1 {
		e.Workers = 1
	}
	return e, nil
}

// ParseLogLevel accepts slog level names ("debug", "info", "warn", "error").
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
