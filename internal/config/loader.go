package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadTuning reads a tuning file over DefaultTuning. A missing file yields
// the defaults; the result is validated either way.
func LoadTuning(path string) (Tuning, error) {
	cfg := DefaultTuning()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("loading tuning %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return cfg, nil
}

// ParseTuning decodes YAML bytes over DefaultTuning and validates.
func ParseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid tuning: %w", err)
	}
	return cfg, nil
}
