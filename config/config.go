// Package config loads and saves transcription settings and converts
// them into expansion and wiring options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/horizon"
	"github.com/pvaldi/mshoot/shoot"
)

const (
	DefaultHorizon = 2
	DefaultStep    = 0.1
)

type Config struct {
	Horizon   int            `yaml:"horizon"`
	Horizons  map[string]int `yaml:"horizons,omitempty"`
	Step      float64        `yaml:"step"`
	StepPath  string         `yaml:"step_path,omitempty"`
	MaxSteps  int            `yaml:"max_steps,omitempty"`
	Mode      string         `yaml:"mode"`
	StartTime float64        `yaml:"start_time"`
}

func DefaultConfig() *Config {
	return &Config{
		Horizon: DefaultHorizon,
		Step:    DefaultStep,
		Mode:    shoot.ModeConstraint.String(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HorizonOptions returns the expansion options the config describes.
func (c *Config) HorizonOptions() []horizon.Option {
	opts := []horizon.Option{horizon.WithHorizon(c.Horizon)}
	if len(c.Horizons) > 0 {
		opts = append(opts, horizon.WithFieldHorizons(c.Horizons))
	}
	return opts
}

// StepSize returns the configured step source. A step_path wins over
// the literal step.
func (c *Config) StepSize() shoot.StepSize {
	if c.StepPath != "" {
		return shoot.NamedStep(c.StepPath)
	}
	return shoot.FixedStep(c.Step)
}

// DynamicsOptions returns the per-call wiring options the config
// describes.
func (c *Config) DynamicsOptions() ([]shoot.DynOption, error) {
	var opts []shoot.DynOption
	if c.MaxSteps != 0 {
		opts = append(opts, shoot.WithMaxSteps(c.MaxSteps))
	}
	if c.StartTime != 0 {
		opts = append(opts, shoot.WithStartTime(c.StartTime))
	}
	switch c.Mode {
	case "", shoot.ModeConstraint.String():
		opts = append(opts, shoot.WithMode(shoot.ModeConstraint))
	case shoot.ModeCost.String():
		opts = append(opts, shoot.WithMode(shoot.ModeCost))
	default:
		return nil, fmt.Errorf("config: unknown mode %q: %w", c.Mode, mshoot.ErrConfiguration)
	}
	return opts, nil
}
