// Package config provides configuration loading for the snake agents:
// embedded defaults overridden by an optional YAML file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"snake-agents/game"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Engine names accepted by the "engine" key.
const (
	EngineReflex  = "reflex"
	EngineGoal    = "goal"
	EngineUtility = "utility"
	EngineModel   = "model"
	EnginePolicy  = "policy"
)

// Config holds all runtime configuration.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Engine   string         `yaml:"engine"`
	Apples   ApplesConfig   `yaml:"apples"`
	Play     PlayConfig     `yaml:"play"`
	Training TrainingConfig `yaml:"training"`
	DataDir  string         `yaml:"data_dir"`
}

// BoardConfig holds the grid dimensions in pixels.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ApplesConfig selects apple placement: the deterministic cycle by
// default, random free cells when randomized is set.
type ApplesConfig struct {
	Randomized bool   `yaml:"randomized"`
	Seed       uint64 `yaml:"seed"`
}

// PlayConfig holds the inference/free-play loop parameters.
type PlayConfig struct {
	Games    int `yaml:"games"`
	MaxSteps int `yaml:"max_steps"`
}

// TrainingConfig holds the Q-learning training parameters.
type TrainingConfig struct {
	Episodes        int     `yaml:"episodes"`
	MaxSteps        int     `yaml:"max_steps"`
	LearningRate    float64 `yaml:"learning_rate"`
	Discount        float64 `yaml:"discount"`
	InitialEpsilon  float64 `yaml:"initial_epsilon"`
	FinalEpsilon    float64 `yaml:"final_epsilon"`
	DecayEpisodes   int     `yaml:"decay_episodes"`
	CheckpointEvery int     `yaml:"checkpoint_every"`
	Seed            int64   `yaml:"seed"`
}

// Load parses the embedded defaults, then overrides them with the YAML
// file at path when provided.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct: only fields present in the
		// file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot
// work with.
func (c *Config) Validate() error {
	if c.Board.Width < 2*game.Size || c.Board.Height < 2*game.Size {
		return fmt.Errorf("board %dx%d is smaller than two cells", c.Board.Width, c.Board.Height)
	}
	if c.Board.Width%game.Size != 0 || c.Board.Height%game.Size != 0 {
		return fmt.Errorf("board %dx%d is not a multiple of the cell size %d", c.Board.Width, c.Board.Height, game.Size)
	}

	switch c.Engine {
	case EngineReflex, EngineGoal, EngineUtility, EngineModel, EnginePolicy:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}

	if c.Training.Episodes <= 0 || c.Training.MaxSteps <= 0 {
		return fmt.Errorf("training episodes and max_steps must be positive")
	}

	return nil
}

// WriteYAML saves the effective configuration next to a run's output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
