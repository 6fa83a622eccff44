package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
// It mirrors defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Size:     400,
			CellSize: 20,
		},
		Snake: SnakeRules{
			InitialLength: 3,
			InitialLives:  3,
			StartX:        200,
			StartY:        200,
			Direction:     "right",
		},
		Levels: LevelsConfig{
			MaxSnakeLength: []int{12, 18, 24, 30},
		},
		Cadence: CadenceConfig{
			BaseInterval: 200 * time.Millisecond,
			Slope:        0.15,
			MinInterval:  40 * time.Millisecond,
		},
		Particle: ParticleConfig{
			ApproachLimit: 5,
			MaxAttempts:   1000,
		},
		Blink: BlinkConfig{
			Interval:   50 * time.Millisecond,
			Step:       0.1,
			MinOpacity: 0.2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
