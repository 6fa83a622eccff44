// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for the snake engine.
package config

import "time"

// SnakeConfig contains every tunable of the snake engine.
// Numeric values are deployment configuration, not fixed rules.
type SnakeConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Snake    SnakeRules     `yaml:"snake"`
	Levels   LevelsConfig   `yaml:"levels"`
	Cadence  CadenceConfig  `yaml:"cadence"`
	Particle ParticleConfig `yaml:"particle"`
	Blink    BlinkConfig    `yaml:"blink"`
}

// BoardConfig defines the square playing field.
type BoardConfig struct {
	Size     int `yaml:"size"`      // Side length in board units
	CellSize int `yaml:"cell_size"` // Side length of one cell; must divide Size
}

// Cells returns the number of cells along one side of the board.
func (b BoardConfig) Cells() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Size / b.CellSize
}

// SnakeRules defines the snake at round start.
type SnakeRules struct {
	InitialLength int    `yaml:"initial_length"`
	InitialLives  int    `yaml:"initial_lives"`
	StartX        int    `yaml:"start_x"`   // Head position, board units
	StartY        int    `yaml:"start_y"`   // Head position, board units
	Direction     string `yaml:"direction"` // up, down, left or right; body trails behind
}

// LevelsConfig defines level progression.
type LevelsConfig struct {
	// MaxSnakeLength[i] is the length the snake must exceed to leave level i.
	// The last entry belongs to the final level; exceeding it wins the round.
	MaxSnakeLength []int `yaml:"max_snake_length"`
}

// MaxLevel returns the highest level index.
func (l LevelsConfig) MaxLevel() int {
	return len(l.MaxSnakeLength) - 1
}

// CadenceConfig defines how fast logic ticks run per level.
type CadenceConfig struct {
	BaseInterval time.Duration `yaml:"base_interval"` // Interval at level 0
	Slope        float64       `yaml:"slope"`         // Fraction of BaseInterval removed per level
	MinInterval  time.Duration `yaml:"min_interval"`  // Floor for the computed interval
}

// ParticleConfig defines particle placement.
type ParticleConfig struct {
	ApproachLimit float64 `yaml:"approach_limit"` // Minimum distance from the head, in cells
	MaxAttempts   int     `yaml:"max_attempts"`   // Random samples before falling back to a scan
}

// BlinkConfig defines the particle blink stream, independent of gameplay cadence.
type BlinkConfig struct {
	Interval   time.Duration `yaml:"interval"`
	Step       float64       `yaml:"step"`
	MinOpacity float64       `yaml:"min_opacity"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Empty or unknown values
// yield the empty preset, which leaves a config untouched.
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}
