package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for deterministic particle placement
	Player  string // Name results are attributed to
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Player:  "local",
	}
}

// GameStatus is the outcome of a single logic tick.
type GameStatus int

const (
	StatusRunning GameStatus = iota
	StatusLevelUp            // Shown for exactly one tick
	StatusWin
	StatusFail
)

// Terminal reports whether the round has ended.
func (s GameStatus) Terminal() bool {
	return s == StatusWin || s == StatusFail
}

// String returns a human-readable name for the status.
func (s GameStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusLevelUp:
		return "level_up"
	case StatusWin:
		return "win"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// GameState is the read-only status a game reports to the platform.
type GameState struct {
	Level    int
	Lives    int
	Elapsed  time.Duration
	GameOver bool // Round ended, won or lost
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each logic tick.
type StepResult struct {
	State  GameState
	Status GameStatus

	// Result is set only on the tick that won the round.
	Result *GameResult
}
