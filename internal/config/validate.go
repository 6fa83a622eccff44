package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration describes a playable board.
func (c SnakeConfig) Validate() error {
	b := c.Board
	if b.CellSize <= 0 {
		return invalid("board.cell_size", "must be positive, got %d", b.CellSize)
	}
	if b.Size <= 0 || b.Size%b.CellSize != 0 {
		return invalid("board.size", "must be a positive multiple of cell_size %d, got %d", b.CellSize, b.Size)
	}

	s := c.Snake
	if s.InitialLength < 3 {
		return invalid("snake.initial_length", "must be at least 3, got %d", s.InitialLength)
	}
	if s.InitialLength > b.Cells() {
		return invalid("snake.initial_length", "must fit on one row of %d cells, got %d", b.Cells(), s.InitialLength)
	}
	if s.InitialLives < 1 {
		return invalid("snake.initial_lives", "must be at least 1, got %d", s.InitialLives)
	}
	if !onGrid(s.StartX, b) || !onGrid(s.StartY, b) {
		return invalid("snake.start", "(%d, %d) is not a cell of the board", s.StartX, s.StartY)
	}
	if _, ok := core.ParseDirection(s.Direction); !ok {
		return invalid("snake.direction", "unknown direction %q", s.Direction)
	}

	if len(c.Levels.MaxSnakeLength) == 0 {
		return invalid("levels.max_snake_length", "at least one level is required")
	}
	for i, n := range c.Levels.MaxSnakeLength {
		if n < s.InitialLength {
			return invalid("levels.max_snake_length", "level %d threshold %d is below initial_length %d", i, n, s.InitialLength)
		}
		if n >= b.Cells()*b.Cells() {
			return invalid("levels.max_snake_length", "level %d threshold %d does not fit the board", i, n)
		}
	}

	cd := c.Cadence
	if cd.BaseInterval <= 0 {
		return invalid("cadence.base_interval", "must be positive, got %v", cd.BaseInterval)
	}
	if cd.MinInterval <= 0 || cd.MinInterval > cd.BaseInterval {
		return invalid("cadence.min_interval", "must be in (0, base_interval], got %v", cd.MinInterval)
	}
	if cd.Slope < 0 {
		return invalid("cadence.slope", "must not be negative, got %v", cd.Slope)
	}

	if c.Particle.ApproachLimit < 0 {
		return invalid("particle.approach_limit", "must not be negative, got %v", c.Particle.ApproachLimit)
	}
	if c.Particle.MaxAttempts < 1 {
		return invalid("particle.max_attempts", "must be at least 1, got %d", c.Particle.MaxAttempts)
	}

	bl := c.Blink
	if bl.Interval <= 0 {
		return invalid("blink.interval", "must be positive, got %v", bl.Interval)
	}
	if bl.Step <= 0 || bl.Step > 1 {
		return invalid("blink.step", "must be in (0, 1], got %v", bl.Step)
	}
	if bl.MinOpacity < 0 || bl.MinOpacity >= 1 {
		return invalid("blink.min_opacity", "must be in [0, 1), got %v", bl.MinOpacity)
	}

	return nil
}

func onGrid(c int, b BoardConfig) bool {
	return c >= 0 && c <= b.Size-b.CellSize && c%b.CellSize == 0
}
