package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the drawable state of a round.
type Snapshot struct {
	Tick            uint64
	Snake           []core.Pixel // Head first
	Particle        core.Pixel
	ParticleOpacity float64
	Direction       core.Direction
	Level           int
	MaxLevel        int
	Threshold       int // Length to exceed to leave the level
	Lives           int
	Status          core.GameStatus
	Paused          bool
	Elapsed         time.Duration
}

// Snapshot returns the current drawable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:            e.ticks,
		Snake:           append([]core.Pixel(nil), e.snake...),
		Particle:        e.particle,
		ParticleOpacity: e.opacity,
		Direction:       e.direction,
		Level:           e.level,
		MaxLevel:        e.MaxLevel(),
		Threshold:       e.Threshold(),
		Lives:           e.lives,
		Status:          e.status,
		Paused:          e.paused,
		Elapsed:         e.Elapsed(),
	}
}
