package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrNoParticleCell means no free cell is far enough from the head.
// It points at a board too small for the configured approach limit.
var ErrNoParticleCell = errors.New("no free cell far enough from the snake head")

// PlaceParticle picks a random free cell at least ApproachLimit cells away
// from the head. It samples up to MaxAttempts times, then scans the whole
// board and picks among every valid cell. It does not modify the engine
// beyond consuming random numbers.
func (e *Engine) PlaceParticle() (core.Pixel, error) {
	cell := e.cfg.Board.CellSize
	cells := e.cfg.Board.Cells()

	for range e.cfg.Particle.MaxAttempts {
		p := core.Pixel{
			X: e.rng.Intn(cells) * cell,
			Y: e.rng.Intn(cells) * cell,
		}
		if e.validParticle(p) {
			return p, nil
		}
	}

	var candidates []core.Pixel
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			p := core.Pixel{X: x * cell, Y: y * cell}
			if e.validParticle(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return core.Pixel{}, fmt.Errorf("%w (board %d, snake length %d, approach limit %g)",
			ErrNoParticleCell, e.cfg.Board.Size, len(e.snake), e.cfg.Particle.ApproachLimit)
	}
	return candidates[e.rng.Intn(len(candidates))], nil
}

func (e *Engine) validParticle(p core.Pixel) bool {
	minDist := float64(e.cfg.Board.CellSize) * e.cfg.Particle.ApproachLimit
	if p.Distance(e.snake[0]) < minDist {
		return false
	}
	return !e.occupies(p)
}

// Blink advances the particle opacity one step, bouncing between
// MinOpacity and fully opaque. It runs on its own fixed-rate stream and
// never changes gameplay state.
func (e *Engine) Blink() {
	if e.status.Terminal() || e.paused {
		return
	}

	b := e.cfg.Blink
	if e.fading {
		e.opacity -= b.Step
		if e.opacity <= b.MinOpacity {
			e.opacity = b.MinOpacity
			e.fading = false
		}
		return
	}
	e.opacity += b.Step
	if e.opacity >= 1 {
		e.opacity = 1
		e.fading = true
	}
}

// Particle returns the current particle cell.
func (e *Engine) Particle() core.Pixel {
	return e.particle
}
