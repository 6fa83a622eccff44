package snake

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ComputeInterval returns the tick interval for a level: base shortened by
// slope*base per level, never below floor.
func ComputeInterval(level int, base time.Duration, slope float64, floor time.Duration) time.Duration {
	d := time.Duration(math.Round(float64(base) * (1 - slope*float64(level))))
	if d < floor {
		return floor
	}
	return d
}

// Interval returns the desired delay before the next logic tick.
func (e *Engine) Interval() time.Duration {
	c := e.cfg.Cadence
	return ComputeInterval(e.level, c.BaseInterval, c.Slope, c.MinInterval)
}

// BlinkInterval returns the fixed delay of the particle blink stream.
func (e *Engine) BlinkInterval() time.Duration {
	return e.cfg.Blink.Interval
}

// SetDirection requests a new direction of travel and reports whether it was
// applied. Requests are refused while input is blocked, when they are not one
// of the four directions, or when they would reverse the snake into its own
// neck. An accepted change blocks further changes for one interval at the
// current cadence.
func (e *Engine) SetDirection(req core.Direction) bool {
	if !req.Valid() || e.status.Terminal() || e.paused {
		return false
	}

	now := e.clock.Now()
	if now.Before(e.nextInputAt) {
		return false
	}
	if req == e.direction.Opposite() && len(e.snake) > 1 {
		return false
	}

	e.direction = req
	e.nextInputAt = now.Add(e.Interval())
	return true
}

// Direction returns the current direction of travel.
func (e *Engine) Direction() core.Direction {
	return e.direction
}
