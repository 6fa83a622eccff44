// Package snake implements the snake game engine and its registry adapter.
//
// The Engine owns all mutable state of one round: the snake, its direction,
// the particle, level, lives and timing. Callers drive it with Tick at the
// cadence reported by Interval, feed direction changes through SetDirection
// and read a Snapshot for rendering. The engine never blocks and never
// touches the terminal or storage.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Engine is the state of a single round.
// It is not safe for concurrent use; the platform serializes calls.
type Engine struct {
	cfg   config.SnakeConfig
	rng   *rand.Rand
	clock core.Clock

	// Round-start configuration, restored on life loss
	initial          []core.Pixel
	initialDirection core.Direction

	snake       []core.Pixel // Head at index 0
	direction   core.Direction
	growPending bool // Keep the tail on the next Advance

	particle core.Pixel
	opacity  float64
	fading   bool

	level  int
	lives  int
	status core.GameStatus
	ticks  uint64

	// Direction changes are refused before this instant
	nextInputAt time.Time

	startedAt   time.Time
	finishedAt  time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool

	result    core.GameResult
	hasResult bool
}

// NewEngine validates cfg and starts a round.
// A nil clock uses the system clock.
func NewEngine(cfg config.SnakeConfig, seed int64, clock core.Clock) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snake: %w", err)
	}
	if clock == nil {
		clock = core.SystemClock{}
	}

	e := &Engine{
		cfg:   cfg,
		clock: clock,
	}
	if err := e.Reset(seed); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards the current round and starts a new one.
func (e *Engine) Reset(seed int64) error {
	e.rng = rand.New(rand.NewSource(seed))

	dir, _ := core.ParseDirection(e.cfg.Snake.Direction)
	e.initialDirection = dir
	e.initial = e.buildInitialSnake(dir)
	e.resetSnake()

	e.level = 0
	e.lives = e.cfg.Snake.InitialLives
	e.status = core.StatusRunning
	e.ticks = 0
	e.nextInputAt = time.Time{}
	e.opacity = 1
	e.fading = true
	e.paused = false
	e.pausedTotal = 0
	e.hasResult = false
	e.result = core.GameResult{}

	p, err := e.PlaceParticle()
	if err != nil {
		return fmt.Errorf("snake: cannot place first particle: %w", err)
	}
	e.particle = p

	e.startedAt = e.clock.Now()
	e.finishedAt = time.Time{}
	return nil
}

// buildInitialSnake lays the snake out with its head at the configured start
// and its body trailing away from the direction of travel.
func (e *Engine) buildInitialSnake(dir core.Direction) []core.Pixel {
	n := e.cfg.Snake.InitialLength
	cells := make([]core.Pixel, 0, n)

	p := core.Pixel{X: e.cfg.Snake.StartX, Y: e.cfg.Snake.StartY}
	cells = append(cells, p)
	for len(cells) < n {
		p = e.step(p, dir.Opposite())
		cells = append(cells, p)
	}
	return cells
}

// resetSnake restores the round-start snake and direction.
func (e *Engine) resetSnake() {
	e.snake = append(make([]core.Pixel, 0, len(e.initial)), e.initial...)
	e.direction = e.initialDirection
	e.growPending = false
}

// Tick runs one logic step and reports its outcome.
//
// The order is fixed: self-collision against the current snake, then particle
// consumption, then the level length check, and finally movement. A terminal
// or paused engine is left untouched.
func (e *Engine) Tick() (core.GameStatus, error) {
	if e.status.Terminal() {
		return e.status, nil
	}
	if e.paused {
		return core.StatusRunning, nil
	}
	e.ticks++

	if e.HasSelfCollision() {
		e.lives--
		if e.lives <= 0 {
			e.lives = 0
			e.finish(core.StatusFail)
			return e.status, nil
		}
		e.resetSnake()
		e.status = core.StatusRunning
		return e.status, nil
	}

	if err := e.handleConsumption(); err != nil {
		return e.status, err
	}

	if len(e.snake) > e.Threshold() {
		if e.level >= e.MaxLevel() {
			e.finish(core.StatusWin)
			e.result = core.NewGameResult(e.Elapsed())
			e.hasResult = true
			return e.status, nil
		}
		e.level++
		e.snake = e.snake[:e.cfg.Snake.InitialLength]
		e.growPending = false
		e.status = core.StatusLevelUp
		return e.status, nil
	}

	e.Advance(e.direction)
	e.status = core.StatusRunning
	return e.status, nil
}

func (e *Engine) finish(status core.GameStatus) {
	now := e.clock.Now()
	if e.paused {
		e.pausedTotal += now.Sub(e.pausedAt)
		e.paused = false
	}
	e.status = status
	e.finishedAt = now
}

// handleConsumption grows the snake and relocates the particle when the head
// sits on it.
func (e *Engine) handleConsumption() error {
	if e.snake[0] != e.particle {
		return nil
	}
	e.growPending = true

	p, err := e.PlaceParticle()
	if err != nil {
		return fmt.Errorf("snake: cannot relocate particle: %w", err)
	}
	e.particle = p
	return nil
}

// Pause freezes the round; ticks and direction changes are ignored and the
// paused time is excluded from the elapsed time.
func (e *Engine) Pause() {
	if e.paused || e.status.Terminal() {
		return
	}
	e.paused = true
	e.pausedAt = e.clock.Now()
}

// Resume continues a paused round.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.pausedTotal += e.clock.Now().Sub(e.pausedAt)
	e.paused = false
}

// Paused reports whether the round is paused.
func (e *Engine) Paused() bool {
	return e.paused
}

// Elapsed returns the playing time of the round, excluding pauses.
// It stops advancing once the round has ended.
func (e *Engine) Elapsed() time.Duration {
	end := e.clock.Now()
	switch {
	case e.status.Terminal():
		end = e.finishedAt
	case e.paused:
		end = e.pausedAt
	}
	return end.Sub(e.startedAt) - e.pausedTotal
}

// Result returns the finalized time of a won round.
func (e *Engine) Result() (core.GameResult, bool) {
	return e.result, e.hasResult
}

// Status returns the outcome of the last tick.
func (e *Engine) Status() core.GameStatus {
	return e.status
}

// Level returns the current level index.
func (e *Engine) Level() int {
	return e.level
}

// MaxLevel returns the index of the final level.
func (e *Engine) MaxLevel() int {
	return e.cfg.Levels.MaxLevel()
}

// Threshold returns the length the snake must exceed to leave the current level.
func (e *Engine) Threshold() int {
	return e.cfg.Levels.MaxSnakeLength[e.level]
}

// Lives returns the remaining lives.
func (e *Engine) Lives() int {
	return e.lives
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.SnakeConfig {
	return e.cfg
}
