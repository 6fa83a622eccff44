package snake

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Visual characters for rendering. Each board cell is two columns wide so the
// grid looks square in a terminal.
const (
	HeadGlyph          = '█'
	BodyGlyph          = '▓'
	ParticleGlyph      = '●'
	ParticleFadedGlyph = '∙'

	cellColumns = 2
	hudHeight   = 1

	// Logic ticks the level-up notice stays on screen
	levelUpNoticeTicks = 10
)

var errNotReset = errors.New("snake: game used before Reset")

// configPath stores the custom config path set via CLI
var configPath string

// difficultyOverride stores the difficulty preset set via CLI
var difficultyOverride config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the preset of every variant.
// Empty or unknown names restore the per-variant presets.
func SetDifficultyPreset(preset string) {
	difficultyOverride = config.ParsePreset(preset)
}

// Game adapts the Engine to the platform's registry.Game interface.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset
	clock  core.Clock

	engine  *Engine
	runtime core.RuntimeConfig

	noticeTicks int
	tooSmall    bool
	heldPause   bool // engine paused by the window, not the player
	offsetX     int
	offsetY     int
}

// New creates the default Snake variant.
func New() *Game {
	return NewVariant("snake", "Snake", config.DifficultyNormal)
}

// NewVariant creates a Snake game bound to a difficulty preset.
func NewVariant(id, title string, preset config.DifficultyPreset) *Game {
	return &Game{
		id:     id,
		title:  title,
		preset: preset,
		clock:  core.SystemClock{},
	}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_easy", func() registry.Game {
		return NewVariant("snake_easy", "Snake (Easy)", config.DifficultyEasy)
	})
	registry.Register("snake_hard", func() registry.Game {
		return NewVariant("snake_hard", "Snake (Hard)", config.DifficultyHard)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		return err
	}

	preset := g.preset
	if difficultyOverride != "" {
		preset = difficultyOverride
	}
	config.ApplySnakePreset(&cfg, preset)

	engine, err := NewEngine(cfg, rt.Seed, g.clock)
	if err != nil {
		return err
	}

	g.engine = engine
	g.runtime = rt
	g.noticeTicks = 0
	g.heldPause = false
	g.Resize(rt.ScreenW, rt.ScreenH)
	return nil
}

// Resize recomputes the board placement for a new screen size.
// The round keeps its state; while the window is too small the engine is
// paused so the held time is not counted.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.engine == nil {
		return
	}

	boardW, boardH := g.boardSize()
	requiredW := boardW + 2
	requiredH := boardH + 2 + hudHeight
	g.tooSmall = w < requiredW || h < requiredH

	switch {
	case g.tooSmall && !g.engine.Paused():
		g.engine.Pause()
		g.heldPause = g.engine.Paused()
	case !g.tooSmall && g.heldPause:
		g.engine.Resume()
		g.heldPause = false
	}

	g.offsetX = (w - requiredW) / 2
	g.offsetY = hudHeight + max((h-requiredH)/2, 0)
}

// boardSize returns the board size in screen characters, without the border.
func (g *Game) boardSize() (int, int) {
	cells := g.engine.Config().Board.Cells()
	return cells * cellColumns, cells
}

// Input applies an action immediately. Directions go straight to the engine's
// gating, so they take effect before the next tick reads them.
func (g *Game) Input(a core.Action) error {
	if g.engine == nil {
		return errNotReset
	}

	switch a {
	case core.ActionPause:
		if g.tooSmall {
			// The engine stays paused until the window grows; the toggle
			// decides whether it resumes then.
			if g.engine.Paused() {
				g.heldPause = !g.heldPause
			}
			return nil
		}
		if g.engine.Paused() {
			g.engine.Resume()
		} else {
			g.engine.Pause()
		}
	case core.ActionRestart:
		if g.engine.Status().Terminal() {
			rt := g.runtime
			rt.Seed = g.engine.rng.Int63()
			return g.Reset(rt)
		}
	default:
		if d := a.Direction(); d != core.DirNone {
			g.engine.SetDirection(d)
		}
	}
	return nil
}

// Step runs one logic tick. The returned Result is set only on the tick that
// won the round.
func (g *Game) Step() (core.StepResult, error) {
	if g.engine == nil {
		return core.StepResult{}, errNotReset
	}
	if g.tooSmall {
		status := g.engine.Status()
		if !status.Terminal() {
			status = core.StatusRunning
		}
		return core.StepResult{State: g.State(), Status: status}, nil
	}

	wasTerminal := g.engine.Status().Terminal()
	status, err := g.engine.Tick()
	res := core.StepResult{State: g.State(), Status: status}
	if err != nil {
		return res, err
	}

	switch {
	case status == core.StatusLevelUp:
		g.noticeTicks = levelUpNoticeTicks
	case g.noticeTicks > 0:
		g.noticeTicks--
	}

	if status == core.StatusWin && !wasTerminal {
		if r, ok := g.engine.Result(); ok {
			res.Result = &r
		}
	}
	return res, nil
}

// Blink advances the particle blink stream.
func (g *Game) Blink() {
	if g.engine != nil {
		g.engine.Blink()
	}
}

// Interval returns the delay before the next logic tick.
func (g *Game) Interval() time.Duration {
	if g.engine == nil {
		return config.DefaultSnakeConfig().Cadence.BaseInterval
	}
	return g.engine.Interval()
}

// BlinkInterval returns the fixed delay of the blink stream.
func (g *Game) BlinkInterval() time.Duration {
	if g.engine == nil {
		return config.DefaultSnakeConfig().Blink.Interval
	}
	return g.engine.BlinkInterval()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	status := g.engine.Status()
	return core.GameState{
		Level:    g.engine.Level(),
		Lives:    g.engine.Lives(),
		Elapsed:  g.engine.Elapsed(),
		GameOver: status.Terminal(),
		Won:      status == core.StatusWin,
		Paused:   g.engine.Paused(),
	}
}

// Snapshot returns the engine snapshot for tests and debugging.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{}
	}
	return g.engine.Snapshot()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	snap := g.engine.Snapshot()

	g.renderHUD(dst, snap)

	if g.tooSmall {
		boardW, boardH := g.boardSize()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", boardW+2, boardH+2+hudHeight))
		return
	}

	boardW, boardH := g.boardSize()
	dst.DrawBox(core.NewRect(g.offsetX, g.offsetY, boardW+2, boardH+2), core.ColorBorder)

	g.renderParticle(dst, snap)
	g.renderSnake(dst, snap)

	switch {
	case snap.Status == core.StatusWin:
		r, _ := g.engine.Result()
		g.renderOverlay(dst, "You Win!", "Time: "+r.String())
	case snap.Status == core.StatusFail:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case snap.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.noticeTicks > 0:
		g.renderOverlay(dst, fmt.Sprintf("Level %d", snap.Level+1), "Faster now!")
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" %s  Level: %d/%d  Lives: %d  Length: %d/%d  Time: %s",
		g.title, snap.Level+1, snap.MaxLevel+1, snap.Lives,
		len(snap.Snake), snap.Threshold, core.NewGameResult(snap.Elapsed))
	dst.DrawText(0, 0, hud, core.ColorHUD)
}

// cellOrigin maps a board pixel to the screen column and row of its left half.
func (g *Game) cellOrigin(p core.Pixel) (int, int) {
	cell := g.engine.Config().Board.CellSize
	return g.offsetX + 1 + (p.X/cell)*cellColumns, g.offsetY + 1 + p.Y/cell
}

func (g *Game) renderSnake(dst *core.Screen, snap Snapshot) {
	// Draw tail first so the head stays visible after a collision
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		x, y := g.cellOrigin(snap.Snake[i])
		glyph, color := BodyGlyph, core.ColorSnakeBody
		if i == 0 {
			glyph, color = HeadGlyph, core.ColorSnakeHead
		}
		for c := range cellColumns {
			dst.SetColor(x+c, y, glyph, color)
		}
	}
}

func (g *Game) renderParticle(dst *core.Screen, snap Snapshot) {
	x, y := g.cellOrigin(snap.Particle)
	if snap.ParticleOpacity >= 0.5 {
		dst.SetColor(x, y, ParticleGlyph, core.ColorParticle)
		return
	}
	dst.SetColor(x, y, ParticleFadedGlyph, core.ColorParticleFaded)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	height := 5
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorNotice)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorNotice)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
