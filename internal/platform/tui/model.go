package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ResultSaver persists the time of a won round.
// storage.Store implements it.
type ResultSaver interface {
	SaveResult(entry storage.ResultEntry) (int64, error)
}

// Model is the Bubble Tea model for playing one game variant.
//
// It drives two independent streams: logic ticks at the game's current
// interval and particle blinks at a fixed rate. Both carry the round
// generation; messages from an earlier round are dropped, and neither stream
// is re-armed once the round has ended.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	saver     ResultSaver
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	gameState core.GameState

	gen         int  // Round generation, bumped on restart
	resultSaved bool // Whether the current round's result was handed to the saver
	quitting    bool
	backToMenu  bool
	err         error
}

// NewModel resets game for a new round and wraps it in a model.
// saver and logger may be nil.
func NewModel(game registry.Game, saver ResultSaver, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("cannot start %s: %w", game.ID(), err)
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:     saver,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		gameState: game.State(),
	}, nil
}

// Init starts both streams.
func (m Model) Init() tea.Cmd {
	return m.armStreams()
}

func (m Model) armStreams() tea.Cmd {
	return tea.Batch(
		tickCmd(m.gen, m.game.Interval()),
		blinkCmd(m.gen, m.game.BlinkInterval()),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case BlinkMsg:
		if msg.Gen != m.gen || m.gameState.GameOver {
			return m, nil
		}
		m.game.Blink()
		return m, blinkCmd(m.gen, m.game.BlinkInterval())
	}

	return m, nil
}

// handleKey processes keyboard input. Directions reach the game immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit

	case action == core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
		if err := m.game.Input(action); err != nil {
			return m.fail(err)
		}
		m.gen++
		m.resultSaved = false
		m.gameState = m.game.State()
		m.logger.Debug("round restarted", "game", m.game.ID(), "gen", m.gen)
		return m, m.armStreams()

	case action != core.ActionNone:
		if err := m.game.Input(action); err != nil {
			return m.fail(err)
		}
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick runs one logic step and re-arms the tick stream while the
// round is still going.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res, err := m.game.Step()
	if err != nil {
		return m.fail(err)
	}
	m.gameState = res.State

	if res.Status == core.StatusLevelUp {
		m.logger.Debug("level up", "game", m.game.ID(), "level", res.State.Level+1)
	}

	if res.Result != nil && !m.resultSaved {
		m.saveResult(*res.Result, res.State.Level+1)
		m.resultSaved = true
	}

	if res.Status.Terminal() {
		m.logger.Info("round over", "game", m.game.ID(), "status", res.Status, "elapsed", core.NewGameResult(res.State.Elapsed))
		return m, nil
	}
	return m, tickCmd(m.gen, m.game.Interval())
}

// saveResult hands a won round to the saver. Failures are logged and the
// game goes on.
func (m Model) saveResult(r core.GameResult, level int) {
	if m.saver == nil {
		return
	}
	entry := storage.ResultEntry{
		GameID:    m.game.ID(),
		Player:    m.config.Player,
		Result:    r,
		Level:     level,
		CreatedAt: time.Now(),
	}
	id, err := m.saver.SaveResult(entry)
	if err != nil {
		m.logger.Warn("could not save result", "game", entry.GameID, "result", r, "error", err)
		return
	}
	m.logger.Info("result saved", "id", id, "game", entry.GameID, "result", r)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("game stopped", "game", m.game.ID(), "error", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// State returns the game state as of the last message.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays game in the terminal until the user quits or goes back.
// It reports whether the user asked to go back to the menu.
func Run(game registry.Game, saver ResultSaver, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model, err := NewModel(game, saver, cfg, logger)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), m.Err()
}
