package tui

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fakeGame plays a scripted sequence of statuses, one per Step.
type fakeGame struct {
	script  []core.GameStatus
	steps   int
	blinks  int
	resets  int
	inputs  []core.Action
	over    bool
	lastRes *core.GameResult
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Resize(w, h int) {}
func (g *fakeGame) Interval() time.Duration { return 10 * time.Millisecond }
func (g *fakeGame) BlinkInterval() time.Duration { return 5 * time.Millisecond }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake", core.ColorHUD) }
func (g *fakeGame) Blink() { g.blinks++ }
func (g *fakeGame) State() core.GameState { return core.GameState{GameOver: g.over, Won: g.over} }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.steps = 0
	g.over = false
	return nil
}

func (g *fakeGame) Input(a core.Action) error {
	g.inputs = append(g.inputs, a)
	if a == core.ActionRestart && g.over {
		return g.Reset(core.RuntimeConfig{})
	}
	return nil
}

func (g *fakeGame) Step() (core.StepResult, error) {
	status := core.StatusRunning
	if g.steps < len(g.script) {
		status = g.script[g.steps]
	}
	g.steps++

	res := core.StepResult{Status: status}
	if status.Terminal() {
		g.over = true
	}
	res.State = g.State()
	if status == core.StatusWin {
		r := core.GameResult{Seconds: 12, Milliseconds: 345}
		res.Result = &r
		g.lastRes = &r
	}
	return res, nil
}

type fakeSaver struct {
	entries []storage.ResultEntry
	err     error
}

func (s *fakeSaver) SaveResult(e storage.ResultEntry) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.entries = append(s.entries, e)
	return int64(len(s.entries)), nil
}

func newTestModel(t *testing.T, g *fakeGame, saver ResultSaver) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1, Player: "tester"}
	m, err := NewModel(g, saver, cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelTickRearmsWhileRunning(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, cmd := update(t, m, TickMsg{Gen: 0})
	if g.steps != 1 {
		t.Errorf("steps = %d, expected 1", g.steps)
	}
	if cmd == nil {
		t.Error("running round should re-arm the tick stream")
	}

	m, cmd = update(t, m, BlinkMsg{Gen: 0})
	if g.blinks != 1 || cmd == nil {
		t.Errorf("blink should run and re-arm, blinks=%d", g.blinks)
	}
}

func TestModelDropsStaleMessages(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	_, cmd := update(t, m, TickMsg{Gen: 7})
	if g.steps != 0 || cmd != nil {
		t.Error("tick from another round should be dropped")
	}
	_, cmd = update(t, m, BlinkMsg{Gen: 7})
	if g.blinks != 0 || cmd != nil {
		t.Error("blink from another round should be dropped")
	}
}

func TestModelStopsStreamsOnWin(t *testing.T) {
	g := &fakeGame{script: []core.GameStatus{core.StatusRunning, core.StatusWin}}
	saver := &fakeSaver{}
	m := newTestModel(t, g, saver)

	m, _ = update(t, m, TickMsg{Gen: 0})
	m, cmd := update(t, m, TickMsg{Gen: 0})
	if cmd != nil {
		t.Error("tick stream should stop after a terminal status")
	}
	if !m.State().GameOver {
		t.Error("model should report game over")
	}

	m, cmd = update(t, m, BlinkMsg{Gen: 0})
	if cmd != nil || g.blinks != 0 {
		t.Error("blink stream should stop after a terminal status")
	}

	if len(saver.entries) != 1 {
		t.Fatalf("expected exactly one saved result, got %d", len(saver.entries))
	}
	e := saver.entries[0]
	if e.GameID != "fake" || e.Player != "tester" || e.Result.Seconds != 12 {
		t.Errorf("unexpected saved entry: %+v", e)
	}
}

func TestModelSavesOncePerRound(t *testing.T) {
	g := &fakeGame{script: []core.GameStatus{core.StatusWin, core.StatusWin}}
	saver := &fakeSaver{}
	m := newTestModel(t, g, saver)

	m, _ = update(t, m, TickMsg{Gen: 0})
	update(t, m, TickMsg{Gen: 0})

	if len(saver.entries) != 1 {
		t.Errorf("expected one saved result, got %d", len(saver.entries))
	}
}

func TestModelSaveFailureKeepsPlaying(t *testing.T) {
	g := &fakeGame{script: []core.GameStatus{core.StatusWin}}
	m := newTestModel(t, g, &fakeSaver{err: errors.New("disk full")})

	m, _ = update(t, m, TickMsg{Gen: 0})
	if m.IsQuitting() || m.Err() != nil {
		t.Error("a failed save should not stop the game")
	}
}

func TestModelRestartStartsNewGeneration(t *testing.T) {
	g := &fakeGame{script: []core.GameStatus{core.StatusFail}}
	m := newTestModel(t, g, nil)

	// Restart is ignored while running
	m, cmd := update(t, m, runeKey("r"))
	if cmd != nil || g.resets != 1 {
		t.Fatal("restart should be ignored while the round runs")
	}

	m, _ = update(t, m, TickMsg{Gen: 0})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	m, cmd = update(t, m, runeKey("r"))
	if cmd == nil {
		t.Fatal("restart should re-arm both streams")
	}
	if g.resets != 2 || m.State().GameOver {
		t.Errorf("restart should reset the game, resets=%d", g.resets)
	}

	steps := g.steps
	update(t, m, TickMsg{Gen: 0})
	if g.steps != steps {
		t.Error("tick from the previous round should be dropped after restart")
	}
	update(t, m, TickMsg{Gen: 1})
	if g.steps != steps+1 {
		t.Error("tick from the new round should run")
	}
}

func TestModelForwardsDirections(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	update(t, m, runeKey("p"))

	if len(g.inputs) != 2 || g.inputs[0] != core.ActionLeft || g.inputs[1] != core.ActionPause {
		t.Errorf("inputs = %v", g.inputs)
	}
	if g.steps != 0 {
		t.Error("input must not step the game")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !back.BackToMenu() || cmd == nil {
		t.Error("esc should go back to the menu")
	}

	quit, _ := update(t, m, runeKey("q"))
	if !quit.IsQuitting() || quit.View() != "" {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 3})

	if view := m.View(); view == "" {
		t.Error("view should not be empty")
	}
}

func TestResultRows(t *testing.T) {
	created := time.Date(2024, 2, 9, 7, 5, 0, 0, time.Local)
	rows := ResultRows([]storage.ResultEntry{
		{Result: core.GameResult{Minutes: 1, Seconds: 2, Milliseconds: 3}, Level: 4, Player: "alice", CreatedAt: created},
		{Result: core.GameResult{Seconds: 59}, Level: 4, CreatedAt: created},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	expected := []string{"1", "01:02.003", "4", "alice", "2024/02/09 07:05"}
	for i, v := range expected {
		if rows[0][i] != v {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], v)
		}
	}
	if rows[1][3] != "-" {
		t.Errorf("anonymous player shown as %q", rows[1][3])
	}
}
