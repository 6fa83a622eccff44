package snake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// newTestGame resets a default game on an 80x30 screen with a manual clock.
func newTestGame(t *testing.T) (*Game, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(testStart)
	g := New()
	g.clock = clock

	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = 80, 30
	rt.Seed = 7
	if err := g.Reset(rt); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g, clock
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"snake", "snake_easy", "snake_hard"} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}

	easy, err := registry.Create("snake_easy")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = 80, 30
	if err := easy.Reset(rt); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if lives := easy.State().Lives; lives != 5 {
		t.Errorf("easy variant lives = %d, expected 5", lives)
	}
}

func TestHardVariantAcceptsTightCadence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("cadence:\n  base_interval: 100ms\n  min_interval: 90ms\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g, err := registry.Create("snake_hard")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	rt := core.DefaultConfig()
	rt.Seed = 1
	if err := g.Reset(rt); err != nil {
		t.Fatalf("hard variant rejected a valid custom config: %v", err)
	}
	if got := g.Interval(); got != 75*time.Millisecond {
		t.Errorf("interval = %v, expected 75ms", got)
	}
}

func TestGameUsedBeforeReset(t *testing.T) {
	g := New()
	if _, err := g.Step(); err == nil {
		t.Error("Step before Reset should fail")
	}
	if err := g.Input(core.ActionUp); err == nil {
		t.Error("Input before Reset should fail")
	}
}

func TestGameEmitsResultOnce(t *testing.T) {
	g, clock := newTestGame(t)
	e := g.engine
	e.level = e.MaxLevel()
	e.snake = line(e.Threshold()+1, e.cfg.Board.CellSize, e.cfg.Board.Cells())
	e.particle = farCorner
	clock.Advance(42 * time.Second)

	res, err := g.Step()
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if res.Status != core.StatusWin || res.Result == nil {
		t.Fatalf("expected a win with a result, got %+v", res)
	}
	if res.Result.Seconds != 42 {
		t.Errorf("result = %v, expected 00:42.000", res.Result)
	}
	if !res.State.Won || !res.State.GameOver {
		t.Errorf("state should report a won game: %+v", res.State)
	}

	for i := 0; i < 3; i++ {
		res, _ = g.Step()
		if res.Result != nil {
			t.Fatalf("result emitted again on step %d", i)
		}
	}
}

func TestGameInputDirection(t *testing.T) {
	g, _ := newTestGame(t)

	if err := g.Input(core.ActionUp); err != nil {
		t.Fatalf("Input() failed: %v", err)
	}
	if d := g.Snapshot().Direction; d != core.DirUp {
		t.Errorf("direction = %v, expected up", d)
	}

	if _, err := g.Step(); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	head := g.Snapshot().Snake[0]
	if head != (core.Pixel{X: 200, Y: 180}) {
		t.Errorf("head = %v, expected (200,180)", head)
	}
}

func TestGamePauseToggle(t *testing.T) {
	g, _ := newTestGame(t)

	_ = g.Input(core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot().Snake[0]
	_, _ = g.Step()
	if g.Snapshot().Snake[0] != before {
		t.Error("paused game should not move")
	}

	_ = g.Input(core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameRestartAfterFail(t *testing.T) {
	g, _ := newTestGame(t)

	// Restart is ignored while the round runs
	_ = g.Input(core.ActionRestart)
	if g.State().Lives != 3 {
		t.Fatal("restart should not reset a running round")
	}

	e := g.engine
	e.lives = 1
	e.snake = []core.Pixel{{0, 0}, {20, 0}, {0, 0}}
	e.particle = farCorner
	res, _ := g.Step()
	if res.Status != core.StatusFail || res.Result != nil {
		t.Fatalf("expected fail without result, got %+v", res)
	}

	if err := g.Input(core.ActionRestart); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	st := g.State()
	if st.GameOver || st.Lives != 3 || st.Level != 0 {
		t.Errorf("restart should start a fresh round, got %+v", st)
	}
}

func TestGameLevelUpNotice(t *testing.T) {
	g, _ := newTestGame(t)
	e := g.engine
	e.snake = line(e.Threshold()+1, e.cfg.Board.CellSize, e.cfg.Board.Cells())
	e.particle = farCorner

	res, _ := g.Step()
	if res.Status != core.StatusLevelUp || res.State.Level != 1 {
		t.Fatalf("expected level up, got %+v", res)
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level 2") {
		t.Error("level-up notice should be drawn")
	}

	for range levelUpNoticeTicks {
		_, _ = g.Step()
	}
	g.Render(screen)
	if strings.Contains(screen.String(), "Faster now!") {
		t.Error("level-up notice should expire")
	}
}

func TestGameRender(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(80, 30)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Snake", "Level: 1/4", "Lives: 3", "Length: 3/12", "Time: 00:00.000"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	// Board is 42x22 centered below the HUD; head cell (10,10)
	x, y := g.cellOrigin(core.Pixel{X: 200, Y: 200})
	if x != 40 || y != 15 {
		t.Fatalf("cellOrigin = (%d,%d), expected (40,15)", x, y)
	}
	if screen.GetCell(x, y).Rune != HeadGlyph || screen.GetCell(x+1, y).Rune != HeadGlyph {
		t.Errorf("head not drawn at (%d,%d)", x, y)
	}
	if screen.GetCell(x-2, y).Rune != BodyGlyph {
		t.Errorf("body not drawn behind the head")
	}
	if screen.GetCell(19, 4).Rune != '┌' {
		t.Errorf("board border missing at (19,4)")
	}
}

func TestGameTooSmall(t *testing.T) {
	g, _ := newTestGame(t)
	g.Resize(30, 12)

	before := g.Snapshot().Tick
	_, _ = g.Step()
	if g.Snapshot().Tick != before {
		t.Error("a too small window should hold the round")
	}

	screen := core.NewScreen(30, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small notice should be drawn")
	}

	g.Resize(80, 30)
	_, _ = g.Step()
	if g.Snapshot().Tick != before+1 {
		t.Error("round should resume after growing the window")
	}
}

func TestGameTooSmallExcludesElapsed(t *testing.T) {
	g, clock := newTestGame(t)
	clock.Advance(time.Second)

	g.Resize(10, 5)
	for range 50 {
		clock.Advance(200 * time.Millisecond)
		_, _ = g.Step()
	}
	if got := g.State().Elapsed; got != time.Second {
		t.Errorf("elapsed = %v while the window was too small, expected 1s", got)
	}

	g.Resize(80, 30)
	if g.State().Paused {
		t.Fatal("growing the window should resume the round")
	}
	clock.Advance(time.Second)
	if got := g.State().Elapsed; got != 2*time.Second {
		t.Errorf("elapsed = %v after resuming, expected 2s", got)
	}
}

func TestGameTooSmallKeepsPlayerPause(t *testing.T) {
	tests := []struct {
		name       string
		before     bool // player paused before shrinking
		during     bool // player toggled pause while too small
		wantPaused bool
	}{
		{"running", false, false, false},
		{"paused by player", true, false, true},
		{"paused while too small", false, true, true},
		{"unpaused while too small", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t)
			if tt.before {
				_ = g.Input(core.ActionPause)
			}
			g.Resize(10, 5)
			if !g.State().Paused {
				t.Fatal("round should be held while the window is too small")
			}
			if tt.during {
				_ = g.Input(core.ActionPause)
			}
			g.Resize(80, 30)
			if got := g.State().Paused; got != tt.wantPaused {
				t.Errorf("paused = %v, expected %v", got, tt.wantPaused)
			}
		})
	}
}

func TestGameTooSmallReportsRunning(t *testing.T) {
	g, _ := newTestGame(t)
	e := g.engine
	e.snake = line(e.Threshold()+1, e.cfg.Board.CellSize, e.cfg.Board.Cells())
	e.particle = farCorner

	res, _ := g.Step()
	if res.Status != core.StatusLevelUp {
		t.Fatalf("expected level up, got %v", res.Status)
	}

	g.Resize(10, 5)
	for range 3 {
		res, _ = g.Step()
		if res.Status != core.StatusRunning {
			t.Errorf("held step status = %v, expected running", res.Status)
		}
	}
}
