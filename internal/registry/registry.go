// Package registry provides a global registry for game variant factories.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is the interface every playable variant implements.
// Games contain pure logic with no Bubble Tea dependency; the platform owns
// input mapping, scheduling and drawing.
type Game interface {
	// ID returns a unique identifier (e.g., "snake", "snake_hard").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new round. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig) error

	// Resize adapts the layout to a new screen size without restarting.
	Resize(w, h int)

	// Input applies a player action as soon as it arrives.
	Input(a core.Action) error

	// Step runs one logic tick.
	Step() (core.StepResult, error)

	// Interval is the delay the scheduler should wait before the next Step.
	// It may change after every Step.
	Interval() time.Duration

	// Blink advances the fixed-rate visual stream.
	Blink()

	// BlinkInterval is the fixed delay between Blink calls.
	BlinkInterval() time.Duration

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh, not yet Reset, game instance.
type Factory func() Game

var (
	mu       sync.RWMutex
	variants = make(map[string]entry)
)

type entry struct {
	factory Factory
	title   string
}

// Register adds a variant factory to the registry.
// Typically called from a game package's init() function.
// Panics if the ID is empty or already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := variants[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Title comes from a throwaway instance so List never builds games
	variants[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(variants))
	for id, e := range variants {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := variants[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
