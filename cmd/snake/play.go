package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: snake).

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart (after the round ends)
  Ctrl+S            - Save a screenshot
  B/Esc             - Leave the game
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, slower start, particles spawn closer
  normal - The configured rules
  hard   - One life, faster start and speed-up, particles spawn farther
  fixed  - No speed-up between levels

Examples:
  snake play
  snake play snake_easy
  snake play --difficulty hard
  snake play --difficulty fixed --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.PreRunE = checkDifficulty
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
	}

	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, saverFor(store), runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// checkDifficulty rejects unknown presets instead of silently playing normal.
func checkDifficulty(_ *cobra.Command, _ []string) error {
	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
		return nil
	}
	return fmt.Errorf("unknown difficulty %q (valid: easy, normal, hard, fixed)", flagDifficulty)
}
