package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.snake/configs/snake.yaml or ./configs/snake.yaml to customize the game,
or pass it with --config.

Examples:
  snake config > ~/.snake/configs/snake.yaml
  snake config --check ./my-snake.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate a config file instead of printing the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagCheck == "" {
		fmt.Print(string(config.GetDefaultYAML()))
		return nil
	}

	cfg, err := config.LoadSnake(flagCheck)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid: %dx%d cells, %d levels, %d lives\n",
		flagCheck, cfg.Board.Cells(), cfg.Board.Cells(), cfg.Levels.MaxLevel()+1, cfg.Snake.InitialLives)
	return nil
}
