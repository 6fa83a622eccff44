// snake is a terminal Snake game with levels, lives and timed results.
//
// Usage:
//
//	snake list               - List available variants
//	snake play [variant]     - Play a variant (default: snake)
//	snake menu               - Pick variants interactively
//	snake serve              - Start SSH server for remote play
//	snake results [variant]  - Show saved results
//	snake config             - Print the default configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--db <path>          - Set database path (default: ~/.snake/results.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - grow, level up and beat the clock in your terminal",
	Long: `Snake is a terminal take on the classic game. Eat particles to grow,
outgrow each level's length limit to advance, and clear the last level
as fast as you can. Running into yourself costs a life.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  results  - View saved results
  config   - Print the default configuration

Examples:
  snake play
  snake play snake_hard
  snake menu
  snake serve --ssh :2222
  snake results --best`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
}
