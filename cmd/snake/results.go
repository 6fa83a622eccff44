package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagBest  bool
	flagLimit int
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [variant]",
	Short: "Show saved results for a variant",
	Long: `Display the latest winning times for a variant (default: snake).

Examples:
  snake results
  snake results snake_hard
  snake results --best --limit 5
  snake results snake_easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagBest, "best", false, "Order by fastest time instead of most recent")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the variant")
}

func runResults(_ *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared results of %s.\n", game.Title())
		return nil
	}

	var entries []storage.ResultEntry
	if flagBest {
		entries, err = store.BestResults(gameID, flagLimit)
	} else {
		entries, err = store.Results(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	order := "Latest"
	if flagBest {
		order = "Best"
	}
	fmt.Printf("%s Results - %s\n\n", order, game.Title())

	if len(entries) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Win a round of 'snake play %s' to set the first time!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-12s  %s\n", "#", "Time", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-12s  %s\n", "-", "----", "-----", "------", "----")
	for _, row := range tui.ResultRows(entries) {
		fmt.Printf("  %-4s  %-9s  %-5s  %-12s  %s\n", row[0], row[1], row[2], row[3], row[4])
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Wins: %d  Best: %s  Average: %s\n", stats.Wins, stats.Best, stats.Average)
	return nil
}
