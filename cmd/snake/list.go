package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered variant with its win count and best time.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllStats()
		store.Close()
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %4s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Wins", "Best")
	fmt.Printf("  %-*s  %-*s  %4s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----")

	for _, g := range games {
		wins, best := 0, "-"
		if st, ok := stats[g.ID]; ok {
			wins, best = st.Wins, st.Best.String()
		}
		fmt.Printf("  %-*s  %-*s  %4d  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, wins, best)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a variant.")
}
