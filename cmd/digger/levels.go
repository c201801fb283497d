package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dcore "github.com/vovakirdan/tui-digger/internal/games/digger/core"
	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
	"github.com/vovakirdan/tui-digger/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List levels",
	Long: `Shows the built-in campaign, or the valid level files under dir,
together with your attempts from the scores database.

Examples:
  digger levels
  digger levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	loader := levels.Campaign()
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
	}

	lvls, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(lvls) == 0 {
		fmt.Println("No levels found.")
		return
	}

	store := openStore()
	defer closeStore(store)

	maxIDLen := 2
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-20s  %-7s  %4s  %5s  %4s  %s\n", maxIDLen, "ID", "Name", "Size", "Gold", "Sacks", "Mons", "Attempts")
	fmt.Printf("  %-*s  %-20s  %-7s  %4s  %5s  %4s  %s\n", maxIDLen, "--", "----", "----", "----", "-----", "----", "--------")

	for _, lvl := range lvls {
		b, err := lvl.Board()
		if err != nil {
			fmt.Printf("  %-*s  %-20s  invalid: %v\n", maxIDLen, lvl.ID, lvl.Name, err)
			continue
		}
		fmt.Printf("  %-*s  %-20s  %-7s  %4d  %5d  %4d  %s\n",
			maxIDLen, lvl.ID, lvl.Name,
			fmt.Sprintf("%dx%d", b.W, b.H),
			b.Count(dcore.KindGold),
			b.Count(dcore.KindSack),
			b.Count(dcore.KindMonster),
			attemptsLabel(store, lvl.ID),
		)
	}

	fmt.Println()
	fmt.Println("Run 'digger play <id>' to start from a level.")
}

// attemptsLabel summarizes a level's run history, or "-" without a store.
func attemptsLabel(store *storage.Store, id string) string {
	if store == nil {
		return "-"
	}
	stats, err := store.GetLevelStats(id)
	if err != nil || stats.Attempts == 0 {
		return "-"
	}
	if stats.Clears == 0 {
		return fmt.Sprintf("%d, not cleared", stats.Attempts)
	}
	return fmt.Sprintf("%d, cleared %d, best %d steps", stats.Attempts, stats.Clears, stats.BestTicks)
}
