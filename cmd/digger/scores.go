package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-digger/internal/games/digger"
	"github.com/vovakirdan/tui-digger/internal/registry"
	"github.com/vovakirdan/tui-digger/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores or a level's fastest clears",
	Long: `Without a level, display the top run scores.
With a level id, display that level's fastest clears and attempt stats.

Examples:
  digger scores
  digger scores 02-sacks
  digger scores --limit 25
  digger scores --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete all recorded run scores")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer closeStore(store)

	switch {
	case flagScoresReset:
		if err := store.ClearScores(digger.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High scores cleared.")
	case len(args) == 1:
		printLevelScores(store, args[0])
	default:
		printHighScores(store)
	}
}

func printHighScores(store *storage.Store) {
	scores, err := store.TopScores(digger.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "Digger"
	if info, ok := registry.Info(digger.GameID); ok {
		title = info.Title
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'digger play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(digger.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func printLevelScores(store *storage.Store, levelID string) {
	runs, err := store.FastestClears(levelID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fastest Clears - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("Nobody has cleared this level yet.")
	} else {
		fmt.Printf("  %-4s  %-16s  %-6s  %-8s  %s\n", "Rank", "Player", "Steps", "Score", "Date")
		fmt.Printf("  %-4s  %-16s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-16s  %-6d  %-8d  %s\n", i+1, r.Player, r.Ticks, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.GetLevelStats(levelID); err == nil && stats.Attempts > 0 {
		fmt.Println()
		fmt.Printf("Attempts: %d  Clears: %d\n", stats.Attempts, stats.Clears)
	}
}
