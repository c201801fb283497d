package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-digger/internal/games/digger/replay"
)

var flagReplayQuiet bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded game and check it reproduces",
	Long: `Plays a recording made with 'digger play --record' without a terminal UI.
Every recorded step is re-simulated and compared with the recorded score
and board digest. Prints the final board, score and outcome.

Examples:
  digger replay run.jsonl.zst
  digger replay run.jsonl.zst --quiet`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayQuiet, "quiet", false, "Only print the outcome line")
}

func runReplay(_ *cobra.Command, args []string) {
	r, err := replay.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer r.Close()

	res, err := replay.Play(r, logger.WithPrefix("digger-replay"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, replay.ErrDiverged) {
			fmt.Fprintln(os.Stderr, "The recording does not match this version of the game.")
		}
		os.Exit(1)
	}

	if !flagReplayQuiet {
		fmt.Printf("Level %s after %d steps:\n\n", res.LevelID, res.Steps)
		fmt.Println(res.Board)
		fmt.Println()
	}
	fmt.Printf("Outcome: %s  Score: %d  Levels cleared: %d/%d\n", res.Outcome, res.Score, res.Cleared, res.Levels)
}
