package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Checks each level file against the level schema and the map rules:
rectangular rows, known glyphs, exactly one player, at least one gold.

Examples:
  digger validate ./levels/mine.yaml
  digger validate ./levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, p := range args {
		data, err := os.ReadFile(p)
		if err == nil {
			err = levels.Validate(data)
		}
		if err == nil {
			fmt.Printf("ok    %s\n", p)
			continue
		}

		failed++
		var verr levels.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("FAIL  %s  %s: %s\n", p, verr.Code, verr.Message)
		} else {
			fmt.Printf("FAIL  %s  %v\n", p, err)
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d level files failed validation\n", failed, len(args))
		os.Exit(1)
	}
}
